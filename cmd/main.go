package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pdrpinto/graphsearch/cmd/root"
	"github.com/pdrpinto/graphsearch/internal/cli"
)

func main() {
	env := cli.NewEnv()
	if err := root.Execute(context.Background(), root.NewRootCmd(env), env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
