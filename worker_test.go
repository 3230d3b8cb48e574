package graphsearch_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdrpinto/graphsearch"
)

var _ = Describe("SearchAll", func() {
	graph := adjacency{
		"a": unit("b"),
		"b": unit("c"),
		"c": unit("g"),
		"x": unit("y"),
	}

	It("should return one result per start in order", func() {
		starts := []string{"a", "b", "c", "g", "x"}
		results, err := graphsearch.SearchAll(context.Background(), graph.problem("g", nil), starts, graphsearch.UniformCost, graphsearch.WithWorkers(2))
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(len(starts)))

		Expect(results[0].Path).To(Equal([]string{"a", "b", "c", "g"}))
		Expect(results[1].Path).To(Equal([]string{"b", "c", "g"}))
		Expect(results[2].Path).To(Equal([]string{"c", "g"}))
		Expect(results[3].Path).To(Equal([]string{"g"}))
		Expect(results[4].Found).To(BeFalse())
	})

	It("should handle an empty list of starts", func() {
		results, err := graphsearch.SearchAll(context.Background(), graph.problem("g", nil), nil, graphsearch.BFS)
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(BeEmpty())
	})

	It("should propagate the first error", func() {
		broken := adjacency{
			"a": {{to: "b", cost: -3}},
			"c": unit("g"),
		}
		_, err := graphsearch.SearchAll(context.Background(), broken.problem("g", nil), []string{"c", "a"}, graphsearch.UniformCost, graphsearch.WithWorkers(1))
		Expect(err).To(MatchError(graphsearch.ErrNegativeCost))
	})

	It("should validate the problem and strategy before starting", func() {
		_, err := graphsearch.SearchAll(context.Background(), graphsearch.Problem[string]{}, []string{"a"}, graphsearch.BFS)
		Expect(err).To(MatchError(graphsearch.ErrInvalidProblem))

		_, err = graphsearch.SearchAll(context.Background(), graph.problem("g", nil), []string{"a"}, graphsearch.Strategy(-1))
		Expect(err).To(MatchError(graphsearch.ErrUnknownStrategy))
	})
})
