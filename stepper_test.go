package graphsearch_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pdrpinto/graphsearch"
)

// expansionOrder drains a stepper and returns the states it expanded.
func expansionOrder[S comparable](stepper *graphsearch.Stepper[S]) []S {
	var order []S
	for {
		snapshot, err := stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		if snapshot.StepIndex > len(order) {
			order = append(order, snapshot.Current)
		}
		if snapshot.Done {
			return order
		}
	}
}

var _ = Describe("Stepper", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	// weighted graph with cycles and several equal-cost alternatives
	graph := adjacency{
		"s": {{to: "a", cost: 2}, {to: "b", cost: 1}, {to: "c", cost: 2}},
		"a": {{to: "d", cost: 1}, {to: "s", cost: 2}},
		"b": {{to: "a", cost: 1}, {to: "d", cost: 3}},
		"c": {{to: "d", cost: 1}, {to: "e", cost: 4}},
		"d": {{to: "e", cost: 1}, {to: "b", cost: 1}},
		"e": {{to: "g", cost: 2}},
	}

	It("should give astar with a zero heuristic the same expansion order as uniform cost", func() {
		zero := map[string]float64{}
		astar, err := graphsearch.NewStepper(ctx, graph.problem("g", zero), "s", graphsearch.AStar)
		Expect(err).ToNot(HaveOccurred())
		defer astar.Close()
		ucs, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", graphsearch.UniformCost)
		Expect(err).ToNot(HaveOccurred())
		defer ucs.Close()

		astarOrder := expansionOrder(astar)
		ucsOrder := expansionOrder(ucs)
		Expect(astarOrder).To(Equal(ucsOrder))
		Expect(astarOrder[0]).To(Equal("s"))

		astarResult := astar.Result()
		ucsResult := ucs.Result()
		Expect(astarResult.Path).To(Equal(ucsResult.Path))
		Expect(astarResult.TotalCost).To(Equal(ucsResult.TotalCost))
		Expect(astarResult.ExpandedNodes).To(Equal(ucsResult.ExpandedNodes))
	})

	It("should match the result of Search", func() {
		for _, strategy := range graphsearch.Strategies() {
			stepper, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", strategy)
			Expect(err).ToNot(HaveOccurred())
			expansionOrder(stepper)

			result, err := graphsearch.Search(ctx, graph.problem("g", nil), "s", strategy)
			Expect(err).ToNot(HaveOccurred())
			Expect(stepper.Result()).To(Equal(result), "strategy %s", strategy)
			stepper.Close()
		}
	})

	It("should expose the frontier and visited states of each step", func() {
		stepper, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", graphsearch.BFS)
		Expect(err).ToNot(HaveOccurred())
		defer stepper.Close()

		snapshot, err := stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.StepIndex).To(Equal(1))
		Expect(snapshot.Current).To(Equal("s"))
		Expect(snapshot.Frontier).To(Equal([]string{"a", "b", "c"}))
		Expect(snapshot.Visited).To(Equal(map[string]bool{"s": true}))
		Expect(snapshot.Done).To(BeFalse())

		snapshot, err = stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.Current).To(Equal("a"))
		Expect(snapshot.Frontier).To(Equal([]string{"b", "c", "d"}))
	})

	It("should report the path once the goal is reached", func() {
		stepper, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", graphsearch.UniformCost)
		Expect(err).ToNot(HaveOccurred())
		defer stepper.Close()

		var last graphsearch.StepSnapshot[string]
		for !last.Done {
			last, err = stepper.Step()
			Expect(err).ToNot(HaveOccurred())
		}
		Expect(last.Found).To(BeTrue())
		Expect(last.Current).To(Equal("g"))
		Expect(last.Path[0]).To(Equal("s"))
		Expect(last.Path[len(last.Path)-1]).To(Equal("g"))

		again, err := stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		Expect(again.Done).To(BeTrue())
		Expect(again.StepIndex).To(Equal(last.StepIndex))
	})

	It("should finish without a path when closed", func() {
		stepper, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", graphsearch.DFS)
		Expect(err).ToNot(HaveOccurred())
		stepper.Close()

		snapshot, err := stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.Done).To(BeTrue())
		Expect(snapshot.Found).To(BeFalse())
	})

	It("should stop with the context error when the parent is cancelled", func() {
		parent, cancel := context.WithCancel(ctx)
		stepper, err := graphsearch.NewStepper(parent, graph.problem("g", nil), "s", graphsearch.BFS)
		Expect(err).ToNot(HaveOccurred())
		defer stepper.Close()

		cancel()
		snapshot, err := stepper.Step()
		Expect(err).To(MatchError(context.Canceled))
		Expect(snapshot.Done).To(BeTrue())
	})

	It("should mark a truncated run", func() {
		stepper, err := graphsearch.NewStepper(ctx, graph.problem("g", nil), "s", graphsearch.BFS, graphsearch.WithMaxExpansions(1))
		Expect(err).ToNot(HaveOccurred())
		defer stepper.Close()

		_, err = stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		snapshot, err := stepper.Step()
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.Done).To(BeTrue())
		Expect(snapshot.Truncated).To(BeTrue())
	})

	It("should reject an invalid problem", func() {
		_, err := graphsearch.NewStepper(ctx, graphsearch.Problem[string]{}, "s", graphsearch.BFS)
		Expect(err).To(MatchError(graphsearch.ErrInvalidProblem))
	})
})
