// Package grid adapts 2D mazes to graphsearch problems.
//
// A maze is read from text, one character per cell:
//
//	#     wall
//	.     open cell, entering it costs 1
//	1-9   weighted cell, entering it costs the digit
//	S     start (open, cost 1)
//	G     goal (open, cost 1)
//
// Moves are to the four orthogonal neighbours.
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"github.com/pdrpinto/graphsearch"
)

// ErrMalformedMaze is returned by Parse for input that does not describe a maze.
var ErrMalformedMaze = errors.New("malformed maze")

// Point is a cell position. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

var directions = []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is a rectangular maze.
type Grid struct {
	Width, Height int
	Walls         map[Point]bool
	// Weights holds the entry cost of cells that do not cost 1.
	Weights map[Point]float64
	Start   Point
	Goal    Point
}

// In reports whether p lies inside the grid.
func (g *Grid) In(p Point) bool { return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height }

// Open reports whether p lies inside the grid and is not a wall.
func (g *Grid) Open(p Point) bool { return g.In(p) && !g.Walls[p] }

// Cost is the price of entering p.
func (g *Grid) Cost(p Point) float64 {
	if w, ok := g.Weights[p]; ok {
		return w
	}
	return 1
}

// Successors lists the open neighbours of p with their entry cost.
func (g *Grid) Successors(p Point) []graphsearch.Transition[Point] {
	out := make([]graphsearch.Transition[Point], 0, len(directions))
	for _, d := range directions {
		np := Point{p.X + d.X, p.Y + d.Y}
		if g.Open(np) {
			out = append(out, graphsearch.Transition[Point]{State: np, Cost: g.Cost(np)})
		}
	}
	return out
}

// IsGoal reports whether p is the goal cell.
func (g *Grid) IsGoal(p Point) bool { return p == g.Goal }

// Manhattan estimates the remaining cost from p to the goal. Every cell costs
// at least 1, so the estimate never exceeds the true cost.
func (g *Grid) Manhattan(p Point) float64 {
	return math.Abs(float64(p.X-g.Goal.X)) + math.Abs(float64(p.Y-g.Goal.Y))
}

// Problem builds the search problem for this grid. The Manhattan heuristic is
// attached when withHeuristic is set.
func (g *Grid) Problem(withHeuristic bool) graphsearch.Problem[Point] {
	problem := graphsearch.Problem[Point]{
		IsGoal:     g.IsGoal,
		Successors: g.Successors,
	}
	if withHeuristic {
		problem.Heuristic = g.Manhattan
	}
	return problem
}

// Parse reads a maze. Blank lines are ignored; all rows must have the same width.
func Parse(r io.Reader) (*Grid, error) {
	g := &Grid{
		Walls:   make(map[Point]bool),
		Weights: make(map[Point]float64),
	}
	var haveStart, haveGoal bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if g.Height == 0 {
			g.Width = len(line)
		} else if len(line) != g.Width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrMalformedMaze, g.Height+1, len(line), g.Width)
		}

		y := g.Height
		for x, c := range []byte(line) {
			p := Point{x, y}
			switch {
			case c == '#':
				g.Walls[p] = true
			case c == '.':
			case c >= '1' && c <= '9':
				if c != '1' {
					g.Weights[p] = float64(c - '0')
				}
			case c == 'S':
				if haveStart {
					return nil, fmt.Errorf("%w: second start at %s", ErrMalformedMaze, p)
				}
				g.Start, haveStart = p, true
			case c == 'G':
				if haveGoal {
					return nil, fmt.Errorf("%w: second goal at %s", ErrMalformedMaze, p)
				}
				g.Goal, haveGoal = p, true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %s", ErrMalformedMaze, c, p)
			}
		}
		g.Height++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}

	if g.Height == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedMaze)
	}
	if !haveStart {
		return nil, fmt.Errorf("%w: no start cell", ErrMalformedMaze)
	}
	if !haveGoal {
		return nil, fmt.Errorf("%w: no goal cell", ErrMalformedMaze)
	}
	return g, nil
}

// Generate builds a random grid whose walls are clustered along random walks.
// Start and goal are distinct open cells unless the grid has a single cell.
// Dimensions below 1 are raised to 1.
func Generate(w, h, clusters, steps int, density float64, rnd *rand.Rand) *Grid {
	w, h = max(w, 1), max(h, 1)
	start := Point{rnd.Intn(w), rnd.Intn(h)}
	goal := start
	for w*h > 1 && goal == start {
		goal = Point{rnd.Intn(w), rnd.Intn(h)}
	}

	walls := map[Point]bool{}
	for c := 0; c < clusters; c++ {
		p := Point{rnd.Intn(w), rnd.Intn(h)}
		for s := 0; s < steps; s++ {
			if rnd.Float64() < density && p != start && p != goal {
				walls[p] = true
			}
			d := directions[rnd.Intn(len(directions))]
			np := Point{p.X + d.X, p.Y + d.Y}
			if np.X >= 0 && np.X < w && np.Y >= 0 && np.Y < h {
				p = np
			}
		}
	}

	return &Grid{
		Width:   w,
		Height:  h,
		Walls:   walls,
		Weights: map[Point]float64{},
		Start:   start,
		Goal:    goal,
	}
}

// Render draws the grid with path cells marked '*'.
func (g *Grid) Render(path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{x, y}
			switch {
			case p == g.Start:
				b.WriteByte('S')
			case p == g.Goal:
				b.WriteByte('G')
			case g.Walls[p]:
				b.WriteByte('#')
			case onPath[p]:
				b.WriteByte('*')
			case g.Cost(p) != 1:
				b.WriteByte('0' + byte(g.Cost(p)))
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
