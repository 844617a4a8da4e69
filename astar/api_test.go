package astar

import (
	"context"
	"math/rand"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point = [2]int

var (
	straight = []point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal = []point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

type grid struct {
	w, h   int
	walls  map[point]bool
	moves  []point
	weight func(point) int
}

func openGrid(w, h int) grid {
	return grid{w: w, h: h, walls: map[point]bool{}, moves: straight}
}

func (g grid) in(p point) bool { return p[0] >= 0 && p[0] < g.w && p[1] >= 0 && p[1] < g.h }

func (g grid) Neighbors(p point) []Neighbor[point, int] {
	res := make([]Neighbor[point, int], 0, len(g.moves))
	for _, d := range g.moves {
		np := point{p[0] + d[0], p[1] + d[1]}
		if !g.in(np) || g.walls[np] {
			continue
		}
		cost := 1
		if g.weight != nil {
			cost = g.weight(np)
		}
		res = append(res, Neighbor[point, int]{ID: np, Cost: cost})
	}
	return res
}

func manhattanTo(goal point) Heuristic[point, int] {
	return func(p point) int {
		return abs(p[0]-goal[0]) + abs(p[1]-goal[1])
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func requireContiguous(t *testing.T, path []point) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		step := abs(path[i][0]-path[i-1][0]) + abs(path[i][1]-path[i-1][1])
		require.Equal(t, 1, step, "%v -> %v", path[i-1], path[i])
	}
}

func TestSearchOpenGrid(t *testing.T) {
	g := openGrid(10, 10)
	goal := point{9, 9}
	res, err := SearchTo[point, int](context.Background(), g, point{0, 0}, goal, manhattanTo(goal), WithWorkers(4))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 18, res.TotalCost)
	require.Len(t, res.Path, 19)
	assert.Equal(t, point{0, 0}, res.Path[0])
	assert.Equal(t, goal, res.Path[18])
	requireContiguous(t, res.Path)
}

func TestSearchAroundWall(t *testing.T) {
	g := openGrid(7, 7)
	for y := 0; y < 6; y++ {
		g.walls[point{3, y}] = true
	}
	goal := point{6, 0}
	res, err := SearchTo[point, int](context.Background(), g, point{0, 0}, goal, manhattanTo(goal))
	require.NoError(t, err)
	assert.Equal(t, 18, res.TotalCost)
	requireContiguous(t, res.Path)
	for _, p := range res.Path {
		assert.False(t, g.walls[p], "path crosses wall at %v", p)
	}
}

func TestSearchNoPath(t *testing.T) {
	g := openGrid(5, 5)
	g.walls[point{3, 4}] = true
	g.walls[point{4, 3}] = true
	goal := point{4, 4}
	res, err := SearchTo[point, int](context.Background(), g, point{0, 0}, goal, manhattanTo(goal))
	assert.ErrorIs(t, err, ErrNoPath)
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	assert.Equal(t, 22, res.ExpandedNodes)
}

func TestSearchGoalPredicate(t *testing.T) {
	g := openGrid(10, 10)
	onColumn := func(p point) bool { return p[0] == 5 }
	res, err := Search[point, int](context.Background(), g, point{0, 7}, onColumn, func(p point) int { return abs(5 - p[0]) })
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalCost)
	assert.Equal(t, point{5, 7}, res.Path[len(res.Path)-1])
}

func TestSearchStartIsGoal(t *testing.T) {
	g := openGrid(3, 3)
	res, err := SearchTo[point, int](context.Background(), g, point{1, 1}, point{1, 1}, manhattanTo(point{1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []point{{1, 1}}, res.Path)
	assert.Equal(t, 0, res.TotalCost)
	assert.Equal(t, 1, res.ExpandedNodes)
}

func TestSearchSingleWorkerManyNeighbors(t *testing.T) {
	g := openGrid(12, 12)
	g.moves = diagonal
	goal := point{11, 5}
	chebyshev := func(p point) int { return max(abs(p[0]-goal[0]), abs(p[1]-goal[1])) }
	res, err := SearchTo[point, int](context.Background(), g, point{0, 0}, goal, chebyshev, WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalCost)
}

func TestSearchMatchesDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := map[point]int{}
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			weights[point{x, y}] = 1 + rng.Intn(9)
		}
	}
	g := openGrid(20, 20)
	g.weight = func(p point) int { return weights[p] }
	for i := 0; i < 40; i++ {
		g.walls[point{rng.Intn(20), rng.Intn(20)}] = true
	}
	start, goal := point{0, 0}, point{19, 19}
	for _, p := range []point{start, goal, {1, 0}, {0, 1}, {18, 19}, {19, 18}} {
		delete(g.walls, p)
	}

	informed, err := SearchTo[point, int](context.Background(), g, start, goal, manhattanTo(goal))
	require.NoError(t, err)
	blind, err := SearchTo[point, int](context.Background(), g, start, goal, func(point) int { return 0 })
	require.NoError(t, err)

	assert.Equal(t, blind.TotalCost, informed.TotalCost)
	assert.LessOrEqual(t, informed.ExpandedNodes, blind.ExpandedNodes)

	sum := 0
	for _, p := range informed.Path[1:] {
		sum += weights[p]
	}
	assert.Equal(t, informed.TotalCost, sum)
}

func TestSearchCostTypes(t *testing.T) {
	line := func(n int) []Neighbor[int, uint32] {
		return []Neighbor[int, uint32]{{ID: n + 1, Cost: 3}, {ID: n - 1, Cost: 3}}
	}
	res, err := SearchTo(context.Background(), GraphFunc[int, uint32](line), 0, 4, func(n int) uint32 { return uint32(abs(4-n)) * 3 })
	require.NoError(t, err)
	assert.Equal(t, uint32(12), res.TotalCost)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Path)

	halves := func(n int) []Neighbor[int, float64] {
		return []Neighbor[int, float64]{{ID: n + 1, Cost: 0.5}}
	}
	resF, err := SearchTo(context.Background(), GraphFunc[int, float64](halves), 0, 3, func(int) float64 { return 0 })
	require.NoError(t, err)
	assert.InDelta(t, 1.5, resF.TotalCost, 1e-12)
}

func TestSearchNegativeCost(t *testing.T) {
	graph := GraphFunc[int, int](func(n int) []Neighbor[int, int] {
		return []Neighbor[int, int]{{ID: n + 1, Cost: -1}}
	})
	_, err := SearchTo(context.Background(), graph, 0, 5, func(int) int { return 0 })
	assert.ErrorIs(t, err, ErrNegativeCost)
}

func TestSearchExpansionLimit(t *testing.T) {
	endless := GraphFunc[int, int](func(n int) []Neighbor[int, int] {
		return []Neighbor[int, int]{{ID: n + 1, Cost: 1}}
	})
	never := func(int) bool { return false }
	res, err := Search(context.Background(), endless, 0, never, func(int) int { return 0 }, WithMaxExpansions(50))
	assert.ErrorIs(t, err, ErrExpansionLimit)
	assert.Equal(t, 50, res.ExpandedNodes)
}

func TestSearchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := openGrid(10, 10)
	_, err := SearchTo[point, int](ctx, g, point{0, 0}, point{9, 9}, manhattanTo(point{9, 9}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchHeuristicPanic(t *testing.T) {
	g := openGrid(4, 4)
	start := point{0, 0}
	h := func(p point) int {
		if p != start {
			panic("boom")
		}
		return 0
	}
	_, err := SearchTo[point, int](context.Background(), g, start, point{3, 3}, h, WithWorkers(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heuristic panicked: boom")
}

func TestSearchStartHeuristicPanic(t *testing.T) {
	before := runtime.NumGoroutine()
	h := func(point) int { panic("boom") }

	res, err := SearchTo[point, int](context.Background(), openGrid(4, 4), point{0, 0}, point{3, 3}, h, WithWorkers(8))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heuristic panicked: boom")
	assert.False(t, res.Found)
	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 10*time.Millisecond)
}

func TestSearchLogs(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	g := openGrid(4, 4)
	_, err := SearchTo[point, int](context.Background(), g, point{0, 0}, point{3, 3}, manhattanTo(point{3, 3}), WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "astar "), lines[0])
	assert.Contains(t, lines[0], `"msg"="search finished"`)
	assert.Contains(t, lines[0], `"cost"=6`)
}
