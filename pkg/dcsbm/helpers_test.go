package dcsbm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testGraph describes a fixture used across the package tests.
type testGraph struct {
	Name  string
	Graph *Graph
}

func buildGraph(t testing.TB, n int, edges [][2]int) *Graph {
	t.Helper()
	g, err := NewGraphFromEdges(n, edges)
	require.NoError(t, err)
	return g
}

func twoTriangles(t testing.TB) *Graph {
	return buildGraph(t, 6, [][2]int{
		{0, 1}, {0, 2}, {1, 2},
		{3, 4}, {3, 5}, {4, 5},
	})
}

func starGraph(t testing.TB, leaves int) *Graph {
	edges := make([][2]int, 0, leaves)
	for i := 1; i <= leaves; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return buildGraph(t, leaves+1, edges)
}

func chainGraph(t testing.TB, n int) *Graph {
	edges := make([][2]int, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return buildGraph(t, n, edges)
}

// randomGraph draws an Erdos-Renyi graph G(n, p).
func randomGraph(rng *rand.Rand, n int, p float64) *Graph {
	g := NewGraph(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				_ = g.AddEdge(u, v)
			}
		}
	}
	return g
}

func createTestGraphs(t testing.TB) []testGraph {
	rng := rand.New(rand.NewSource(7))
	return []testGraph{
		{Name: "Empty", Graph: NewGraph(0)},
		{Name: "SingleNode", Graph: NewGraph(1)},
		{Name: "TwoIsolated", Graph: NewGraph(2)},
		{Name: "TwoConnected", Graph: buildGraph(t, 2, [][2]int{{0, 1}})},
		{Name: "TwoTriangles", Graph: twoTriangles(t)},
		{Name: "Star", Graph: starGraph(t, 9)},
		{Name: "Chain", Graph: chainGraph(t, 7)},
		{Name: "Random", Graph: randomGraph(rng, 15, 0.3)},
	}
}
