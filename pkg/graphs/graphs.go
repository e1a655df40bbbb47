// Package graphs provides small reference graphs with known community
// structure for exercising and demonstrating the block model search.
package graphs

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/gilchrisn/sbm-partition/pkg/dcsbm"
	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// TwoTriangles returns nodes {0,1,2} and {3,4,5} each fully connected, with
// no edges between the triangles.
func TwoTriangles() *dcsbm.Graph {
	return mustBuild(6, [][2]int{
		{0, 1}, {0, 2}, {1, 2},
		{3, 4}, {3, 5}, {4, 5},
	})
}

// Star returns a star with center 0 joined to nodes 1..leaves.
func Star(leaves int) *dcsbm.Graph {
	edges := make([][2]int, 0, leaves)
	for i := 1; i <= leaves; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return mustBuild(leaves+1, edges)
}

// RingOfCliques returns k cliques of the given size, where clique i is joined
// to clique i+1 (mod k) by a single edge. Ground truth assigns clique i to
// group i.
func RingOfCliques(k, size int) (*dcsbm.Graph, partition.Partition) {
	g := dcsbm.NewGraph(k * size)
	truth := make(partition.Partition, k*size)

	for c := 0; c < k; c++ {
		base := c * size
		for i := 0; i < size; i++ {
			truth[base+i] = c
			for j := i + 1; j < size; j++ {
				mustAdd(g, base+i, base+j)
			}
		}
	}
	if k > 1 {
		for c := 0; c < k; c++ {
			next := (c + 1) % k
			// k == 2 would otherwise add the same bridge twice
			if k == 2 && c == 1 {
				break
			}
			mustAdd(g, c*size+size-1, next*size)
		}
	}
	return g, truth
}

// PlantedPartition draws a graph with groups blocks of size nodes each. Node
// pairs in the same block are joined with probability pIn, pairs in different
// blocks with probability pOut.
func PlantedPartition(groups, size int, pIn, pOut float64, rng *rand.Rand) (*dcsbm.Graph, partition.Partition, error) {
	if groups <= 0 || size <= 0 {
		return nil, nil, fmt.Errorf("planted partition needs positive groups and size, got %d and %d", groups, size)
	}
	if pIn < 0 || pIn > 1 || pOut < 0 || pOut > 1 {
		return nil, nil, fmt.Errorf("edge probabilities must lie in [0,1], got pIn=%g pOut=%g", pIn, pOut)
	}

	n := groups * size
	truth := make(partition.Partition, n)
	for i := range truth {
		truth[i] = i / size
	}

	g := dcsbm.NewGraph(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			p := pOut
			if truth[u] == truth[v] {
				p = pIn
			}
			if rng.Float64() < p {
				mustAdd(g, u, v)
			}
		}
	}
	return g, truth, nil
}

// Names lists the graphs available through ByName.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a reference graph. Randomized graphs draw from rng.
func ByName(name string, rng *rand.Rand) (*dcsbm.Graph, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown graph %q (available: %v)", name, Names())
	}
	return build(rng)
}

var builders = map[string]func(*rand.Rand) (*dcsbm.Graph, error){
	"two-triangles": func(*rand.Rand) (*dcsbm.Graph, error) { return TwoTriangles(), nil },
	"star":          func(*rand.Rand) (*dcsbm.Graph, error) { return Star(9), nil },
	"karate":        func(*rand.Rand) (*dcsbm.Graph, error) { return Karate(), nil },
	"ring": func(*rand.Rand) (*dcsbm.Graph, error) {
		g, _ := RingOfCliques(4, 5)
		return g, nil
	},
	"planted": func(rng *rand.Rand) (*dcsbm.Graph, error) {
		g, _, err := PlantedPartition(4, 8, 0.6, 0.03, rng)
		return g, err
	},
}

func mustBuild(n int, edges [][2]int) *dcsbm.Graph {
	g, err := dcsbm.NewGraphFromEdges(n, edges)
	if err != nil {
		panic(fmt.Sprintf("graphs: invalid fixture: %v", err))
	}
	return g
}

func mustAdd(g *dcsbm.Graph, u, v int) {
	if err := g.AddEdge(u, v); err != nil {
		panic(fmt.Sprintf("graphs: invalid fixture: %v", err))
	}
}
