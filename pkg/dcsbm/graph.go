package dcsbm

import (
	"fmt"
)

// GraphView is the read-only adjacency the search needs. Nodes are dense
// indices 0..NumNodes()-1 and edges are unordered simple pairs.
type GraphView interface {
	NumNodes() int
	Neighbors(node int) []int
	Degree(node int) int
	// EachEdge calls fn once per undirected edge.
	EachEdge(fn func(u, v int))
}

// Graph is a simple undirected graph stored as adjacency lists.
type Graph struct {
	numNodes  int
	numEdges  int
	adjacency [][]int // adjacency[i] = neighbors of node i in insertion order
}

// NewGraph creates a graph with n isolated nodes
func NewGraph(numNodes int) *Graph {
	if numNodes < 0 {
		numNodes = 0
	}
	return &Graph{
		numNodes:  numNodes,
		adjacency: make([][]int, numNodes),
	}
}

// NewGraphFromEdges builds a graph with n nodes and the given edge list.
func NewGraphFromEdges(numNodes int, edges [][2]int) (*Graph, error) {
	g := NewGraph(numNodes)
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddEdge adds an undirected edge between u and v. Self-loops and parallel
// edges are rejected because the block statistics assume a simple graph.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.numNodes || v < 0 || v >= g.numNodes {
		return fmt.Errorf("edge %d-%d with %d nodes: %w", u, v, g.numNodes, ErrNodeOutOfRange)
	}
	if u == v {
		return fmt.Errorf("edge %d-%d: %w", u, v, ErrSelfLoop)
	}
	if g.HasEdge(u, v) {
		return fmt.Errorf("edge %d-%d: %w", u, v, ErrDuplicateEdge)
	}

	g.adjacency[u] = append(g.adjacency[u], v)
	g.adjacency[v] = append(g.adjacency[v], u)
	g.numEdges++
	return nil
}

// HasEdge reports whether u and v are adjacent
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.numNodes || v < 0 || v >= g.numNodes {
		return false
	}
	// scan the shorter list
	a, b := u, v
	if len(g.adjacency[a]) > len(g.adjacency[b]) {
		a, b = b, a
	}
	for _, n := range g.adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

func (g *Graph) NumNodes() int { return g.numNodes }
func (g *Graph) NumEdges() int { return g.numEdges }

// Neighbors returns the adjacency list of node. The slice must not be modified.
func (g *Graph) Neighbors(node int) []int {
	if node < 0 || node >= g.numNodes {
		return nil
	}
	return g.adjacency[node]
}

func (g *Graph) Degree(node int) int {
	if node < 0 || node >= g.numNodes {
		return 0
	}
	return len(g.adjacency[node])
}

// EachEdge visits every edge once, as (u, v) with u < v, in ascending order of u.
func (g *Graph) EachEdge(fn func(u, v int)) {
	for u := 0; u < g.numNodes; u++ {
		for _, v := range g.adjacency[u] {
			if u < v {
				fn(u, v)
			}
		}
	}
}

// Clone creates a deep copy of the graph
func (g *Graph) Clone() *Graph {
	clone := NewGraph(g.numNodes)
	clone.numEdges = g.numEdges
	for i := 0; i < g.numNodes; i++ {
		clone.adjacency[i] = make([]int, len(g.adjacency[i]))
		copy(clone.adjacency[i], g.adjacency[i])
	}
	return clone
}

// Validate checks graph consistency
func (g *Graph) Validate() error {
	endpoints := 0
	for i := 0; i < g.numNodes; i++ {
		for _, neighbor := range g.adjacency[i] {
			if neighbor < 0 || neighbor >= g.numNodes {
				return fmt.Errorf("invalid neighbor %d for node %d: %w", neighbor, i, ErrNodeOutOfRange)
			}
			if neighbor == i {
				return fmt.Errorf("node %d: %w", i, ErrSelfLoop)
			}
			if !containsNode(g.adjacency[neighbor], i) {
				return fmt.Errorf("edge %d-%d is not symmetric", i, neighbor)
			}
		}
		endpoints += len(g.adjacency[i])
	}

	if endpoints != 2*g.numEdges {
		return fmt.Errorf("edge count %d inconsistent with %d adjacency entries", g.numEdges, endpoints)
	}
	return nil
}

// countEdges returns |E| for any GraphView.
func countEdges(g GraphView) int {
	if sg, ok := g.(*Graph); ok {
		return sg.numEdges
	}
	m := 0
	g.EachEdge(func(_, _ int) { m++ })
	return m
}

func containsNode(nodes []int, target int) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}
