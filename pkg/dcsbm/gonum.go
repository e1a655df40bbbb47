package dcsbm

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// FromUndirected converts a gonum undirected graph into a Graph with dense
// node indices. Nodes are indexed in ascending ID order; ids[i] is the gonum
// ID of node i.
func FromUndirected(ug graph.Undirected) (*Graph, []int64, error) {
	if ug == nil {
		return nil, nil, fmt.Errorf("gonum graph is nil")
	}

	nodes := graph.NodesOf(ug.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	g := NewGraph(len(ids))
	for u, uid := range ids {
		to := ug.From(uid)
		for to.Next() {
			vid := to.Node().ID()
			v := index[vid]
			if u == v {
				return nil, nil, fmt.Errorf("node %d: %w", uid, ErrSelfLoop)
			}
			if u < v {
				if err := g.AddEdge(u, v); err != nil {
					return nil, nil, fmt.Errorf("converting edge %d-%d: %w", uid, vid, err)
				}
			}
		}
	}

	return g, ids, nil
}

// ToUndirected copies any GraphView into a gonum simple.UndirectedGraph whose
// node IDs equal the dense indices.
func ToUndirected(g GraphView) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for i := 0; i < g.NumNodes(); i++ {
		ug.AddNode(simple.Node(int64(i)))
	}
	g.EachEdge(func(u, v int) {
		ug.SetEdge(ug.NewEdge(simple.Node(int64(u)), simple.Node(int64(v))))
	})
	return ug
}
