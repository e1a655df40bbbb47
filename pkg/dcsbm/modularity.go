package dcsbm

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// Modularity returns Newman's modularity Q of partition z at resolution 1.
// It is reported alongside the block model likelihood so results can be
// compared with modularity-based methods. A graph without edges scores 0.
func Modularity(g GraphView, z partition.Partition) float64 {
	if countEdges(g) == 0 {
		return 0
	}

	groups := z.Groups()
	communities := make([][]graph.Node, len(groups))
	for i, members := range groups {
		communities[i] = make([]graph.Node, len(members))
		for j, node := range members {
			communities[i][j] = simple.Node(int64(node))
		}
	}

	return community.Q(ToUndirected(g), communities, 1)
}
