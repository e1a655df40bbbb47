package dcsbm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// Statistics are the sufficient statistics of the DC-SBM for one partition.
//
// Ers holds edge-endpoint counts between groups. It is symmetric; an edge
// joining groups r != s adds one to cell (r,s), which the symmetric storage
// also reports as (s,r), while an edge inside group r adds two to (r,r). The
// full c x c matrix therefore sums to 2|E|.
//
// Kappa[r] is the total degree of the nodes in group r.
type Statistics struct {
	Groups int
	Ers    *mat.SymDense
	Kappa  []float64
}

func newStatistics(c int) *Statistics {
	return &Statistics{
		Groups: c,
		Ers:    mat.NewSymDense(c, nil),
		Kappa:  make([]float64, c),
	}
}

// Tabulate derives the block statistics of partition z over c groups.
// A GraphView that reports a self-loop has it counted twice on the diagonal;
// Graph rejects self-loops on construction.
func Tabulate(g GraphView, z partition.Partition, c int) (*Statistics, error) {
	if err := checkPartition(g, z, c); err != nil {
		return nil, err
	}

	s := newStatistics(c)
	s.tabulate(g, z)
	return s, nil
}

// tabulate recomputes every cell from scratch. z must already be validated.
func (s *Statistics) tabulate(g GraphView, z partition.Partition) {
	c := s.Groups
	for r := 0; r < c; r++ {
		s.Kappa[r] = 0
		for t := r; t < c; t++ {
			s.Ers.SetSym(r, t, 0)
		}
	}

	g.EachEdge(func(i, j int) {
		r, t := z[i], z[j]
		if r == t {
			s.Ers.SetSym(r, r, s.Ers.At(r, r)+2)
		} else {
			s.Ers.SetSym(r, t, s.Ers.At(r, t)+1)
		}
	})

	for node := 0; node < g.NumNodes(); node++ {
		s.Kappa[z[node]] += float64(g.Degree(node))
	}
}

// MoveNode reassigns node to group to, updating the statistics in
// O(degree(node)) and writing the new label into z. The resulting cells are
// identical to a full re-tabulation since every cell is an integer count.
// Like Tabulate, it assumes node has no self-loop.
func (s *Statistics) MoveNode(g GraphView, z partition.Partition, node, to int) {
	from := z[node]
	if from == to {
		return
	}

	for _, neighbor := range g.Neighbors(node) {
		t := z[neighbor]
		s.shiftEndpoint(from, t, -1)
		s.shiftEndpoint(to, t, +1)
	}

	deg := float64(g.Degree(node))
	s.Kappa[from] -= deg
	s.Kappa[to] += deg
	z[node] = to
}

// shiftEndpoint adjusts the count of one edge between groups r and t.
func (s *Statistics) shiftEndpoint(r, t int, delta float64) {
	if r == t {
		delta *= 2
	}
	s.Ers.SetSym(r, t, s.Ers.At(r, t)+delta)
}

// Clone returns a deep copy of the statistics
func (s *Statistics) Clone() *Statistics {
	clone := newStatistics(s.Groups)
	clone.Ers.CopySym(s.Ers)
	copy(clone.Kappa, s.Kappa)
	return clone
}

// TotalEndpoints returns the sum over all (r,s) cells of Ers, which equals 2|E|.
func (s *Statistics) TotalEndpoints() float64 {
	total := 0.0
	for r := 0; r < s.Groups; r++ {
		for t := 0; t < s.Groups; t++ {
			total += s.Ers.At(r, t)
		}
	}
	return total
}

// TotalDegree returns the sum of Kappa, which equals 2|E|.
func (s *Statistics) TotalDegree() float64 {
	return floats.Sum(s.Kappa)
}

func checkPartition(g GraphView, z partition.Partition, c int) error {
	if c <= 0 {
		return fmt.Errorf("c=%d: %w", c, ErrInvalidGroupCount)
	}
	if len(z) != g.NumNodes() {
		return fmt.Errorf("got %d entries for %d nodes: %w", len(z), g.NumNodes(), ErrPartitionLength)
	}
	for i, r := range z {
		if r < 0 || r >= c {
			return fmt.Errorf("node %d has group %d with c=%d: %w", i, r, c, ErrGroupOutOfRange)
		}
	}
	return nil
}
