package dcsbm

import (
	"context"
	"math"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// Move is a single-node reassignment together with the log-likelihood the
// partition has once the move is applied.
type Move struct {
	Node          int
	From          int
	To            int
	LogLikelihood float64
}

// searchState is the mutable state of one trial: the live partition and its
// statistics. It is owned by exactly one goroutine.
type searchState struct {
	graph       GraphView
	groups      int
	z           partition.Partition
	stats       *Statistics
	incremental bool

	// scratch is reused by full re-tabulation so candidate scoring does not allocate
	scratch *Statistics

	evaluations int
}

func newSearchState(g GraphView, z partition.Partition, c int, incremental bool) (*searchState, error) {
	stats, err := Tabulate(g, z, c)
	if err != nil {
		return nil, err
	}

	st := &searchState{
		graph:       g,
		groups:      c,
		z:           z,
		stats:       stats,
		incremental: incremental,
	}
	if !incremental {
		st.scratch = newStatistics(c)
	}
	return st, nil
}

// reset replaces the live partition and re-tabulates its statistics.
func (st *searchState) reset(z partition.Partition) {
	st.z = z
	st.stats.tabulate(st.graph, z)
}

func (st *searchState) logLikelihood() float64 {
	return LogLikelihood(st.stats)
}

// evaluate returns the log-likelihood the partition would have with node in
// group to. The partition and statistics are unchanged on return.
func (st *searchState) evaluate(node, to int) float64 {
	st.evaluations++
	from := st.z[node]
	if st.incremental {
		st.stats.MoveNode(st.graph, st.z, node, to)
		logL := LogLikelihood(st.stats)
		st.stats.MoveNode(st.graph, st.z, node, from)
		return logL
	}

	st.z[node] = to
	st.scratch.tabulate(st.graph, st.z)
	st.z[node] = from
	return LogLikelihood(st.scratch)
}

// commit applies the move permanently.
func (st *searchState) commit(node, to int) {
	if st.incremental {
		st.stats.MoveNode(st.graph, st.z, node, to)
		return
	}
	st.z[node] = to
	st.stats.tabulate(st.graph, st.z)
}

// bestMove scans every unfrozen node and every other group and returns the
// move with the strictly highest resulting log-likelihood. Candidates are
// visited by node then group, so the first one found wins ties. The move may
// lower the likelihood; it is the best available, not necessarily an
// improvement. ok is false when no candidate exists.
func (st *searchState) bestMove(frozen []bool) (best Move, ok bool) {
	best = Move{Node: -1, From: -1, To: -1, LogLikelihood: math.Inf(-1)}

	for node := range st.z {
		if frozen[node] {
			continue
		}
		from := st.z[node]
		for to := 0; to < st.groups; to++ {
			if to == from {
				continue
			}
			logL := st.evaluate(node, to)
			if logL > best.LogLikelihood {
				best = Move{Node: node, From: from, To: to, LogLikelihood: logL}
			}
		}
	}

	return best, best.Node >= 0
}

// runPhase clears frozen and commits up to n best moves, freezing each moved
// node. lStart is the likelihood of the entering partition. zBest must hold
// that partition on entry; it is overwritten with every partition that beats
// the best seen so far, and the returned likelihood is the score of its final
// contents. onMove, if set, sees every committed move.
func (st *searchState) runPhase(ctx context.Context, frozen []bool, lStart float64, zBest partition.Partition, onMove func(step int, m Move)) (lBest float64, moves int, err error) {
	for i := range frozen {
		frozen[i] = false
	}
	lBest = lStart

	for step := 0; step < len(st.z); step++ {
		if err := ctx.Err(); err != nil {
			return lBest, moves, err
		}

		m, ok := st.bestMove(frozen)
		if !ok {
			break
		}
		st.commit(m.Node, m.To)
		frozen[m.Node] = true
		moves++

		if onMove != nil {
			onMove(step, m)
		}
		if m.LogLikelihood > lBest {
			lBest = m.LogLikelihood
			copy(zBest, st.z)
		}
	}
	return lBest, moves, nil
}
