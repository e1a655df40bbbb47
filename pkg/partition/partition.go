// Package partition holds node-to-group assignments produced by the block
// model search, along with helpers to compare and serialize them.
package partition

import (
	"fmt"
	"math/rand"
	"sort"
)

// Partition maps node index i to its group index.
type Partition []int

// Random draws a partition of n nodes where every node is assigned
// independently and uniformly to one of c groups.
func Random(n, c int, rng *rand.Rand) Partition {
	z := make(Partition, n)
	if c <= 0 {
		return z
	}
	for i := range z {
		z[i] = rng.Intn(c)
	}
	return z
}

// Clone returns a copy that does not share storage with p.
func (p Partition) Clone() Partition {
	if p == nil {
		return nil
	}
	out := make(Partition, len(p))
	copy(out, p)
	return out
}

// Validate checks that p has n entries, all in [0, c).
func (p Partition) Validate(n, c int) error {
	if len(p) != n {
		return fmt.Errorf("partition has %d entries, expected %d", len(p), n)
	}
	for i, g := range p {
		if g < 0 || g >= c {
			return fmt.Errorf("node %d assigned to group %d outside [0,%d)", i, g, c)
		}
	}
	return nil
}

// NumGroups returns the number of distinct non-empty groups.
func (p Partition) NumGroups() int {
	seen := make(map[int]struct{})
	for _, g := range p {
		seen[g] = struct{}{}
	}
	return len(seen)
}

// Sizes returns the number of nodes in each of the c groups.
func (p Partition) Sizes(c int) []int {
	sizes := make([]int, c)
	for _, g := range p {
		if g >= 0 && g < c {
			sizes[g]++
		}
	}
	return sizes
}

// Groups returns the member nodes of every non-empty group, ordered by group
// index. Members are in ascending node order.
func (p Partition) Groups() [][]int {
	byGroup := make(map[int][]int)
	for node, g := range p {
		byGroup[g] = append(byGroup[g], node)
	}

	labels := make([]int, 0, len(byGroup))
	for g := range byGroup {
		labels = append(labels, g)
	}
	sort.Ints(labels)

	groups := make([][]int, 0, len(labels))
	for _, g := range labels {
		groups = append(groups, byGroup[g])
	}
	return groups
}

// Canonical relabels groups in order of first appearance, so two partitions
// that differ only by a permutation of labels become equal.
func (p Partition) Canonical() Partition {
	mapping := make(map[int]int)
	out := make(Partition, len(p))
	for i, g := range p {
		label, ok := mapping[g]
		if !ok {
			label = len(mapping)
			mapping[g] = label
		}
		out[i] = label
	}
	return out
}

// Equivalent reports whether a and b describe the same grouping up to a
// relabeling of groups.
func Equivalent(a, b Partition) bool {
	if len(a) != len(b) {
		return false
	}
	ca, cb := a.Canonical(), b.Canonical()
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}
