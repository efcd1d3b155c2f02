package reopt

import (
	"sort"

	"github.com/katalvlaran/ciplp/lpvar"
	"github.com/katalvlaran/ciplp/tolerance"
)

// solTrieNode is one edge-target in the binary trie: at most two
// children (left edge = 0, right edge = 1), and a captured solution
// only at nodes where an inserted path actually terminates.
type solTrieNode struct {
	children [2]*solTrieNode
	solution []float64
}

// SolTree is the solution trie spec.md §4.8 describes: a binary trie
// over binary-typed variables in index order, used to recognize a
// previously found feasible assignment without re-solving for it.
// Bounded by maxSols (reopt.savesols).
type SolTree struct {
	root    *solTrieNode
	order   []*solTrieNode
	maxSols int
}

// NewSolTree returns an empty SolTree bounded to at most maxSols
// stored solutions (0 means unbounded).
func NewSolTree(maxSols int) *SolTree {
	return &SolTree{root: &solTrieNode{}, maxSols: maxSols}
}

// Len returns the number of solutions currently stored.
func (s *SolTree) Len() int { return len(s.order) }

// Insert walks the trie along bits (one entry per binary variable, in
// index order; 0 follows the left edge, any other value the right
// edge), creating nodes as needed. The solution is captured at the
// resulting leaf, and Insert reports true, only if at least one new
// node had to be created — an unchanged walk means this exact
// assignment was already stored. Once maxSols solutions are stored,
// further inserts are rejected (false) without walking the trie.
func (s *SolTree) Insert(bits []int, solution []float64) bool {
	if s.maxSols > 0 && len(s.order) >= s.maxSols {
		return false
	}

	node := s.root
	createdNewPath := false
	for _, b := range bits {
		idx := 0
		if b != 0 {
			idx = 1
		}
		if node.children[idx] == nil {
			node.children[idx] = &solTrieNode{}
			createdNewPath = true
		}
		node = node.children[idx]
	}
	if !createdNewPath {
		return false
	}

	node.solution = append([]float64(nil), solution...)
	s.order = append(s.order, node)
	return true
}

// Contains reports whether bits names a path already stored, without
// mutating the trie.
func (s *SolTree) Contains(bits []int) bool {
	node := s.root
	for _, b := range bits {
		idx := 0
		if b != 0 {
			idx = 1
		}
		next := node.children[idx]
		if next == nil {
			return false
		}
		node = next
	}
	return node.solution != nil
}

// Solutions returns every captured solution in insertion order (spec.md
// §7's supplemented deterministic-order iterator, companion to
// AddNode).
func (s *SolTree) Solutions() [][]float64 {
	out := make([][]float64, len(s.order))
	for i, n := range s.order {
		out[i] = n.solution
	}
	return out
}

// BitsFromSolution extracts the trie path for one solution: the
// rounded 0/1 value of every binary-typed variable in vars, ordered by
// ProbIndex. values is indexed by ProbIndex, the same convention
// package mir uses for its coefficient maps.
func BitsFromSolution(vars []*lpvar.Variable, values map[int]float64, set *tolerance.Settings) []int {
	binaries := make([]*lpvar.Variable, 0, len(vars))
	for _, v := range vars {
		if v.Type() == lpvar.Binary {
			binaries = append(binaries, v)
		}
	}
	sort.Slice(binaries, func(i, j int) bool {
		return binaries[i].ProbIndex() < binaries[j].ProbIndex()
	})

	bits := make([]int, len(binaries))
	for i, v := range binaries {
		if set.IsGE(values[v.ProbIndex()], 0.5) {
			bits[i] = 1
		}
	}
	return bits
}
