package datastructure

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

type Index uint32

/*
Graph is an immutable undirected graph stored in Compressed Sparse Row form.
rowPointers[u]..rowPointers[u+1] is the range of adjacencyList holding the neighbors of u.
every undirected edge {u,v} is stored twice: v in the row of u and u in the row of v.
space: O(n + 2m)
*/
type Graph struct {
	rowPointers   []Index
	adjacencyList []Index
	numberOfEdges int
}

// validateCSR checks the shape of the CSR arrays and the range of every neighbor id.
func validateCSR(rowPointers, adjacencyList []Index) error {
	if len(rowPointers) == 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "row pointers must contain at least one entry")
	}
	if rowPointers[0] != 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "row pointers must start at 0, got %d", rowPointers[0])
	}

	n := len(rowPointers) - 1
	for u := 0; u < n; u++ {
		if rowPointers[u+1] < rowPointers[u] {
			return util.WrapErrorf(nil, util.ErrInvalidArgument,
				"row pointers must be non-decreasing, rowPointers[%d]=%d > rowPointers[%d]=%d",
				u, rowPointers[u], u+1, rowPointers[u+1])
		}
	}
	if int(rowPointers[n]) != len(adjacencyList) {
		return util.WrapErrorf(nil, util.ErrInvalidArgument,
			"last row pointer %d does not match adjacency list length %d", rowPointers[n], len(adjacencyList))
	}

	for u := 0; u < n; u++ {
		for k := rowPointers[u]; k < rowPointers[u+1]; k++ {
			if v := adjacencyList[k]; int(v) >= n {
				return util.WrapErrorf(nil, util.ErrInvalidIndex,
					"neighbor %d of vertex %d is out of range [0, %d)", v, u, n)
			}
		}
	}
	return nil
}

/*
checkSymmetric verifies that row u lists v exactly as often as row v lists u.
the multiset of row u is compared with the multiset of the transposed row u, built by
counting sort. delta is all zero again after a row that passes. O(n + m) time and space.
*/
func checkSymmetric(rowPointers, adjacencyList []Index) error {
	n := len(rowPointers) - 1

	transposedPointers := make([]Index, n+1)
	for _, v := range adjacencyList {
		transposedPointers[v+1]++
	}
	for u := 0; u < n; u++ {
		transposedPointers[u+1] += transposedPointers[u]
	}
	next := make([]Index, n)
	copy(next, transposedPointers[:n])
	transposed := make([]Index, len(adjacencyList))
	for u := 0; u < n; u++ {
		for k := rowPointers[u]; k < rowPointers[u+1]; k++ {
			v := adjacencyList[k]
			transposed[next[v]] = Index(u)
			next[v]++
		}
	}

	delta := make([]int, n)
	for u := 0; u < n; u++ {
		row := adjacencyList[rowPointers[u]:rowPointers[u+1]]
		transposedRow := transposed[transposedPointers[u]:transposedPointers[u+1]]
		for _, v := range row {
			delta[v]++
		}
		for _, x := range transposedRow {
			delta[x]--
		}
		for _, v := range row {
			if delta[v] != 0 {
				return util.WrapErrorf(nil, util.ErrInvalidArgument,
					"edge (%d, %d) is not stored symmetrically", u, v)
			}
		}
		for _, x := range transposedRow {
			if delta[x] != 0 {
				return util.WrapErrorf(nil, util.ErrInvalidArgument,
					"edge (%d, %d) is not stored symmetrically", x, u)
			}
		}
	}
	return nil
}

// NewGraph validates the CSR arrays, including symmetric storage of every edge, and counts every
// undirected edge once (entries with u < v). the slices are owned by the graph afterwards.
func NewGraph(rowPointers, adjacencyList []Index) (*Graph, error) {
	if err := validateCSR(rowPointers, adjacencyList); err != nil {
		return nil, err
	}
	if err := checkSymmetric(rowPointers, adjacencyList); err != nil {
		return nil, err
	}

	n := len(rowPointers) - 1
	numberOfEdges := 0
	for u := 0; u < n; u++ {
		for k := rowPointers[u]; k < rowPointers[u+1]; k++ {
			if Index(u) < adjacencyList[k] {
				numberOfEdges++
			}
		}
	}

	return &Graph{
		rowPointers:   rowPointers,
		adjacencyList: adjacencyList,
		numberOfEdges: numberOfEdges,
	}, nil
}

// NewSymmetrizedGraph accepts CSR arrays that store an edge in one row only. every entry becomes an
// undirected edge, self-loops and duplicates are dropped, see GraphBuilder.
func NewSymmetrizedGraph(rowPointers, adjacencyList []Index) (*Graph, error) {
	if err := validateCSR(rowPointers, adjacencyList); err != nil {
		return nil, err
	}

	n := len(rowPointers) - 1
	builder := NewGraphBuilder(n)
	for u := 0; u < n; u++ {
		for k := rowPointers[u]; k < rowPointers[u+1]; k++ {
			if _, err := builder.AddEdge(Index(u), adjacencyList[k]); err != nil {
				return nil, err
			}
		}
	}
	return builder.Build(), nil
}

func (g *Graph) NumberOfVertices() int {
	return len(g.rowPointers) - 1
}

func (g *Graph) NumberOfEdges() int {
	return g.numberOfEdges
}

func (g *Graph) validVertex(v Index) bool {
	return int(v) < g.NumberOfVertices()
}

// GetNeighbors returns the neighbors of v as a read-only view into the adjacency list.
func (g *Graph) GetNeighbors(v Index) ([]Index, error) {
	if !g.validVertex(v) {
		return nil, util.WrapErrorf(nil, util.ErrInvalidIndex, "vertex %d is out of range [0, %d)", v, g.NumberOfVertices())
	}
	start, end := g.rowPointers[v], g.rowPointers[v+1]
	return g.adjacencyList[start:end:end], nil
}

// ForEachNeighbor calls handle for every neighbor of v in storage order.
// v must be in range.
func (g *Graph) ForEachNeighbor(v Index, handle func(u Index)) {
	for k := g.rowPointers[v]; k < g.rowPointers[v+1]; k++ {
		handle(g.adjacencyList[k])
	}
}

func (g *Graph) ForEachVertices(handle func(v Index)) {
	for v := 0; v < g.NumberOfVertices(); v++ {
		handle(Index(v))
	}
}

func (g *Graph) Degree(v Index) int {
	return int(g.rowPointers[v+1] - g.rowPointers[v])
}

// HasEdge scans the row of u. O(degree(u)).
func (g *Graph) HasEdge(u, v Index) (bool, error) {
	if !g.validVertex(u) || !g.validVertex(v) {
		return false, util.WrapErrorf(nil, util.ErrInvalidIndex, "edge (%d, %d) is out of range [0, %d)", u, v, g.NumberOfVertices())
	}
	for k := g.rowPointers[u]; k < g.rowPointers[u+1]; k++ {
		if g.adjacencyList[k] == v {
			return true, nil
		}
	}
	return false, nil
}

// Density = m / (n*(n-1)/2), 0 for graphs with at most one vertex.
func (g *Graph) Density() float64 {
	n := g.NumberOfVertices()
	if n <= 1 {
		return 0
	}
	maxEdges := float64(n) * float64(n-1) / 2.0
	return float64(g.numberOfEdges) / maxEdges
}

func (g *Graph) GetRowPointers() []Index {
	rowPointers := make([]Index, len(g.rowPointers))
	copy(rowPointers, g.rowPointers)
	return rowPointers
}

func (g *Graph) GetAdjacencyList() []Index {
	adjacencyList := make([]Index, len(g.adjacencyList))
	copy(adjacencyList, g.adjacencyList)
	return adjacencyList
}
