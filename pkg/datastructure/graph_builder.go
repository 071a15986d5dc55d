package datastructure

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

// GraphBuilder collects undirected edges and packs them into a CSR Graph.
// self-loops and parallel edges are dropped, neighbor order follows first insertion.
type GraphBuilder struct {
	adjacency [][]Index
	edgeSet   map[uint64]struct{}
}

func NewGraphBuilder(numberOfVertices int) *GraphBuilder {
	return &GraphBuilder{
		adjacency: make([][]Index, numberOfVertices),
		edgeSet:   make(map[uint64]struct{}),
	}
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.adjacency)
}

// AddVertex appends an isolated vertex and returns its id.
func (b *GraphBuilder) AddVertex() Index {
	b.adjacency = append(b.adjacency, nil)
	return Index(len(b.adjacency) - 1)
}

func edgeKey(u, v Index) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(v)
}

// AddEdge reports whether {u,v} was new.
func (b *GraphBuilder) AddEdge(u, v Index) (bool, error) {
	n := len(b.adjacency)
	if int(u) >= n || int(v) >= n {
		return false, util.WrapErrorf(nil, util.ErrInvalidIndex, "edge (%d, %d) is out of range [0, %d)", u, v, n)
	}
	if u == v {
		return false, nil
	}
	key := edgeKey(u, v)
	if _, exists := b.edgeSet[key]; exists {
		return false, nil
	}
	b.edgeSet[key] = struct{}{}
	b.adjacency[u] = append(b.adjacency[u], v)
	b.adjacency[v] = append(b.adjacency[v], u)
	return true, nil
}

func (b *GraphBuilder) Build() *Graph {
	rowPointers := make([]Index, len(b.adjacency)+1)
	adjacencyList := make([]Index, 0, 2*len(b.edgeSet))
	for u, neighbors := range b.adjacency {
		rowPointers[u] = Index(len(adjacencyList))
		adjacencyList = append(adjacencyList, neighbors...)
	}
	rowPointers[len(b.adjacency)] = Index(len(adjacencyList))

	return &Graph{
		rowPointers:   rowPointers,
		adjacencyList: adjacencyList,
		numberOfEdges: len(b.edgeSet),
	}
}
