package partitioner

import (
	"testing"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

type edge struct {
	u, v int
}

func buildGraph(t *testing.T, n int, edges []edge) *datastructure.Graph {
	t.Helper()
	b := datastructure.NewGraphBuilder(n)
	for _, e := range edges {
		_, err := b.AddEdge(datastructure.Index(e.u), datastructure.Index(e.v))
		require.NoError(t, err)
	}
	return b.Build()
}

func cycleGraph(t *testing.T, n int) *datastructure.Graph {
	edges := make([]edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, edge{i, (i + 1) % n})
	}
	return buildGraph(t, n, edges)
}

func pathGraph(t *testing.T, n int) *datastructure.Graph {
	edges := make([]edge, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, edge{i, i + 1})
	}
	return buildGraph(t, n, edges)
}

func gridGraph(t *testing.T, rows, cols int) *datastructure.Graph {
	edges := make([]edge, 0, 2*rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := r*cols + c
			if c+1 < cols {
				edges = append(edges, edge{v, v + 1})
			}
			if r+1 < rows {
				edges = append(edges, edge{v, v + cols})
			}
		}
	}
	return buildGraph(t, rows*cols, edges)
}

// two cliques of size k joined by the single edge {k-1, k}, added first so it leads both rows.
func twoCliquesGraph(t *testing.T, k int) *datastructure.Graph {
	edges := []edge{{k - 1, k}}
	for offset := 0; offset < 2*k; offset += k {
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				edges = append(edges, edge{offset + i, offset + j})
			}
		}
	}
	return buildGraph(t, 2*k, edges)
}

// randomGraph adds each of the n*(n-1)/2 possible edges with probability percent/100.
func randomGraph(t *testing.T, n, percent int, seed uint64) *datastructure.Graph {
	rng := NewRand(seed)
	edges := make([]edge, 0)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Intn(100) < percent {
				edges = append(edges, edge{u, v})
			}
		}
	}
	return buildGraph(t, n, edges)
}

func partitionOf(t *testing.T, assignments []int, partCount, marginPercent int) *datastructure.Partition {
	t.Helper()
	p, err := datastructure.NewPartitionFromAssignments(assignments, partCount, marginPercent)
	require.NoError(t, err)
	return p
}

func sumSizes(p *datastructure.Partition) int {
	total := 0
	for _, size := range p.GetPartSizes() {
		total += size
	}
	return total
}

type recordingReporter struct {
	events []ProgressEvent
}

func (r *recordingReporter) Report(event ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingReporter) stages() map[ProgressStage]int {
	counts := make(map[ProgressStage]int)
	for _, e := range r.events {
		counts[e.Stage]++
	}
	return counts
}
