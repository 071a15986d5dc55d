package partitioner

import (
	"math"
	"testing"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bestDeterministicCut(t *testing.T, g *datastructure.Graph, partCount, margin int) int {
	t.Helper()
	best := math.MaxInt
	for _, strategy := range []Strategy{MODULO, SEQUENTIAL, DFS} {
		p, err := Initialize(strategy, g, partCount, margin, nil)
		require.NoError(t, err)
		_, err = NewKernighanLin(nil).Optimize(g, p, 0)
		require.NoError(t, err)
		best = util.MinInt(best, p.GetCutEdges())
	}
	return best
}

func TestAdaptiveRandomTrials(t *testing.T) {
	testCases := []struct {
		name         string
		graph        func(t *testing.T) *datastructure.Graph
		partCount    int
		bestCutEdges int
		want         int
	}{
		{
			name:         "dense graph with a good cut",
			graph:        func(t *testing.T) *datastructure.Graph { return cycleGraph(t, 6) },
			partCount:    2,
			bestCutEdges: 2,
			want:         3,
		},
		{
			name:         "nothing found yet",
			graph:        func(t *testing.T) *datastructure.Graph { return cycleGraph(t, 6) },
			partCount:    2,
			bestCutEdges: math.MaxInt,
			want:         4,
		},
		{
			name:         "medium density with six parts and a poor cut",
			graph:        func(t *testing.T) *datastructure.Graph { return pathGraph(t, 30) },
			partCount:    6,
			bestCutEdges: 20,
			want:         6,
		},
		{
			name:         "sparse graph with many parts",
			graph:        func(t *testing.T) *datastructure.Graph { return pathGraph(t, 300) },
			partCount:    11,
			bestCutEdges: 10,
			want:         7,
		},
		{
			name:         "large graph is capped",
			graph:        func(t *testing.T) *datastructure.Graph { return pathGraph(t, 10001) },
			partCount:    11,
			bestCutEdges: math.MaxInt,
			want:         2,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdaptiveRandomTrials(tt.graph(t), tt.partCount, tt.bestCutEdges))
		})
	}
}

func TestFindBestPartitionSixCycle(t *testing.T) {
	g := cycleGraph(t, 6)
	reporter := &recordingReporter{}

	p, err := NewHybridPartitioner(0, reporter).FindBestPartition(g, 2, 10, NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, 2, p.GetCutEdges())
	assert.Equal(t, CalculateCutEdges(g, p), p.GetCutEdges())
	assert.True(t, p.IsBalanced())

	stages := reporter.stages()
	assert.Equal(t, 1, stages[STAGE_RANDOM_TRIALS])
	assert.Equal(t, 2, stages[STAGE_PERTURBATION])
	assert.GreaterOrEqual(t, stages[STAGE_NEW_BEST], 1)
}

func TestFindBestPartitionNotWorseThanDeterministic(t *testing.T) {
	testCases := []struct {
		name      string
		graph     func(t *testing.T) *datastructure.Graph
		partCount int
		margin    int
		wantCut   int
	}{
		{
			name:      "two cliques",
			graph:     func(t *testing.T) *datastructure.Graph { return twoCliquesGraph(t, 4) },
			partCount: 2,
			margin:    10,
			wantCut:   1,
		},
		{
			name:      "grid into three",
			graph:     func(t *testing.T) *datastructure.Graph { return gridGraph(t, 6, 6) },
			partCount: 3,
			margin:    10,
			wantCut:   -1,
		},
		{
			name:      "random graph into four",
			graph:     func(t *testing.T) *datastructure.Graph { return randomGraph(t, 50, 10, 21) },
			partCount: 4,
			margin:    20,
			wantCut:   -1,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.graph(t)
			p, err := NewHybridPartitioner(0, nil).FindBestPartition(g, tt.partCount, tt.margin, NewRand(8))
			require.NoError(t, err)

			assert.LessOrEqual(t, p.GetCutEdges(), bestDeterministicCut(t, g, tt.partCount, tt.margin))
			assert.Equal(t, CalculateCutEdges(g, p), p.GetCutEdges())
			assert.True(t, p.IsComplete())
			if tt.wantCut >= 0 {
				assert.Equal(t, tt.wantCut, p.GetCutEdges())
			}
		})
	}
}

func TestFindBestPartitionSinglePart(t *testing.T) {
	g := gridGraph(t, 3, 3)
	p, err := NewHybridPartitioner(0, nil).FindBestPartition(g, 1, 10, NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, 0, p.GetCutEdges())
	assert.Equal(t, []int{9}, p.GetPartSizes())
}

func TestFindBestPartitionRejectsInvalidInput(t *testing.T) {
	g := cycleGraph(t, 6)

	testCases := []struct {
		name      string
		graph     *datastructure.Graph
		partCount int
		margin    int
		rng       Rand
	}{
		{name: "nil graph", graph: nil, partCount: 2, margin: 10, rng: NewRand(1)},
		{name: "empty graph", graph: buildGraph(t, 0, nil), partCount: 2, margin: 10, rng: NewRand(1)},
		{name: "zero parts", graph: g, partCount: 0, margin: 10, rng: NewRand(1)},
		{name: "negative margin", graph: g, partCount: 2, margin: -1, rng: NewRand(1)},
		{name: "nil random source", graph: g, partCount: 2, margin: 10, rng: nil},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewHybridPartitioner(0, nil).FindBestPartition(tt.graph, tt.partCount, tt.margin, tt.rng)
			assert.ErrorIs(t, err, util.ErrInvalidArgument)
			assert.Nil(t, p)
		})
	}
}
