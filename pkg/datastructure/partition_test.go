package datastructure

import (
	"testing"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestNewPartitionValidation(t *testing.T) {
	testCases := []struct {
		name    string
		n       int
		parts   int
		margin  int
		wantErr bool
	}{
		{name: "valid", n: 4, parts: 2, margin: 10},
		{name: "empty graph single part", n: 0, parts: 1, margin: 0},
		{name: "zero parts", n: 4, parts: 0, margin: 10, wantErr: true},
		{name: "negative margin", n: 4, parts: 2, margin: -1, wantErr: true},
		{name: "negative vertices", n: -1, parts: 2, margin: 10, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPartition(tt.n, tt.parts, tt.margin)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, p.NumberOfVertices())
			assert.Equal(t, 0, sum(p.GetPartSizes()))
			for v := 0; v < tt.n; v++ {
				assert.Equal(t, pkg.INVALID_PARTITION_ID, p.PartOf(Index(v)))
			}
			assert.Equal(t, tt.n == 0, p.IsComplete())
		})
	}
}

func TestSetAssignmentKeepsSizes(t *testing.T) {
	p, err := NewPartition(5, 3, 10)
	require.NoError(t, err)

	moves := []struct {
		v    Index
		part int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 0}, {4, 1}, {0, 2}, {3, 2}, {3, 2}, {1, 0},
	}
	assigned := make(map[Index]struct{})
	for _, m := range moves {
		require.NoError(t, p.SetAssignment(m.v, m.part))
		assigned[m.v] = struct{}{}
		assert.Equal(t, len(assigned), sum(p.GetPartSizes()))
	}

	assert.Equal(t, []int{1, 1, 3}, p.GetPartSizes())
	assert.True(t, p.IsComplete())

	assert.ErrorIs(t, p.SetAssignment(5, 0), util.ErrInvalidIndex)
	assert.ErrorIs(t, p.SetAssignment(0, 3), util.ErrInvalidArgument)
	assert.ErrorIs(t, p.SetAssignment(0, -1), util.ErrInvalidArgument)
	assert.Equal(t, []int{1, 1, 3}, p.GetPartSizes(), "failed moves must not change sizes")

	part, err := p.GetAssignment(2)
	require.NoError(t, err)
	assert.Equal(t, 2, part)

	part, err = p.GetAssignment(9)
	assert.ErrorIs(t, err, util.ErrInvalidIndex)
	assert.Equal(t, pkg.INVALID_PARTITION_ID, part)
}

func TestPartitionCopyDoesNotAlias(t *testing.T) {
	src, err := NewPartitionFromAssignments([]int{0, 0, 1, 1}, 2, 10)
	require.NoError(t, err)
	src.SetCutEdges(2)

	cp := src.Copy()
	require.NoError(t, cp.SetAssignment(0, 1))
	cp.SetCutEdges(7)

	assert.Equal(t, []int{0, 0, 1, 1}, src.GetAssignments())
	assert.Equal(t, []int{2, 2}, src.GetPartSizes())
	assert.Equal(t, 2, src.GetCutEdges())

	assert.Equal(t, []int{1, 0, 1, 1}, cp.GetAssignments())
	assert.Equal(t, []int{1, 3}, cp.GetPartSizes())
	assert.Equal(t, src.GetMarginPercent(), cp.GetMarginPercent())

	require.NoError(t, cp.Restore(src))
	assert.Equal(t, src.GetAssignments(), cp.GetAssignments())
	assert.Equal(t, src.GetPartSizes(), cp.GetPartSizes())
	assert.Equal(t, 2, cp.GetCutEdges())

	other, err := NewPartition(3, 2, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, cp.Restore(other), util.ErrInvalidArgument)
}

func TestNewPartitionFromAssignments(t *testing.T) {
	p, err := NewPartitionFromAssignments([]int{0, pkg.INVALID_PARTITION_ID, 2, 2}, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, p.GetPartSizes())
	assert.False(t, p.IsComplete())
	assert.Equal(t, []Index{2, 3}, p.VerticesInPart(2))

	_, err = NewPartitionFromAssignments([]int{0, 3}, 3, 0)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestPartitionBalance(t *testing.T) {
	testCases := []struct {
		name             string
		assignments      []int
		parts            int
		margin           int
		wantAverage      int
		wantMaxImbalance int
		wantBalanced     bool
	}{
		{
			name:             "even split, imbalance floors at one",
			assignments:      []int{0, 0, 0, 1, 1, 1},
			parts:            2,
			margin:           10,
			wantAverage:      3,
			wantMaxImbalance: 1,
			wantBalanced:     true,
		},
		{
			name:             "off by one is tolerated",
			assignments:      []int{0, 0, 0, 0, 1, 1},
			parts:            2,
			margin:           0,
			wantAverage:      3,
			wantMaxImbalance: 1,
			wantBalanced:     true,
		},
		{
			name:             "off by two is not",
			assignments:      []int{0, 0, 0, 0, 0, 1},
			parts:            2,
			margin:           10,
			wantAverage:      3,
			wantMaxImbalance: 1,
			wantBalanced:     false,
		},
		{
			name:             "margin scales with average",
			assignments:      append(make([]int, 60), onesOf(40)...),
			parts:            2,
			margin:           20,
			wantAverage:      50,
			wantMaxImbalance: 10,
			wantBalanced:     true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPartitionFromAssignments(tt.assignments, tt.parts, tt.margin)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAverage, p.GetAveragePartSize())
			assert.Equal(t, tt.wantMaxImbalance, p.GetMaxImbalance())
			assert.Equal(t, tt.wantBalanced, p.IsBalanced())
		})
	}
}

func onesOf(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = 1
	}
	return xs
}
