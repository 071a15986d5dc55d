package datastructure

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

/*
Partition assigns every vertex of a graph to one of partCount parts.
partSizes is kept in sync with assignments by SetAssignment, the only mutation primitive.
cutEdges is a cached value, callers reconcile it with the ground truth after a sequence
of incremental updates.

balance: averagePartSize = n / partCount, maxImbalance = max(1, averagePartSize*marginPercent/100),
a part p is inside the band when |partSizes[p] - averagePartSize| <= maxImbalance.
*/
type Partition struct {
	assignments   []int // vertex id -> part id, INVALID_PARTITION_ID when unassigned
	partSizes     []int
	partCount     int
	cutEdges      int
	marginPercent int
}

func validatePartitionParams(numberOfVertices, partCount, marginPercent int) error {
	if numberOfVertices < 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "number of vertices must not be negative, got %d", numberOfVertices)
	}
	if partCount < 1 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "part count must be positive, got %d", partCount)
	}
	if marginPercent < 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "margin must not be negative, got %d", marginPercent)
	}
	return nil
}

// NewPartition creates a partition with every vertex unassigned.
func NewPartition(numberOfVertices, partCount, marginPercent int) (*Partition, error) {
	if err := validatePartitionParams(numberOfVertices, partCount, marginPercent); err != nil {
		return nil, err
	}
	assignments := make([]int, numberOfVertices)
	for i := range assignments {
		assignments[i] = pkg.INVALID_PARTITION_ID
	}
	return &Partition{
		assignments:   assignments,
		partSizes:     make([]int, partCount),
		partCount:     partCount,
		marginPercent: marginPercent,
	}, nil
}

// NewPartitionFromAssignments copies assignments and derives the part sizes from it.
// INVALID_PARTITION_ID entries stay unassigned.
func NewPartitionFromAssignments(assignments []int, partCount, marginPercent int) (*Partition, error) {
	if err := validatePartitionParams(len(assignments), partCount, marginPercent); err != nil {
		return nil, err
	}
	p := &Partition{
		assignments:   make([]int, len(assignments)),
		partSizes:     make([]int, partCount),
		partCount:     partCount,
		marginPercent: marginPercent,
	}
	for v, partId := range assignments {
		if partId == pkg.INVALID_PARTITION_ID {
			p.assignments[v] = partId
			continue
		}
		if partId < 0 || partId >= partCount {
			return nil, util.WrapErrorf(nil, util.ErrInvalidArgument,
				"vertex %d is assigned to part %d outside [0, %d)", v, partId, partCount)
		}
		p.assignments[v] = partId
		p.partSizes[partId]++
	}
	return p, nil
}

func (p *Partition) NumberOfVertices() int {
	return len(p.assignments)
}

func (p *Partition) GetPartCount() int {
	return p.partCount
}

func (p *Partition) GetMarginPercent() int {
	return p.marginPercent
}

func (p *Partition) GetCutEdges() int {
	return p.cutEdges
}

func (p *Partition) SetCutEdges(cutEdges int) {
	p.cutEdges = cutEdges
}

// GetAssignment returns the part of v, or ErrInvalidIndex when v is out of range.
func (p *Partition) GetAssignment(v Index) (int, error) {
	if int(v) >= len(p.assignments) {
		return pkg.INVALID_PARTITION_ID, util.WrapErrorf(nil, util.ErrInvalidIndex,
			"vertex %d is out of range [0, %d)", v, len(p.assignments))
	}
	return p.assignments[v], nil
}

// PartOf is the unchecked variant of GetAssignment, v must be in range.
func (p *Partition) PartOf(v Index) int {
	return p.assignments[v]
}

// SetAssignment moves v to partId, updating the sizes of the old and the new part.
func (p *Partition) SetAssignment(v Index, partId int) error {
	if int(v) >= len(p.assignments) {
		return util.WrapErrorf(nil, util.ErrInvalidIndex, "vertex %d is out of range [0, %d)", v, len(p.assignments))
	}
	if partId < 0 || partId >= p.partCount {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "part %d is outside [0, %d)", partId, p.partCount)
	}

	oldPartId := p.assignments[v]
	if oldPartId != pkg.INVALID_PARTITION_ID {
		p.partSizes[oldPartId]--
	}
	p.partSizes[partId]++
	p.assignments[v] = partId
	return nil
}

func (p *Partition) GetPartSize(partId int) int {
	return p.partSizes[partId]
}

func (p *Partition) GetPartSizes() []int {
	sizes := make([]int, len(p.partSizes))
	copy(sizes, p.partSizes)
	return sizes
}

func (p *Partition) GetAssignments() []int {
	assignments := make([]int, len(p.assignments))
	copy(assignments, p.assignments)
	return assignments
}

// VerticesInPart returns the vertices of partId in increasing id order.
func (p *Partition) VerticesInPart(partId int) []Index {
	vertices := make([]Index, 0, p.partSizes[partId])
	for v, assigned := range p.assignments {
		if assigned == partId {
			vertices = append(vertices, Index(v))
		}
	}
	return vertices
}

// Copy returns a deep clone, nothing is shared with p.
func (p *Partition) Copy() *Partition {
	return &Partition{
		assignments:   p.GetAssignments(),
		partSizes:     p.GetPartSizes(),
		partCount:     p.partCount,
		cutEdges:      p.cutEdges,
		marginPercent: p.marginPercent,
	}
}

// Restore overwrites p with the state of snapshot, which must come from p.Copy().
func (p *Partition) Restore(snapshot *Partition) error {
	if snapshot == nil || len(snapshot.assignments) != len(p.assignments) || snapshot.partCount != p.partCount {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "snapshot does not match partition shape")
	}
	copy(p.assignments, snapshot.assignments)
	copy(p.partSizes, snapshot.partSizes)
	p.cutEdges = snapshot.cutEdges
	return nil
}

// IsComplete reports whether every vertex is assigned.
func (p *Partition) IsComplete() bool {
	for _, partId := range p.assignments {
		if partId == pkg.INVALID_PARTITION_ID {
			return false
		}
	}
	return true
}

func (p *Partition) GetAveragePartSize() int {
	return len(p.assignments) / p.partCount
}

func (p *Partition) GetMaxImbalance() int {
	maxImbalance := p.GetAveragePartSize() * p.marginPercent / 100
	return util.MaxInt(maxImbalance, 1)
}

func (p *Partition) IsBalanced() bool {
	avgSize := p.GetAveragePartSize()
	maxImbalance := p.GetMaxImbalance()
	for _, size := range p.partSizes {
		if util.Abs(size-avgSize) > maxImbalance {
			return false
		}
	}
	return true
}
