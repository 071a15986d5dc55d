package partitioner

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

// CalculateCutEdges counts every undirected edge {u,v} (u < v) whose endpoints are in different parts.
func CalculateCutEdges(g *datastructure.Graph, p *datastructure.Partition) int {
	cutEdges := 0
	g.ForEachVertices(func(u datastructure.Index) {
		partU := p.PartOf(u)
		g.ForEachNeighbor(u, func(v datastructure.Index) {
			if u < v && p.PartOf(v) != partU {
				cutEdges++
			}
		})
	})
	return cutEdges
}

func CountNeighborsInPart(g *datastructure.Graph, p *datastructure.Partition, v datastructure.Index, partId int) int {
	count := 0
	g.ForEachNeighbor(v, func(u datastructure.Index) {
		if p.PartOf(u) == partId {
			count++
		}
	})
	return count
}

// CanMoveVertex reports whether moving v into targetPart keeps both parts inside the balance band.
// the target is rejected once its size reaches average+maxImbalance and the source once its size is
// down to average-maxImbalance, so with tight margins every move may be refused.
func CanMoveVertex(p *datastructure.Partition, v datastructure.Index, targetPart int) bool {
	currentPart := p.PartOf(v)
	if currentPart == targetPart {
		return false
	}

	avgSize := p.GetAveragePartSize()
	maxImbalance := p.GetMaxImbalance()

	if p.GetPartSize(targetPart) >= avgSize+maxImbalance {
		return false
	}
	if p.GetPartSize(currentPart) <= avgSize-maxImbalance {
		return false
	}
	return true
}

// BalanceRandomPartition pairs oversized parts with undersized ones and moves one random vertex
// per pair per round, until one side is empty or vertexCount/2 rounds have passed.
// cut quality is ignored. cutEdges is recomputed at the end.
func BalanceRandomPartition(g *datastructure.Graph, p *datastructure.Partition, rng Rand) error {
	n := g.NumberOfVertices()
	if n == 0 || p.GetPartCount() <= 1 {
		return nil
	}
	if p.NumberOfVertices() != n {
		return util.WrapErrorf(nil, util.ErrInvalidArgument,
			"partition has %d vertices, graph has %d", p.NumberOfVertices(), n)
	}

	avgSize := p.GetAveragePartSize()
	maxImbalance := p.GetMaxImbalance()
	maxIterations := n / 2

	for iteration := 0; iteration < maxIterations; iteration++ {
		partsAbove := make([]int, 0)
		partsBelow := make([]int, 0)
		for partId, size := range p.GetPartSizes() {
			if size > avgSize+maxImbalance {
				partsAbove = append(partsAbove, partId)
			} else if size < avgSize-maxImbalance {
				partsBelow = append(partsBelow, partId)
			}
		}

		if len(partsAbove) == 0 || len(partsBelow) == 0 {
			break
		}

		transfers := util.MinInt(len(partsAbove), len(partsBelow))
		for i := 0; i < transfers; i++ {
			candidates := p.VerticesInPart(partsAbove[i])
			if len(candidates) == 0 {
				continue
			}
			v := candidates[rng.Intn(len(candidates))]
			if err := p.SetAssignment(v, partsBelow[i]); err != nil {
				return err
			}
		}
	}

	p.SetCutEdges(CalculateCutEdges(g, p))
	return nil
}

func validateInputs(g *datastructure.Graph, partCount, marginPercent int) error {
	if g == nil || g.NumberOfVertices() == 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "graph must have at least one vertex")
	}
	if partCount <= 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "part count must be positive, got %d", partCount)
	}
	if marginPercent < 0 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "margin must not be negative, got %d", marginPercent)
	}
	return nil
}

func validatePair(g *datastructure.Graph, p *datastructure.Partition) error {
	if g == nil || p == nil {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "graph and partition must not be nil")
	}
	if p.NumberOfVertices() != g.NumberOfVertices() {
		return util.WrapErrorf(nil, util.ErrInvalidArgument,
			"partition has %d vertices, graph has %d", p.NumberOfVertices(), g.NumberOfVertices())
	}
	if !p.IsComplete() {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "partition has unassigned vertices")
	}
	return nil
}
