package partitioner

import (
	"math"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

// Perturbation shakes an existing partition to escape a local optimum.
// the source partition is never mutated, every method works on a copy.
type Perturbation struct {
	rng      Rand
	reporter ProgressReporter
}

func NewPerturbation(rng Rand, reporter ProgressReporter) *Perturbation {
	return &Perturbation{
		rng:      rng,
		reporter: orNop(reporter),
	}
}

func (pt *Perturbation) validate(g *datastructure.Graph, source *datastructure.Partition, ratio float64) error {
	if pt.rng == nil {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "perturbation needs a random source")
	}
	if err := validatePair(g, source); err != nil {
		return err
	}
	if g.NumberOfVertices() == 0 || source.GetPartCount() <= 1 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument,
			"perturbation needs a non-empty graph and at least two parts")
	}
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "perturbation ratio must be in [0, 1], got %v", ratio)
	}
	return nil
}

// verticesToPerturb = round(total*ratio), at least 1 when ratio > 0, at most total.
func verticesToPerturb(total int, ratio float64) int {
	count := int(math.Round(float64(total) * ratio))
	if count < 1 && ratio > 0 && total > 0 {
		count = 1
	}
	return util.MinInt(count, total)
}

// Uniform moves round(n*ratio) vertices, taken in shuffled order, to random other parts.
// moves refused by CanMoveVertex are skipped, the loop gives up after verticesToPerturb*10 attempts.
func (pt *Perturbation) Uniform(g *datastructure.Graph, source *datastructure.Partition, ratio float64) (*datastructure.Partition, error) {
	if err := pt.validate(g, source, ratio); err != nil {
		return nil, err
	}

	n := g.NumberOfVertices()
	perturbed := source.Copy()
	target := verticesToPerturb(n, ratio)
	partCount := perturbed.GetPartCount()

	vertexList := make([]datastructure.Index, n)
	for i := range vertexList {
		vertexList[i] = datastructure.Index(i)
	}
	pt.rng.Shuffle(n, func(i, j int) {
		vertexList[i], vertexList[j] = vertexList[j], vertexList[i]
	})

	movesMade := 0
	attempts := 0
	maxAttempts := target * pkg.PERTURBATION_MAX_ATTEMPT_FACTOR
	for movesMade < target && attempts < maxAttempts {
		attempts++

		v := vertexList[attempts%n]
		srcPart := perturbed.PartOf(v)

		destPart := srcPart
		for tries := 0; destPart == srcPart && tries < pkg.PERTURBATION_TARGET_PART_TRIES; tries++ {
			destPart = pt.rng.Intn(partCount)
		}
		if destPart == srcPart || !CanMoveVertex(perturbed, v, destPart) {
			continue
		}

		if err := perturbed.SetAssignment(v, destPart); err != nil {
			return nil, err
		}
		movesMade++
	}

	perturbed.SetCutEdges(CalculateCutEdges(g, perturbed))
	pt.reporter.Report(ProgressEvent{
		Stage:     STAGE_PERTURBATION,
		Strategy:  "uniform",
		Iteration: movesMade,
		CutEdges:  perturbed.GetCutEdges(),
		Message:   "uniform perturbation applied",
	})
	return perturbed, nil
}

func boundaryVertices(g *datastructure.Graph, p *datastructure.Partition) []datastructure.Index {
	boundary := make([]datastructure.Index, 0)
	g.ForEachVertices(func(v datastructure.Index) {
		currentPart := p.PartOf(v)
		isBoundary := false
		g.ForEachNeighbor(v, func(u datastructure.Index) {
			if p.PartOf(u) != currentPart {
				isBoundary = true
			}
		})
		if isBoundary {
			boundary = append(boundary, v)
		}
	})
	return boundary
}

// Smart perturbs only boundary vertices, those with at least one neighbor in another part.
// each selected vertex goes to the legal part holding most of its neighbors, or to a random legal
// part when none of the neighbor parts accepts it. falls back to Uniform when there is no boundary.
func (pt *Perturbation) Smart(g *datastructure.Graph, source *datastructure.Partition, ratio float64) (*datastructure.Partition, error) {
	if err := pt.validate(g, source, ratio); err != nil {
		return nil, err
	}

	perturbed := source.Copy()
	boundary := boundaryVertices(g, perturbed)
	if len(boundary) == 0 {
		return pt.Uniform(g, source, ratio)
	}

	target := util.MaxInt(1, verticesToPerturb(len(boundary), ratio))
	pt.rng.Shuffle(len(boundary), func(i, j int) {
		boundary[i], boundary[j] = boundary[j], boundary[i]
	})

	partCount := perturbed.GetPartCount()
	neighborCounts := make([]int, partCount)
	validParts := make([]int, 0, partCount)

	movesMade := 0
	for _, v := range boundary[:target] {
		currentPart := perturbed.PartOf(v)

		for i := range neighborCounts {
			neighborCounts[i] = 0
		}
		g.ForEachNeighbor(v, func(u datastructure.Index) {
			neighborCounts[perturbed.PartOf(u)]++
		})

		bestPart := pkg.INVALID_PARTITION_ID
		maxNeighbors := 0
		for partId, count := range neighborCounts {
			if partId != currentPart && count > maxNeighbors && CanMoveVertex(perturbed, v, partId) {
				bestPart = partId
				maxNeighbors = count
			}
		}

		if bestPart == pkg.INVALID_PARTITION_ID {
			validParts = validParts[:0]
			for partId := 0; partId < partCount; partId++ {
				if partId != currentPart && CanMoveVertex(perturbed, v, partId) {
					validParts = append(validParts, partId)
				}
			}
			if len(validParts) > 0 {
				bestPart = validParts[pt.rng.Intn(len(validParts))]
			}
		}

		if bestPart == pkg.INVALID_PARTITION_ID {
			continue
		}
		if err := perturbed.SetAssignment(v, bestPart); err != nil {
			return nil, err
		}
		movesMade++
	}

	perturbed.SetCutEdges(CalculateCutEdges(g, perturbed))
	pt.reporter.Report(ProgressEvent{
		Stage:     STAGE_PERTURBATION,
		Strategy:  "smart",
		Iteration: movesMade,
		CutEdges:  perturbed.GetCutEdges(),
		Message:   "boundary perturbation applied",
	})
	return perturbed, nil
}
