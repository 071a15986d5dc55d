package partitioner

import (
	"math"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

// HybridPartitioner runs every initializer through Kernighan-Lin, then perturbs and re-optimizes
// the best result, keeping whichever partition cuts the fewest edges.
type HybridPartitioner struct {
	maxIterations int
	kl            *KernighanLin
	reporter      ProgressReporter
}

// NewHybridPartitioner uses maxIterations as the Kernighan-Lin pass cap, <= 0 picks the default for the graph size.
func NewHybridPartitioner(maxIterations int, reporter ProgressReporter) *HybridPartitioner {
	reporter = orNop(reporter)
	return &HybridPartitioner{
		maxIterations: maxIterations,
		kl:            NewKernighanLin(reporter),
		reporter:      reporter,
	}
}

// AdaptiveRandomTrials returns how many random initializations are worth trying.
// sparse graphs and many parts get more trials, so does a search that has not found a cut
// below half the edge count yet. graphs above 10000 vertices are capped at 2.
func AdaptiveRandomTrials(g *datastructure.Graph, partCount, bestCutEdges int) int {
	trials := pkg.HYBRID_BASE_RANDOM_TRIALS
	density := g.Density()
	if density < pkg.HYBRID_SPARSE_DENSITY {
		trials += 2
	} else if density < pkg.HYBRID_MEDIUM_DENSITY {
		trials++
	}

	if partCount > 10 {
		trials += 2
	} else if partCount > 5 {
		trials++
	}

	if bestCutEdges == math.MaxInt || bestCutEdges > g.NumberOfEdges()/2 {
		trials++
	}

	if g.NumberOfVertices() > pkg.HYBRID_LARGE_GRAPH_VERTEX_THRESHOLD {
		trials = util.MinInt(trials, pkg.HYBRID_LARGE_GRAPH_RANDOM_TRIALS)
	}
	return trials
}

type bestTracker struct {
	partition *datastructure.Partition
	cutEdges  int
}

// offer keeps candidate when it is strictly better.
func (b *bestTracker) offer(candidate *datastructure.Partition) bool {
	if candidate.GetCutEdges() < b.cutEdges {
		b.partition = candidate
		b.cutEdges = candidate.GetCutEdges()
		return true
	}
	return false
}

func (h *HybridPartitioner) optimize(g *datastructure.Graph, p *datastructure.Partition, strategy string, best *bestTracker) error {
	h.reporter.Report(ProgressEvent{
		Stage:    STAGE_INITIALIZE,
		Strategy: strategy,
		CutEdges: p.GetCutEdges(),
		Message:  "initial partition built",
	})
	if _, err := h.kl.Optimize(g, p, h.maxIterations); err != nil {
		return err
	}
	if best.offer(p) {
		h.reporter.Report(ProgressEvent{
			Stage:    STAGE_NEW_BEST,
			Strategy: strategy,
			CutEdges: p.GetCutEdges(),
			Message:  "found a new best partition",
		})
	}
	return nil
}

// FindBestPartition returns the partition with the fewest cut edges found by
//  1. modulo, sequential and dfs initialization, each optimized with Kernighan-Lin
//  2. AdaptiveRandomTrials random initializations, each optimized with Kernighan-Lin
//  3. 2 perturbation rounds (3 above 1000 vertices) of the best so far, alternating uniform and
//     smart perturbation with ratio 0.15 first and 0.10 afterwards, each re-optimized
//
// cutEdges of the result is recomputed from scratch.
func (h *HybridPartitioner) FindBestPartition(g *datastructure.Graph, partCount, marginPercent int, rng Rand) (*datastructure.Partition, error) {
	if err := validateInputs(g, partCount, marginPercent); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "hybrid partitioning needs a random source")
	}

	best := &bestTracker{cutEdges: math.MaxInt}

	for _, strategy := range []Strategy{MODULO, SEQUENTIAL, DFS} {
		p, err := Initialize(strategy, g, partCount, marginPercent, rng)
		if err != nil {
			return nil, err
		}
		if err := h.optimize(g, p, strategy.String(), best); err != nil {
			return nil, err
		}
	}

	randomTrials := AdaptiveRandomTrials(g, partCount, best.cutEdges)
	h.reporter.Report(ProgressEvent{
		Stage:     STAGE_RANDOM_TRIALS,
		Iteration: randomTrials,
		CutEdges:  best.cutEdges,
		Message:   "running random initializations",
	})
	for trial := 0; trial < randomTrials; trial++ {
		p, err := InitializeRandom(g, partCount, marginPercent, rng)
		if err != nil {
			return nil, err
		}
		if err := h.optimize(g, p, RANDOM.String(), best); err != nil {
			return nil, err
		}
	}

	if best.partition != nil && partCount > 1 {
		if err := h.perturb(g, best, rng); err != nil {
			return nil, err
		}
	}

	if best.partition == nil {
		return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "no initializer produced a partition")
	}

	if verification := CalculateCutEdges(g, best.partition); verification != best.partition.GetCutEdges() {
		h.reporter.Report(ProgressEvent{
			Stage:    STAGE_RECONCILE,
			CutEdges: verification,
			Message:  "corrected cut edge count of the best partition",
		})
		best.partition.SetCutEdges(verification)
	}
	return best.partition, nil
}

func (h *HybridPartitioner) perturb(g *datastructure.Graph, best *bestTracker, rng Rand) error {
	perturbation := NewPerturbation(rng, h.reporter)

	rounds := pkg.HYBRID_PERTURBATION_ROUNDS
	if g.NumberOfVertices() > pkg.HYBRID_PERTURBATION_VERTEX_THRESHOLD {
		rounds = pkg.HYBRID_PERTURBATION_ROUNDS_LARGE
	}

	for round := 0; round < rounds; round++ {
		ratio := pkg.NEXT_PERTURBATION_RATIO
		if round == 0 {
			ratio = pkg.FIRST_PERTURBATION_RATIO
		}

		var (
			perturbed *datastructure.Partition
			strategy  string
			err       error
		)
		if round%2 == 0 {
			strategy = "uniform-perturbation"
			perturbed, err = perturbation.Uniform(g, best.partition, ratio)
		} else {
			strategy = "smart-perturbation"
			perturbed, err = perturbation.Smart(g, best.partition, ratio)
		}
		if err != nil {
			return err
		}
		if err := h.optimize(g, perturbed, strategy, best); err != nil {
			return err
		}
	}
	return nil
}
