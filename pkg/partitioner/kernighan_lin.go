package partitioner

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
)

type move struct {
	vertex  datastructure.Index
	newPart int
	gain    int
}

type KernighanLin struct {
	reporter ProgressReporter

	// neighborCounts[p] = neighbors of the scanned vertex in part p, reused across scans
	neighborCounts []int
}

func NewKernighanLin(reporter ProgressReporter) *KernighanLin {
	return &KernighanLin{
		reporter: orNop(reporter),
	}
}

// Gain of moving v to newPart: neighbors in newPart minus neighbors in the current part of v.
// for any number of parts this is exactly the drop in cut edges.
func Gain(g *datastructure.Graph, p *datastructure.Partition, v datastructure.Index, newPart int) int {
	currentPart := p.PartOf(v)
	return CountNeighborsInPart(g, p, v, newPart) - CountNeighborsInPart(g, p, v, currentPart)
}

func (kl *KernighanLin) countNeighbors(g *datastructure.Graph, p *datastructure.Partition, v datastructure.Index) []int {
	for i := range kl.neighborCounts {
		kl.neighborCounts[i] = 0
	}
	g.ForEachNeighbor(v, func(u datastructure.Index) {
		kl.neighborCounts[p.PartOf(u)]++
	})
	return kl.neighborCounts
}

// bestMove scans every unmoved vertex and every legal target part and returns the move with the
// largest strictly positive gain. ties keep the first one found in vertex then part order.
func (kl *KernighanLin) bestMove(g *datastructure.Graph, p *datastructure.Partition, moved []bool) (move, bool) {
	best := move{gain: -1}
	found := false
	partCount := p.GetPartCount()

	for v := 0; v < g.NumberOfVertices(); v++ {
		if moved[v] {
			continue
		}
		vertex := datastructure.Index(v)
		currentPart := p.PartOf(vertex)
		counts := kl.countNeighbors(g, p, vertex)

		for targetPart := 0; targetPart < partCount; targetPart++ {
			if targetPart == currentPart || !CanMoveVertex(p, vertex, targetPart) {
				continue
			}
			gain := counts[targetPart] - counts[currentPart]
			if gain > best.gain {
				best = move{vertex: vertex, newPart: targetPart, gain: gain}
				found = true
			}
		}
	}

	if !found || best.gain <= 0 {
		return move{}, false
	}
	return best, true
}

/*
pass runs one Kernighan-Lin pass over p:
 1. snapshot p
 2. greedily pick the best positive-gain move against the tentatively mutated partition, apply it and
    lock the vertex. repeat until no positive move is left or every vertex moved once.
 3. restore the snapshot and re-apply only the prefix of moves with the highest cumulative gain.

returns the committed gain, 0 when nothing improved.
*/
func (kl *KernighanLin) pass(g *datastructure.Graph, p *datastructure.Partition) (int, error) {
	n := g.NumberOfVertices()
	snapshot := p.Copy()
	moved := make([]bool, n)
	moves := make([]move, 0)
	cumulativeGain := []int{0}

	for step := 0; step < n; step++ {
		m, ok := kl.bestMove(g, p, moved)
		if !ok {
			break
		}
		moves = append(moves, m)
		cumulativeGain = append(cumulativeGain, cumulativeGain[len(cumulativeGain)-1]+m.gain)
		if err := p.SetAssignment(m.vertex, m.newPart); err != nil {
			return 0, err
		}
		moved[m.vertex] = true
	}

	maxCumulativeGain := 0
	bestPrefixLength := 0
	for i := 1; i <= len(moves); i++ {
		if cumulativeGain[i] > maxCumulativeGain {
			maxCumulativeGain = cumulativeGain[i]
			bestPrefixLength = i
		}
	}

	if err := p.Restore(snapshot); err != nil {
		return 0, err
	}
	if maxCumulativeGain <= 0 {
		return 0, nil
	}

	for _, m := range moves[:bestPrefixLength] {
		if err := p.SetAssignment(m.vertex, m.newPart); err != nil {
			return 0, err
		}
	}
	p.SetCutEdges(p.GetCutEdges() - maxCumulativeGain)
	return maxCumulativeGain, nil
}

func defaultMaxIterations(numberOfVertices int) int {
	if numberOfVertices > pkg.KL_LARGE_GRAPH_VERTEX_THRESHOLD {
		return pkg.KL_LARGE_GRAPH_MAX_ITERATION
	}
	return pkg.KL_DEFAULT_MAX_ITERATION
}

// Optimize runs passes on p until one makes no improvement or maxIterations passes have run.
// maxIterations <= 0 picks the default cap for the graph size. cutEdges of p is exact on return.
// returns the number of passes run.
func (kl *KernighanLin) Optimize(g *datastructure.Graph, p *datastructure.Partition, maxIterations int) (int, error) {
	if err := validatePair(g, p); err != nil {
		return 0, err
	}
	n := g.NumberOfVertices()
	if n == 0 || p.GetPartCount() <= 1 {
		return 0, nil
	}
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations(n)
	}

	kl.neighborCounts = make([]int, p.GetPartCount())
	p.SetCutEdges(CalculateCutEdges(g, p))

	iteration := 0
	for iteration < maxIterations {
		gain, err := kl.pass(g, p)
		if err != nil {
			return iteration, err
		}
		iteration++
		if gain <= 0 {
			break
		}
		kl.reporter.Report(ProgressEvent{
			Stage:     STAGE_KL_PASS,
			Iteration: iteration,
			CutEdges:  p.GetCutEdges(),
			Message:   "kernighan-lin pass improved the cut",
		})
	}

	if finalCutEdges := CalculateCutEdges(g, p); finalCutEdges != p.GetCutEdges() {
		kl.reporter.Report(ProgressEvent{
			Stage:    STAGE_RECONCILE,
			CutEdges: finalCutEdges,
			Message:  "corrected drifted cut edge count",
		})
		p.SetCutEdges(finalCutEdges)
	}
	kl.reporter.Report(ProgressEvent{
		Stage:     STAGE_KL_DONE,
		Iteration: iteration,
		CutEdges:  p.GetCutEdges(),
		Message:   "kernighan-lin finished",
	})
	return iteration, nil
}
