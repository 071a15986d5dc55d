package partitioner

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
)

type Stats struct {
	NumberOfVertices int
	NumberOfEdges    int
	PartCount        int
	PartSizes        []int
	MinPartSize      int
	MaxPartSize      int
	AveragePartSize  int
	MaxImbalance     int
	CutEdges         int
	CutRatio         float64
	Balanced         bool
}

// ComputeStats recomputes the cut from scratch, the cached cutEdges of p is not trusted.
// CutRatio = CutEdges / NumberOfEdges, 0 for edgeless graphs.
func ComputeStats(g *datastructure.Graph, p *datastructure.Partition) (Stats, error) {
	if err := validatePair(g, p); err != nil {
		return Stats{}, err
	}

	sizes := p.GetPartSizes()
	stats := Stats{
		NumberOfVertices: g.NumberOfVertices(),
		NumberOfEdges:    g.NumberOfEdges(),
		PartCount:        p.GetPartCount(),
		PartSizes:        sizes,
		MinPartSize:      sizes[0],
		MaxPartSize:      sizes[0],
		AveragePartSize:  p.GetAveragePartSize(),
		MaxImbalance:     p.GetMaxImbalance(),
		CutEdges:         CalculateCutEdges(g, p),
		Balanced:         p.IsBalanced(),
	}
	for _, size := range sizes[1:] {
		if size < stats.MinPartSize {
			stats.MinPartSize = size
		}
		if size > stats.MaxPartSize {
			stats.MaxPartSize = size
		}
	}
	if stats.NumberOfEdges > 0 {
		stats.CutRatio = float64(stats.CutEdges) / float64(stats.NumberOfEdges)
	}
	return stats, nil
}
