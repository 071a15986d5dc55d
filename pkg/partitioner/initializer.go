package partitioner

import (
	"strings"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

type Strategy int

const (
	MODULO Strategy = iota
	SEQUENTIAL
	RANDOM
	DFS
)

func (s Strategy) String() string {
	switch s {
	case MODULO:
		return "modulo"
	case SEQUENTIAL:
		return "sequential"
	case RANDOM:
		return "random"
	case DFS:
		return "dfs"
	}
	return "unknown"
}

// ParseStrategy accepts the english names and the polish aliases used by older input scripts.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "modulo":
		return MODULO, nil
	case "sequential", "sekwencyjny":
		return SEQUENTIAL, nil
	case "random", "losowy":
		return RANDOM, nil
	case "dfs":
		return DFS, nil
	}
	return MODULO, util.WrapErrorf(nil, util.ErrInvalidArgument, "unknown initialization strategy %q", name)
}

// Initialize dispatches to the initializer of strategy. rng is only used by RANDOM.
func Initialize(strategy Strategy, g *datastructure.Graph, partCount, marginPercent int, rng Rand) (*datastructure.Partition, error) {
	switch strategy {
	case MODULO:
		return InitializeModulo(g, partCount, marginPercent)
	case SEQUENTIAL:
		return InitializeSequential(g, partCount, marginPercent)
	case RANDOM:
		return InitializeRandom(g, partCount, marginPercent, rng)
	case DFS:
		return InitializeDFS(g, partCount, marginPercent)
	}
	return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "unknown initialization strategy %d", strategy)
}

func newEmptyPartition(g *datastructure.Graph, partCount, marginPercent int) (*datastructure.Partition, error) {
	if err := validateInputs(g, partCount, marginPercent); err != nil {
		return nil, err
	}
	return datastructure.NewPartition(g.NumberOfVertices(), partCount, marginPercent)
}

// InitializeModulo assigns vertex i to part i mod partCount.
func InitializeModulo(g *datastructure.Graph, partCount, marginPercent int) (*datastructure.Partition, error) {
	p, err := newEmptyPartition(g, partCount, marginPercent)
	if err != nil {
		return nil, err
	}

	for v := 0; v < g.NumberOfVertices(); v++ {
		if err := p.SetAssignment(datastructure.Index(v), v%partCount); err != nil {
			return nil, err
		}
	}

	p.SetCutEdges(CalculateCutEdges(g, p))
	return p, nil
}

// InitializeSequential splits the vertex ids into partCount contiguous blocks,
// the first n mod partCount blocks get one extra vertex.
func InitializeSequential(g *datastructure.Graph, partCount, marginPercent int) (*datastructure.Partition, error) {
	p, err := newEmptyPartition(g, partCount, marginPercent)
	if err != nil {
		return nil, err
	}

	n := g.NumberOfVertices()
	verticesPerPart := n / partCount
	remainder := n % partCount

	v := 0
	for partId := 0; partId < partCount; partId++ {
		partSize := verticesPerPart
		if partId < remainder {
			partSize++
		}
		for i := 0; i < partSize && v < n; i++ {
			if err := p.SetAssignment(datastructure.Index(v), partId); err != nil {
				return nil, err
			}
			v++
		}
	}

	p.SetCutEdges(CalculateCutEdges(g, p))
	return p, nil
}

// InitializeRandom draws a uniform part for every vertex and then rebalances.
func InitializeRandom(g *datastructure.Graph, partCount, marginPercent int, rng Rand) (*datastructure.Partition, error) {
	if rng == nil {
		return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "random initialization needs a random source")
	}
	p, err := newEmptyPartition(g, partCount, marginPercent)
	if err != nil {
		return nil, err
	}

	for v := 0; v < g.NumberOfVertices(); v++ {
		if err := p.SetAssignment(datastructure.Index(v), rng.Intn(partCount)); err != nil {
			return nil, err
		}
	}

	if err := BalanceRandomPartition(g, p, rng); err != nil {
		return nil, err
	}
	p.SetCutEdges(CalculateCutEdges(g, p))
	return p, nil
}

// InitializeDFS grows parts by depth-first search from unvisited vertices in id order.
// a part is closed after n/partCount vertices, except the last one which takes whatever is left.
func InitializeDFS(g *datastructure.Graph, partCount, marginPercent int) (*datastructure.Partition, error) {
	p, err := newEmptyPartition(g, partCount, marginPercent)
	if err != nil {
		return nil, err
	}

	n := g.NumberOfVertices()
	visited := make([]bool, n)
	targetSizePerPart := n / partCount

	currentPart := 0
	currentPartSize := 0

	for start := 0; start < n && currentPart < partCount; start++ {
		if visited[start] {
			continue
		}

		stack := []datastructure.Index{datastructure.Index(start)}
		for len(stack) > 0 && currentPartSize < targetSizePerPart {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v] {
				continue
			}

			visited[v] = true
			if err := p.SetAssignment(v, currentPart); err != nil {
				return nil, err
			}
			currentPartSize++

			g.ForEachNeighbor(v, func(u datastructure.Index) {
				if !visited[u] {
					stack = append(stack, u)
				}
			})
		}

		if currentPartSize >= targetSizePerPart && currentPart < partCount-1 {
			currentPart++
			currentPartSize = 0
		}
	}

	for v := 0; v < n; v++ {
		if !visited[v] {
			if err := p.SetAssignment(datastructure.Index(v), currentPart); err != nil {
				return nil, err
			}
		}
	}

	p.SetCutEdges(CalculateCutEdges(g, p))
	return p, nil
}
