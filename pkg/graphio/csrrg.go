package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

const CSRRG_SEPARATOR = ";"

// CsrrgData keeps the sections of a CSRRG file that are not part of the graph itself.
type CsrrgData struct {
	MaxSecondaryValue    int
	SecondaryData        []int
	SecondaryRowPointers []int
}

/*
ReadCsrrg reads the five line CSRRG text format, every list ';' separated:

	line 1: max secondary value
	line 2: secondary data
	line 3: secondary row pointers
	line 4: graph adjacency list
	line 5: graph row pointers

lines 4 and 5 form the CSR graph. one-directional entries are mirrored so the graph is undirected,
self-loops and repeated entries are dropped.
*/
func ReadCsrrg(r io.Reader) (*datastructure.Graph, *CsrrgData, error) {
	lr := newLineReader(r)
	lines := make([]string, 5)
	for i := range lines {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			return nil, nil, lr.formatErrorf("csrrg file ends after %d of 5 lines", i)
		}
		if err != nil {
			return nil, nil, err
		}
		lines[i] = line
	}

	lists := make([][]int, 5)
	for i, line := range lines {
		values, err := parseIntList(line, CSRRG_SEPARATOR)
		if err != nil {
			return nil, nil, util.WrapErrorf(err, util.ErrInvalidFormat, "csrrg line %d", i+1)
		}
		lists[i] = values
	}
	if len(lists[0]) != 1 {
		return nil, nil, util.WrapErrorf(nil, util.ErrInvalidFormat, "csrrg line 1 must hold a single value")
	}

	neighbors, err := toIndices(lists[3])
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrInvalidFormat, "csrrg line 4")
	}
	rowPointers, err := toIndices(lists[4])
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrInvalidFormat, "csrrg line 5")
	}
	if len(rowPointers) < 2 {
		return nil, nil, util.WrapErrorf(nil, util.ErrInvalidFormat, "csrrg graph needs at least one vertex")
	}

	g, err := datastructure.NewSymmetrizedGraph(rowPointers, neighbors)
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrInvalidFormat, "csrrg graph")
	}

	return g, &CsrrgData{
		MaxSecondaryValue:    lists[0][0],
		SecondaryData:        lists[1],
		SecondaryRowPointers: lists[2],
	}, nil
}

func toIndices(values []int) ([]datastructure.Index, error) {
	indices := make([]datastructure.Index, len(values))
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("negative index %d", v)
		}
		if uint64(v) > math.MaxUint32 {
			return nil, fmt.Errorf("index %d does not fit in 32 bits", v)
		}
		indices[i] = datastructure.Index(v)
	}
	return indices, nil
}

func writeIndices(bw *bufio.Writer, values []datastructure.Index) {
	for i, v := range values {
		if i > 0 {
			bw.WriteString(CSRRG_SEPARATOR)
		}
		bw.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	bw.WriteByte('\n')
}

/*
WriteCsrrg writes the partition in the CSRRG output layout:

	line 1: part count
	line 2: vertices grouped by part, increasing id inside a part
	line 3: group pointers into line 2
	line 4: graph adjacency list
	line 5: graph row pointers

followed by two lines per part: row pointers and adjacency list of the subgraph induced by the
part, vertex ids local to the part.
*/
func WriteCsrrg(w io.Writer, g *datastructure.Graph, p *datastructure.Partition) error {
	bw := bufio.NewWriter(w)
	partCount := p.GetPartCount()

	verticesByPart := make([][]datastructure.Index, partCount)
	for partId := range verticesByPart {
		verticesByPart[partId] = p.VerticesInPart(partId)
	}

	fmt.Fprintf(bw, "%d\n", partCount)

	grouped := make([]datastructure.Index, 0, g.NumberOfVertices())
	groupPointers := []datastructure.Index{0}
	for _, vertices := range verticesByPart {
		grouped = append(grouped, vertices...)
		groupPointers = append(groupPointers, datastructure.Index(len(grouped)))
	}
	writeIndices(bw, grouped)
	writeIndices(bw, groupPointers)
	writeIndices(bw, g.GetAdjacencyList())
	writeIndices(bw, g.GetRowPointers())

	localId := make(map[datastructure.Index]datastructure.Index)
	for partId, vertices := range verticesByPart {
		clear(localId)
		for i, v := range vertices {
			localId[v] = datastructure.Index(i)
		}

		subRowPointers := make([]datastructure.Index, 0, len(vertices)+1)
		subAdjacency := make([]datastructure.Index, 0)
		for _, v := range vertices {
			subRowPointers = append(subRowPointers, datastructure.Index(len(subAdjacency)))
			g.ForEachNeighbor(v, func(u datastructure.Index) {
				if p.PartOf(u) == partId {
					subAdjacency = append(subAdjacency, localId[u])
				}
			})
		}
		subRowPointers = append(subRowPointers, datastructure.Index(len(subAdjacency)))

		writeIndices(bw, subRowPointers)
		writeIndices(bw, subAdjacency)
	}
	return bw.Flush()
}
