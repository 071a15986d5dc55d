package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

const ASSIGNMENT_SEPARATOR = " - "

/*
ReadAdjacencyText reads an adjacency matrix, one row per line, optionally followed by an
assignment section. empty lines and lines starting with # are skipped. brackets around a row
are ignored, any non-zero numeric entry is an edge and the matrix is symmetrized.
the first line containing " - " starts the assignment section, lines "<vertex> - <part>".

	[0. 1. 1.]
	[1. 0. 0.]
	[1. 0. 0.]
	0 - 0
	1 - 1
	2 - 0

the partition is nil without an assignment section, otherwise it has max part id + 1 parts,
margin DEFAULT_MARGIN and unlisted vertices unassigned.
*/
func ReadAdjacencyText(r io.Reader) (*datastructure.Graph, *datastructure.Partition, error) {
	lr := newLineReader(r)
	rows := make([][]bool, 0)
	assignmentLines := make([]string, 0)
	inAssignmentSection := false

	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inAssignmentSection && strings.Contains(line, ASSIGNMENT_SEPARATOR) {
			inAssignmentSection = true
		}
		if inAssignmentSection {
			assignmentLines = append(assignmentLines, line)
			continue
		}

		row, err := parseMatrixRow(line)
		if err != nil {
			return nil, nil, lr.formatErrorf("%v", err)
		}
		rows = append(rows, row)
	}

	n := len(rows)
	builder := datastructure.NewGraphBuilder(n)
	for i, row := range rows {
		for j := 0; j < len(row) && j < n; j++ {
			if row[j] {
				if _, err := builder.AddEdge(datastructure.Index(i), datastructure.Index(j)); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	g := builder.Build()

	if len(assignmentLines) == 0 {
		return g, nil, nil
	}
	p, err := parseAssignmentSection(assignmentLines, n)
	if err != nil {
		return nil, nil, err
	}
	return g, p, nil
}

func parseMatrixRow(line string) ([]bool, error) {
	line = strings.NewReplacer("[", " ", "]", " ").Replace(line)
	tokens := strings.Fields(line)
	row := make([]bool, len(tokens))
	for j, token := range tokens {
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("matrix entry %q is not a number", token)
		}
		row[j] = value != 0
	}
	return row, nil
}

// parseAssignmentSection skips lines it cannot parse and vertices out of range.
// a part id of n or above would mean more parts than vertices and fails with ErrInvalidFormat.
func parseAssignmentSection(lines []string, n int) (*datastructure.Partition, error) {
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = pkg.INVALID_PARTITION_ID
	}

	maxPartId := -1
	for _, line := range lines {
		fields := strings.Split(line, ASSIGNMENT_SEPARATOR)
		if len(fields) != 2 {
			continue
		}
		v, errV := strconv.Atoi(strings.TrimSpace(fields[0]))
		partId, errP := strconv.Atoi(strings.TrimSpace(fields[1]))
		if errV != nil || errP != nil || v < 0 || v >= n || partId < 0 {
			continue
		}
		if partId >= n {
			return nil, util.WrapErrorf(nil, util.ErrInvalidFormat,
				"vertex %d is assigned to part %d, the graph has %d vertices", v, partId, n)
		}
		assignments[v] = partId
		if partId > maxPartId {
			maxPartId = partId
		}
	}

	if maxPartId < 0 {
		return nil, nil
	}
	return datastructure.NewPartitionFromAssignments(assignments, maxPartId+1, pkg.DEFAULT_MARGIN)
}

// WriteAdjacencyText writes header comments, the adjacency matrix and the assignment list of p.
func WriteAdjacencyText(w io.Writer, g *datastructure.Graph, p *datastructure.Partition) error {
	bw := bufio.NewWriter(w)
	n := g.NumberOfVertices()

	fmt.Fprintf(bw, "# partition of the graph into %d parts\n", p.GetPartCount())
	fmt.Fprintf(bw, "# number of vertices: %d\n", n)
	fmt.Fprintf(bw, "# number of cut edges: %d\n", p.GetCutEdges())
	fmt.Fprintf(bw, "\n# adjacency matrix:\n")

	row := make([]bool, n)
	for u := 0; u < n; u++ {
		for j := range row {
			row[j] = false
		}
		g.ForEachNeighbor(datastructure.Index(u), func(v datastructure.Index) {
			row[v] = true
		})

		bw.WriteByte('[')
		for j := 0; j < n; j++ {
			if row[j] {
				bw.WriteString("1.")
			} else {
				bw.WriteString("0.")
			}
			if j < n-1 {
				bw.WriteByte(' ')
			}
		}
		bw.WriteString("]\n")
	}

	fmt.Fprintf(bw, "\n# vertex to part assignment:\n# format: <vertex id> - <part id>\n")
	for v := 0; v < n; v++ {
		fmt.Fprintf(bw, "%d%s%d\n", v, ASSIGNMENT_SEPARATOR, p.PartOf(datastructure.Index(v)))
	}
	return bw.Flush()
}
