package graphio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

const (
	ASSIGNMENT_ARROW = "->"
	// vertex and part ids of assignment files size the partition arrays.
	MAX_ASSIGNMENT_ID = 1<<26 - 1
)

// assignmentsToPartition builds an edgeless graph with max vertex id + 1 vertices, vertices that
// were never listed go to part 0.
func assignmentsToPartition(assignments map[int]int) (*datastructure.Graph, *datastructure.Partition, error) {
	maxVertexId, maxPartId := -1, -1
	for v, partId := range assignments {
		maxVertexId = util.MaxInt(maxVertexId, v)
		maxPartId = util.MaxInt(maxPartId, partId)
	}
	if maxVertexId < 0 {
		return nil, nil, util.WrapErrorf(nil, util.ErrInvalidFormat, "no vertex assignment found")
	}
	if maxVertexId > MAX_ASSIGNMENT_ID {
		return nil, nil, util.WrapErrorf(nil, util.ErrInvalidFormat,
			"vertex id %d exceeds the limit %d", maxVertexId, MAX_ASSIGNMENT_ID)
	}
	if maxPartId > MAX_ASSIGNMENT_ID {
		return nil, nil, util.WrapErrorf(nil, util.ErrInvalidFormat,
			"part id %d exceeds the limit %d", maxPartId, MAX_ASSIGNMENT_ID)
	}

	n := maxVertexId + 1
	flat := make([]int, n)
	for v, partId := range assignments {
		flat[v] = partId
	}

	p, err := datastructure.NewPartitionFromAssignments(flat, maxPartId+1, pkg.DEFAULT_MARGIN)
	if err != nil {
		return nil, nil, err
	}
	return datastructure.NewGraphBuilder(n).Build(), p, nil
}

func lastInt(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing number")
	}
	return strconv.Atoi(fields[len(fields)-1])
}

/*
ReadAssignmentText reads lines of the form

	Vertex 3 -> Part 1

the words around the numbers are free, lines without "->" or without numbers are skipped.
the file carries no edges, so the graph is edgeless.
*/
func ReadAssignmentText(r io.Reader) (*datastructure.Graph, *datastructure.Partition, error) {
	lr := newLineReader(r)
	assignments := make(map[int]int)

	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		left, right, found := strings.Cut(line, ASSIGNMENT_ARROW)
		if !found {
			continue
		}
		v, errV := lastInt(left)
		partId, errP := lastInt(right)
		if errV != nil || errP != nil || v < 0 || partId < 0 {
			continue
		}
		assignments[v] = partId
	}
	return assignmentsToPartition(assignments)
}

func WriteAssignmentText(w io.Writer, p *datastructure.Partition) error {
	bw := bufio.NewWriter(w)
	for v := 0; v < p.NumberOfVertices(); v++ {
		fmt.Fprintf(bw, "Vertex %d %s Part %d\n", v, ASSIGNMENT_ARROW, p.PartOf(datastructure.Index(v)))
	}
	return bw.Flush()
}

// ReadAssignmentBinary reads back-to-back big-endian uint32 (vertex, part) records.
func ReadAssignmentBinary(r io.Reader) (*datastructure.Graph, *datastructure.Partition, error) {
	br := bufio.NewReader(r)
	assignments := make(map[int]int)
	var record [2]uint32

	for {
		err := binary.Read(br, binary.BigEndian, &record)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil, util.WrapErrorf(err, util.ErrInvalidFormat, "truncated assignment record")
		}
		if err != nil {
			return nil, nil, err
		}
		assignments[int(record[0])] = int(record[1])
	}
	return assignmentsToPartition(assignments)
}

// WriteAssignmentBinary writes one big-endian uint32 (vertex, part) record per assigned vertex.
func WriteAssignmentBinary(w io.Writer, p *datastructure.Partition) error {
	bw := bufio.NewWriter(w)
	var record [2]uint32
	for v := 0; v < p.NumberOfVertices(); v++ {
		partId := p.PartOf(datastructure.Index(v))
		if partId == pkg.INVALID_PARTITION_ID {
			continue
		}
		record[0], record[1] = uint32(v), uint32(partId)
		if err := binary.Write(bw, binary.BigEndian, record); err != nil {
			return err
		}
	}
	return bw.Flush()
}
