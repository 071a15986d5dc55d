package graphio

import (
	"fmt"
	"io"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

// LoadResult is what a graph file holds. Partition is nil when the file has no assignments,
// Csrrg is only set for CSRRG input.
type LoadResult struct {
	Path      string
	Format    Format
	Graph     *datastructure.Graph
	Partition *datastructure.Partition
	Csrrg     *CsrrgData
}

// Load resolves path (see ResolveInputPath), detects its format and reads it.
// OSM extracts are not handled here, see package osmparser.
func Load(path string) (*LoadResult, error) {
	resolved, err := ResolveInputPath(path)
	if err != nil {
		return nil, err
	}

	format := DetectFormat(resolved)
	if format == FORMAT_UNKNOWN {
		format = FORMAT_ADJACENCY_TEXT
	}
	if format == FORMAT_OSM_PBF {
		return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "%s is an osm extract, use the osm parser", resolved)
	}

	rc, err := OpenReader(resolved)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	result, err := Read(rc, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	result.Path = resolved
	return result, nil
}

func Read(r io.Reader, format Format) (*LoadResult, error) {
	result := &LoadResult{Format: format}
	var err error

	switch format {
	case FORMAT_ADJACENCY_TEXT:
		result.Graph, result.Partition, err = ReadAdjacencyText(r)
	case FORMAT_CSRRG:
		result.Graph, result.Csrrg, err = ReadCsrrg(r)
	case FORMAT_ASSIGNMENT_TEXT:
		result.Graph, result.Partition, err = ReadAssignmentText(r)
	case FORMAT_ASSIGNMENT_BINARY:
		result.Graph, result.Partition, err = ReadAssignmentBinary(r)
	default:
		err = util.WrapErrorf(nil, util.ErrInvalidArgument, "cannot read format %s", format)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func Write(w io.Writer, format Format, g *datastructure.Graph, p *datastructure.Partition) error {
	switch format {
	case FORMAT_ADJACENCY_TEXT:
		return WriteAdjacencyText(w, g, p)
	case FORMAT_CSRRG:
		return WriteCsrrg(w, g, p)
	case FORMAT_ASSIGNMENT_TEXT:
		return WriteAssignmentText(w, p)
	case FORMAT_ASSIGNMENT_BINARY:
		return WriteAssignmentBinary(w, p)
	}
	return util.WrapErrorf(nil, util.ErrInvalidArgument, "cannot write format %s", format)
}

// Save writes g and p to path in format, bzip2 compressed when path ends in .bz2.
func Save(path string, format Format, g *datastructure.Graph, p *datastructure.Partition) (err error) {
	if g == nil || p == nil {
		return util.WrapErrorf(nil, util.ErrInvalidArgument, "graph and partition must not be nil")
	}
	wc, err := CreateWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := wc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := Write(wc, format, g, p); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
