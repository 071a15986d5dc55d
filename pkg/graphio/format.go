package graphio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
)

type Format int

const (
	FORMAT_UNKNOWN Format = iota
	FORMAT_ADJACENCY_TEXT
	FORMAT_CSRRG
	FORMAT_ASSIGNMENT_TEXT
	FORMAT_ASSIGNMENT_BINARY
	FORMAT_OSM_PBF
)

func (f Format) String() string {
	switch f {
	case FORMAT_ADJACENCY_TEXT:
		return "txt"
	case FORMAT_CSRRG:
		return "csrrg"
	case FORMAT_ASSIGNMENT_TEXT:
		return "assign"
	case FORMAT_ASSIGNMENT_BINARY:
		return "assignbin"
	case FORMAT_OSM_PBF:
		return "osm"
	}
	return "unknown"
}

// Extension is the file extension DetectFormat maps back to f.
func (f Format) Extension() string {
	switch f {
	case FORMAT_ADJACENCY_TEXT:
		return ".txt"
	case FORMAT_CSRRG:
		return ".csrrg"
	case FORMAT_ASSIGNMENT_TEXT:
		return ".assign"
	case FORMAT_ASSIGNMENT_BINARY:
		return ".bin"
	case FORMAT_OSM_PBF:
		return ".osm.pbf"
	}
	return ""
}

// ParseFormat maps an output format name (txt, csrrg, assign, assignbin) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text":
		return FORMAT_ADJACENCY_TEXT, nil
	case "csrrg":
		return FORMAT_CSRRG, nil
	case "assign":
		return FORMAT_ASSIGNMENT_TEXT, nil
	case "assignbin", "bin":
		return FORMAT_ASSIGNMENT_BINARY, nil
	}
	return FORMAT_UNKNOWN, util.WrapErrorf(nil, util.ErrInvalidArgument, "unknown file format %q", name)
}

// DetectFormat guesses the format from the extension of path, a trailing .bz2 is ignored.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, BZIP2_EXTENSION)

	switch {
	case strings.HasSuffix(name, ".osm.pbf"), strings.HasSuffix(name, ".pbf"):
		return FORMAT_OSM_PBF
	case strings.HasSuffix(name, ".csrrg"):
		return FORMAT_CSRRG
	case strings.HasSuffix(name, ".assign"):
		return FORMAT_ASSIGNMENT_TEXT
	case strings.HasSuffix(name, ".bin"):
		return FORMAT_ASSIGNMENT_BINARY
	case strings.HasSuffix(name, ".txt"):
		return FORMAT_ADJACENCY_TEXT
	}
	return FORMAT_UNKNOWN
}

var siblingExtensions = map[string]string{
	".csrrg": ".txt",
	".txt":   ".csrrg",
}

// ResolveInputPath returns path when it exists, otherwise the same path with the sibling
// extension (.csrrg <-> .txt) when that one exists.
func ResolveInputPath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	base, compressed := path, ""
	if isBzip2(path) {
		base, compressed = path[:len(path)-len(BZIP2_EXTENSION)], path[len(path)-len(BZIP2_EXTENSION):]
	}
	ext := filepath.Ext(base)
	if sibling, ok := siblingExtensions[strings.ToLower(ext)]; ok {
		candidate := strings.TrimSuffix(base, ext) + sibling + compressed
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", util.WrapErrorf(os.ErrNotExist, util.ErrInvalidArgument, "input file %s does not exist", path)
}
