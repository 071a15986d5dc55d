package osmparser

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// ParseResult is the road graph of an osm extract. OsmNodeIds[v] is the osm node id of vertex v.
type ParseResult struct {
	Graph      *datastructure.Graph
	OsmNodeIds []int64
}

type OsmParser struct {
	logger *zap.Logger

	ways       [][]osm.NodeID
	wayNodes   map[osm.NodeID]struct{}
	nodeCoords map[osm.NodeID]s2.LatLng

	vertexIds  map[osm.NodeID]datastructure.Index
	osmNodeIds []int64
	builder    *datastructure.GraphBuilder
}

func NewOsmParser(logger *zap.Logger) *OsmParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OsmParser{
		logger: logger,
	}
}

func (p *OsmParser) reset() {
	p.ways = make([][]osm.NodeID, 0)
	p.wayNodes = make(map[osm.NodeID]struct{})
	p.nodeCoords = make(map[osm.NodeID]s2.LatLng)
	p.vertexIds = make(map[osm.NodeID]datastructure.Index)
	p.osmNodeIds = make([]int64, 0)
	p.builder = datastructure.NewGraphBuilder(0)
}

/*
Parse builds an undirected graph from the road network of an osm pbf stream.
consecutive nodes of every accepted way become an edge. with a non-nil region,
the stream is scanned a second time for node coordinates and only edges with both
endpoints inside the region are kept. vertex ids follow the order in which the
osm nodes first appear in a kept edge.
*/
func (p *OsmParser) Parse(ctx context.Context, r io.ReadSeeker, region *s2.Rect) (*ParseResult, error) {
	p.reset()

	scanner := osmpbf.New(ctx, r, 0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		if p.addWay(o.(*osm.Way)) {
			if (countWays+1)%LOG_EVERY_WAYS == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++
		}
	}
	err := scanner.Err()
	scanner.Close()
	if err != nil {
		return nil, fmt.Errorf("scanning openstreetmap ways: %w", err)
	}

	if region != nil {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding openstreetmap file: %w", err)
		}
		scanner = osmpbf.New(ctx, r, 0)
		scanner.SkipWays = true
		scanner.SkipRelations = true

		countNodes := 0
		for scanner.Scan() {
			o := scanner.Object()
			if o.ObjectID().Type() != osm.TypeNode {
				continue
			}
			p.addNode(o.(*osm.Node))
			if (countNodes+1)%LOG_EVERY_NODES == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
		}
		err = scanner.Err()
		scanner.Close()
		if err != nil {
			return nil, fmt.Errorf("scanning openstreetmap nodes: %w", err)
		}
	}

	result, err := p.buildGraph(region)
	if err != nil {
		return nil, err
	}
	p.logger.Sugar().Infof("openstreetmap road graph: %d ways, %d vertices, %d edges",
		countWays, result.Graph.NumberOfVertices(), result.Graph.NumberOfEdges())
	return result, nil
}

// addWay keeps the node list of an accepted way with at least two nodes.
func (p *OsmParser) addWay(way *osm.Way) bool {
	if !acceptOsmWay(way) || len(way.Nodes) < 2 {
		return false
	}
	nodes := make([]osm.NodeID, len(way.Nodes))
	for i, wayNode := range way.Nodes {
		nodes[i] = wayNode.ID
		p.wayNodes[wayNode.ID] = struct{}{}
	}
	p.ways = append(p.ways, nodes)
	return true
}

// addNode records the coordinate of a node referenced by an accepted way.
func (p *OsmParser) addNode(node *osm.Node) {
	if _, ok := p.wayNodes[node.ID]; !ok {
		return
	}
	p.nodeCoords[node.ID] = s2.LatLngFromDegrees(node.Lat, node.Lon)
}

func (p *OsmParser) inside(region *s2.Rect, id osm.NodeID) bool {
	if region == nil {
		return true
	}
	coord, ok := p.nodeCoords[id]
	if !ok {
		return false
	}
	return region.ContainsLatLng(coord)
}

func (p *OsmParser) vertexOf(id osm.NodeID) datastructure.Index {
	if v, ok := p.vertexIds[id]; ok {
		return v
	}
	v := p.builder.AddVertex()
	p.vertexIds[id] = v
	p.osmNodeIds = append(p.osmNodeIds, int64(id))
	return v
}

func (p *OsmParser) buildGraph(region *s2.Rect) (*ParseResult, error) {
	for _, nodes := range p.ways {
		for i := 0; i+1 < len(nodes); i++ {
			from, to := nodes[i], nodes[i+1]
			if from == to {
				continue
			}
			if !p.inside(region, from) || !p.inside(region, to) {
				continue
			}
			if _, err := p.builder.AddEdge(p.vertexOf(from), p.vertexOf(to)); err != nil {
				return nil, err
			}
		}
	}
	return &ParseResult{
		Graph:      p.builder.Build(),
		OsmNodeIds: p.osmNodeIds,
	}, nil
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, ok := acceptedHighway[highway]
	return ok
}

// NewRegion returns the lat/lng rectangle spanned by two corners given in degrees.
func NewRegion(minLat, minLon, maxLat, maxLon float64) *s2.Rect {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(minLat, minLon)).
		AddPoint(s2.LatLngFromDegrees(maxLat, maxLon))
	return &rect
}
