package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/concurrent"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/config"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/graphio"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger"
	logConfig "github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger/config"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/osmparser"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/partitioner"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const OUTPUT_SUFFIX = "_partitioned"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "klpart: %v\n", err)
		return 2
	}

	if cfg.Verbose {
		viper.Set("LOG_LEVEL", logConfig.DEBUG_LEVEL)
	}
	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "klpart: %v\n", err)
		return 2
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	runner, err := newJobRunner(cfg, log, seed)
	if err != nil {
		log.Error("invalid output settings", zap.Error(err))
		return 2
	}

	failed := 0
	for _, res := range runner.runAll(ctx) {
		if res.err != nil {
			log.Error("partitioning failed", zap.String("input", res.input), zap.Error(res.err))
			failed++
			continue
		}
		log.Info("partition written",
			zap.String("input", res.input),
			zap.String("output", res.output),
			zap.Int("vertices", res.stats.NumberOfVertices),
			zap.Int("edges", res.stats.NumberOfEdges),
			zap.Int("cutEdges", res.stats.CutEdges),
			zap.Float64("cutRatio", res.stats.CutRatio),
			zap.Ints("partSizes", res.stats.PartSizes),
			zap.Bool("balanced", res.stats.Balanced),
		)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

type job struct {
	index int
	input string
}

type jobResult struct {
	input  string
	output string
	stats  partitioner.Stats
	err    error
}

// jobRunner partitions every input independently, one job per input on the worker pool.
// job i draws from its own generator seeded with seed+i.
type jobRunner struct {
	cfg    *config.Config
	logger *zap.Logger
	seed   uint64
	format graphio.Format
}

func newJobRunner(cfg *config.Config, logger *zap.Logger, seed uint64) (*jobRunner, error) {
	format := graphio.FORMAT_UNKNOWN
	switch {
	case cfg.OutputFormat != "":
		parsed, err := graphio.ParseFormat(cfg.OutputFormat)
		if err != nil {
			return nil, err
		}
		format = parsed
	case cfg.Output != "":
		format = graphio.DetectFormat(cfg.Output)
		if format == graphio.FORMAT_OSM_PBF {
			return nil, util.WrapErrorf(nil, util.ErrInvalidArgument, "cannot write osm pbf output %s", cfg.Output)
		}
	}
	return &jobRunner{
		cfg:    cfg,
		logger: logger,
		seed:   seed,
		format: format,
	}, nil
}

func (r *jobRunner) runAll(ctx context.Context) []jobResult {
	jobs := make([]job, len(r.cfg.Inputs))
	for i, input := range r.cfg.Inputs {
		jobs[i] = job{index: i, input: input}
	}
	return concurrent.RunAll(r.cfg.Workers, jobs, func(j job) jobResult {
		return r.process(ctx, j)
	})
}

// outputFormat falls back to csrrg for osm inputs, whose adjacency matrix would not fit in memory, and to txt otherwise.
func (r *jobRunner) outputFormat(inputFormat graphio.Format) graphio.Format {
	if r.format != graphio.FORMAT_UNKNOWN {
		return r.format
	}
	if inputFormat == graphio.FORMAT_OSM_PBF {
		return graphio.FORMAT_CSRRG
	}
	return graphio.FORMAT_ADJACENCY_TEXT
}

// outputPath is --output when given, otherwise <dir>/<input name>_partitioned<ext>,
// dir being --output-dir or the directory of the input.
func (r *jobRunner) outputPath(input string, format graphio.Format) string {
	if r.cfg.Output != "" {
		return r.cfg.Output
	}
	dir := r.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	name := filepath.Base(input)
	lower := strings.ToLower(name)
	removed := 0
	if strings.HasSuffix(lower, graphio.BZIP2_EXTENSION) {
		removed = len(graphio.BZIP2_EXTENSION)
	}
	for _, ext := range []string{".osm.pbf", ".pbf", ".csrrg", ".assign", ".bin", ".txt"} {
		if strings.HasSuffix(lower[:len(lower)-removed], ext) {
			removed += len(ext)
			break
		}
	}
	name = name[:len(name)-removed]
	if name == "" {
		name = "graph"
	}
	return filepath.Join(dir, name+OUTPUT_SUFFIX+format.Extension())
}

func (r *jobRunner) loadGraph(ctx context.Context, input string) (*graphio.LoadResult, error) {
	if graphio.DetectFormat(input) != graphio.FORMAT_OSM_PBF {
		return graphio.Load(input)
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", input, err)
	}
	defer f.Close()

	var region *s2.Rect
	if cfg := r.cfg.Region; cfg != nil {
		region = osmparser.NewRegion(cfg.MinLat, cfg.MinLon, cfg.MaxLat, cfg.MaxLon)
	}
	parsed, err := osmparser.NewOsmParser(r.logger).Parse(ctx, f, region)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", input, err)
	}
	return &graphio.LoadResult{
		Path:   input,
		Format: graphio.FORMAT_OSM_PBF,
		Graph:  parsed.Graph,
	}, nil
}

func (r *jobRunner) partition(g *datastructure.Graph, initial *datastructure.Partition, rng partitioner.Rand,
	reporter partitioner.ProgressReporter) (*datastructure.Partition, error) {
	cfg := r.cfg
	if cfg.Hybrid {
		return partitioner.NewHybridPartitioner(cfg.MaxIterations, reporter).
			FindBestPartition(g, cfg.Parts, cfg.Margin, rng)
	}

	p := initial
	if p == nil || !p.IsComplete() || p.GetPartCount() != cfg.Parts {
		strategy, err := partitioner.ParseStrategy(cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		p, err = partitioner.Initialize(strategy, g, cfg.Parts, cfg.Margin, rng)
		if err != nil {
			return nil, err
		}
	}
	if _, err := partitioner.NewKernighanLin(reporter).Optimize(g, p, cfg.MaxIterations); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *jobRunner) process(ctx context.Context, j job) jobResult {
	res := jobResult{input: j.input}
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}
	jobLogger := r.logger.With(zap.String("input", j.input))

	loaded, err := r.loadGraph(ctx, j.input)
	if err != nil {
		res.err = err
		return res
	}
	jobLogger.Info("graph loaded",
		zap.String("path", loaded.Path),
		zap.String("format", loaded.Format.String()),
		zap.Int("vertices", loaded.Graph.NumberOfVertices()),
		zap.Int("edges", loaded.Graph.NumberOfEdges()),
	)

	rng := partitioner.NewRand(r.seed + uint64(j.index))
	p, err := r.partition(loaded.Graph, loaded.Partition, rng, partitioner.NewZapReporter(jobLogger))
	if err != nil {
		res.err = err
		return res
	}

	res.stats, err = partitioner.ComputeStats(loaded.Graph, p)
	if err != nil {
		res.err = err
		return res
	}

	format := r.outputFormat(loaded.Format)
	res.output = r.outputPath(j.input, format)
	if err := graphio.Save(res.output, format, loaded.Graph, p); err != nil {
		res.err = err
	}
	return res
}
