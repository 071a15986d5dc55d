package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg"
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ENV_PREFIX       = "KLPART"
	DEFAULT_WORKERS  = 4
	DEFAULT_STRATEGY = "modulo"
)

// Region is a lat/lng box in degrees, applied to osm pbf inputs only.
type Region struct {
	MinLat float64 `validate:"min=-90,max=90,ltefield=MaxLat"`
	MinLon float64 `validate:"min=-180,max=180,ltefield=MaxLon"`
	MaxLat float64 `validate:"min=-90,max=90"`
	MaxLon float64 `validate:"min=-180,max=180"`
}

type Config struct {
	Inputs        []string `validate:"required,min=1,dive,required"`
	Output        string
	OutputDir     string
	Parts         int    `validate:"min=1"`
	Margin        int    `validate:"min=0,max=100"`
	Algorithm     string `validate:"oneof=modulo sequential random dfs sekwencyjny losowy"`
	Hybrid        bool
	Seed          uint64
	MaxIterations int    `validate:"min=0"`
	OutputFormat  string `validate:"omitempty,oneof=txt text csrrg assign assignbin bin"`
	Workers       int    `validate:"min=1"`
	Verbose       bool
	Region        *Region
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("klpart", pflag.ContinueOnError)
	fs.String("config", "", "optional config file (yaml, json, toml, ...)")
	fs.StringSlice("input", nil, "input graph files, positional arguments are appended")
	fs.StringP("output", "o", "", "output file, single input only")
	fs.String("output-dir", "", "output directory for batch runs")
	fs.IntP("parts", "k", pkg.DEFAULT_PART_COUNT, "number of parts")
	fs.IntP("margin", "m", pkg.DEFAULT_MARGIN, "balance margin in percent of the average part size")
	fs.StringP("algorithm", "a", DEFAULT_STRATEGY, "initial partition: modulo, sequential, random or dfs")
	fs.Bool("hybrid", false, "run the hybrid search instead of a single initializer")
	fs.Uint64("seed", 0, "random seed, 0 picks a time based seed")
	fs.Int("max-iterations", 0, "kernighan-lin pass cap, 0 uses the size based default")
	fs.StringP("format", "f", "", "output format: txt, csrrg, assign or assignbin")
	fs.IntP("workers", "w", DEFAULT_WORKERS, "number of inputs processed concurrently")
	fs.BoolP("verbose", "v", false, "log every optimization step")
	fs.Float64("min-lat", 0, "region filter for osm inputs")
	fs.Float64("min-lon", 0, "region filter for osm inputs")
	fs.Float64("max-lat", 0, "region filter for osm inputs")
	fs.Float64("max-lon", 0, "region filter for osm inputs")
	return fs
}

/*
Load parses args (without the program name). precedence: flags, KLPART_* environment
variables, the --config file, defaults. positional arguments are inputs.
*/
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Inputs:        append(v.GetStringSlice("input"), fs.Args()...),
		Output:        v.GetString("output"),
		OutputDir:     v.GetString("output-dir"),
		Parts:         v.GetInt("parts"),
		Margin:        v.GetInt("margin"),
		Algorithm:     strings.ToLower(strings.TrimSpace(v.GetString("algorithm"))),
		Hybrid:        v.GetBool("hybrid"),
		Seed:          v.GetUint64("seed"),
		MaxIterations: v.GetInt("max-iterations"),
		OutputFormat:  strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		Workers:       v.GetInt("workers"),
		Verbose:       v.GetBool("verbose"),
	}

	if v.IsSet("min-lat") || v.IsSet("min-lon") || v.IsSet("max-lat") || v.IsSet("max-lon") {
		cfg.Region = &Region{
			MinLat: v.GetFloat64("min-lat"),
			MinLon: v.GetFloat64("min-lon"),
			MaxLat: v.GetFloat64("max-lat"),
			MaxLon: v.GetFloat64("max-lon"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return util.WrapErrorf(err, util.ErrInvalidArgument, "invalid configuration")
	}
	if len(c.Inputs) > 1 && c.Output != "" {
		return util.WrapErrorf(nil, util.ErrInvalidArgument,
			"--output names a single file, use --output-dir for %d inputs", len(c.Inputs))
	}
	return nil
}
