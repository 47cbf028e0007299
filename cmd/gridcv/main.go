// Package main provides the gridcv CLI: Canny edge detection plus the
// Otsu and k-means segmentation tools, all sharing one text raster format
// and one parallel execution engine.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridcv/gridcv/internal/bench"
	"github.com/gridcv/gridcv/internal/canny"
	"github.com/gridcv/gridcv/internal/config"
	"github.com/gridcv/gridcv/internal/imageio"
	"github.com/gridcv/gridcv/internal/segment"
)

const version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfgPath  string
	cfg      config.Config
	log      zerolog.Logger
	workers  int
	strategy string
	grain    int
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gridcv",
		Short:         "Parallel grayscale image pipelines over a text raster format",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			// Flags set on the command line win over the config file.
			if cmd.Flags().Changed("workers") {
				cfg.Workers = a.workers
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Strategy = a.strategy
			}
			if cmd.Flags().Changed("grain") {
				cfg.Grain = a.grain
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to YAML config file")
	pf.IntVar(&a.workers, "workers", 0, "worker count (0 = number of CPUs, 1 = sequential)")
	pf.StringVar(&a.strategy, "strategy", config.StrategyFixedChunk,
		"scheduling strategy: fixed-chunk or divide-conquer")
	pf.IntVar(&a.grain, "grain", 0, "divide-conquer grain size (0 = default)")

	root.AddCommand(
		newCannyCmd(a),
		newOtsuCmd(a),
		newKMeansCmd(a),
		newBenchCmd(a),
		newVersionCmd(),
	)
	return root
}

func newCannyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canny <input.txt> <output.txt>",
		Short: "Compute an edge map with the five-stage Canny pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := imageio.ReadFile(args[0])
			if err != nil {
				return err
			}
			a.log.Debug().
				Int("h", img.H()).Int("w", img.W()).
				Int("workers", a.cfg.Workers).
				Str("strategy", a.cfg.Strategy).
				Msg("running canny pipeline")

			out := canny.EdgesWithOptions(img, a.cfg.CannyOptions())
			return imageio.WriteFile(args[1], out)
		},
	}
	return cmd
}

func newOtsuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "otsu <input.txt> <output.txt>",
		Short: "Binarize an image with Otsu's global threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := imageio.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, threshold := segment.Otsu(img, a.cfg.Parallel())
			a.log.Info().Int("threshold", threshold).Msg("otsu threshold selected")
			return imageio.WriteFile(args[1], out)
		},
	}
}

func newKMeansCmd(a *app) *cobra.Command {
	var k, maxIter int
	cmd := &cobra.Command{
		Use:   "kmeans <input.txt> <output.txt>",
		Short: "Quantize an image into k intensity clusters",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := imageio.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, centroids, err := segment.KMeans(img, k, maxIter, a.cfg.Parallel())
			if err != nil {
				return err
			}
			a.log.Info().Floats64("centroids", centroids).Msg("kmeans converged")
			return imageio.WriteFile(args[1], out)
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "number of clusters")
	cmd.Flags().IntVar(&maxIter, "max-iter", segment.DefaultMaxIterations, "iteration bound")
	return cmd
}

func newBenchCmd(a *app) *cobra.Command {
	var workerCounts []int
	cmd := &cobra.Command{
		Use:   "bench <input.txt>",
		Short: "Time the pipeline across worker counts and verify against the sequential oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := imageio.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := bench.DefaultOptions()
			if len(workerCounts) > 0 {
				opts.WorkerCounts = workerCounts
			}
			opts.Grain = a.cfg.Grain
			opts.HighRatio = a.cfg.HighRatio
			opts.LowRatio = a.cfg.LowRatio
			_, err = bench.Run(img, opts, a.log)
			return err
		},
	}
	cmd.Flags().IntSliceVar(&workerCounts, "sweep", nil, "worker counts to sweep (default 1,2,4,8,16)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("gridcv %s\n", version)
		},
	}
}
