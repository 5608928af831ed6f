// Headless runner: steps one or more scenes to completion and reports the
// final state digest of each.
//
//	simulate [-steps N] [-log debug] scenes/drop.yaml scenes/dome.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"collide3d/internal/config"
	"collide3d/internal/log"
	"collide3d/internal/physics"

	"golang.org/x/sync/errgroup"
)

var (
	steps    = flag.Int("steps", -1, "override the step count of every scene")
	logLevel = flag.String("log", "info", "log level: debug, info, warn or error")
	parallel = flag.Int("parallel", 4, "scenes run at once")
)

// result is the outcome of one scene.
type result struct {
	Path     string
	Steps    uint64
	Contacts int
	Digest   uint64
	Elapsed  time.Duration
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: simulate [flags] scene...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.New(level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runAll(ctx, logger, flag.Args(), *steps, *parallel)
	for _, r := range results {
		if r.Path == "" {
			continue
		}
		logger.Info("scene done",
			log.String("scene", r.Path),
			log.Uint64("steps", r.Steps),
			log.Int("contacts", r.Contacts),
			log.String("digest", fmt.Sprintf("%016x", r.Digest)),
			log.Duration("elapsed", r.Elapsed))
	}
	if err != nil {
		logger.Error("simulation failed", log.Err(err))
		os.Exit(1)
	}
}

// runAll runs every scene concurrently. Results keep the order of paths; the
// first error cancels the rest.
func runAll(ctx context.Context, logger *log.Logger, paths []string, steps, parallel int) ([]result, error) {
	results := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, path := range paths {
		g.Go(func() error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if steps >= 0 {
				cfg.World.Steps = steps
			}
			r, err := runScene(ctx, logger.With(log.String("scene", path)), cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			r.Path = path
			results[i] = r
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func runScene(ctx context.Context, logger *log.Logger, cfg *config.Config) (result, error) {
	w, err := physics.NewPhysicsWorldFromConfig(cfg, logger)
	if err != nil {
		return result{}, err
	}
	var r result
	w.OnContactEnter.AddListener(func(physics.Contact) { r.Contacts++ })

	start := time.Now()
	for i := 0; i < cfg.World.Steps; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}
		w.Step(cfg.World.TimeStep)
	}
	r.Steps = w.Steps()
	r.Digest = w.Digest()
	r.Elapsed = time.Since(start)
	return r, nil
}
