// Command qpath solves a YAML planning scenario on a quantized grid.
//
//	qpath -scenario detour.yaml
//	qpath -scenario detour.yaml -serve :8080 -rate 20
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/pdrpinto/qpath"
	"github.com/pdrpinto/qpath/astar"
	"github.com/pdrpinto/qpath/internal/scenario"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		path          = fs.String("scenario", "", "scenario YAML file")
		verbosity     = fs.Int("v", 0, "log verbosity (1 search summaries, 2 every expansion)")
		workers       = fs.Int("workers", 0, "heuristic workers (default number of CPUs)")
		maxExpansions = fs.Int("max-expansions", 0, "stop after this many expansions (0 unlimited)")
		serve         = fs.String("serve", "", "serve step-by-step snapshots on this address instead of solving")
		stepRate      = fs.Float64("rate", 20, "maximum steps per second when serving (0 unlimited)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *path == "" {
		fmt.Fprintln(stderr, "qpath: -scenario is required")
		fs.Usage()
		return 2
	}

	logger := newLogger(stderr, *verbosity)
	s, err := scenario.Load(*path)
	if err != nil {
		logger.Error(err, "loading scenario")
		return 2
	}

	options := []astar.Option{astar.WithLogger(logger)}
	if *workers > 0 {
		options = append(options, astar.WithWorkers(*workers))
	}
	if *maxExpansions > 0 {
		options = append(options, astar.WithMaxExpansions(*maxExpansions))
	}

	if *serve != "" {
		if err := listenAndServe(ctx, *serve, newServer(s, *stepRate, logger, options), logger); err != nil {
			logger.Error(err, "serving", "addr", *serve)
			return 1
		}
		return 0
	}

	route, err := s.Solve(ctx, options...)
	switch {
	case errors.Is(err, qpath.ErrNoPath):
		fmt.Fprintf(stdout, "no path (%d nodes expanded)\n", route.Expanded)
		return 1
	case err != nil:
		logger.Error(err, "search failed")
		return 1
	}
	printRoute(stdout, route)
	return 0
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

func printRoute(w io.Writer, route qpath.Route[scenario.Point, uint32]) {
	for i := 1; i < len(route.Path); i++ {
		a, b := route.Path[i-1], route.Path[i]
		fmt.Fprintf(w, "(%g,%g) -> (%g,%g)\n", a[0], a[1], b[0], b[1])
	}
	fmt.Fprintf(w, "cost: %d\n", route.Cost)
}
