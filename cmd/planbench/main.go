// Command planbench runs the hybrid planner against the four canonical test
// maps (spec.md §6 Test Map Factory, built by internal/testmaps) and reports
// each run's PlannerStatistics as an aligned table.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/sealane/hybridplan"
	"github.com/sealane/hybridplan/internal/testmaps"
)

func main() {
	app := &cli.App{
		Name:  "planbench",
		Usage: "run the hybrid RRT*/PSO planner against the canonical test maps",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "base RNG seed"},
			&cli.IntFlag{Name: "runs", Value: 1, Usage: "repeated runs per map, seed incremented each run"},
			&cli.IntFlag{Name: "max-iterations", Value: 0, Usage: "override default max_iterations (0 keeps the default)"},
			&cli.BoolFlag{Name: "verbose", Value: false, Usage: "enable debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

type runResult struct {
	mapName    string
	runID      uuid.UUID
	bestCost   float64
	pathsFound int
	iterations int
	elapsed    time.Duration
}

func run(c *cli.Context) error {
	logger := zap.NewNop().Sugar()
	if c.Bool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l.Sugar()
	}

	seed := c.Int64("seed")
	runs := c.Int("runs")
	maxIterations := c.Int("max-iterations")

	cfg := hybridplan.DefaultConfig()
	if maxIterations > 0 {
		cfg.MaxIterations = maxIterations
	}

	workspace := testmaps.Workspace()
	start, goal := testmaps.Start(), testmaps.Goal()

	var results []runResult
	for mapIdx, obstacles := range testmaps.All() {
		name := testmaps.Names()[mapIdx]
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("planning on %s", name))

		for run := 0; run < runs; run++ {
			cfg.Seed = seed + int64(run)
			runID := uuid.New()

			began := time.Now()
			path, cost, stats, err := hybridplan.Plan(start, goal, obstacles, workspace, cfg, logger.With("run_id", runID, "map", name))
			elapsed := time.Since(began)
			if err != nil {
				spinner.Fail(fmt.Sprintf("%s: %v", name, err))
				return err
			}

			results = append(results, runResult{
				mapName:    name,
				runID:      runID,
				bestCost:   cost,
				pathsFound: stats.PathsFound,
				iterations: stats.Iterations,
				elapsed:    elapsed,
			})
			_ = path
		}

		spinner.Success(fmt.Sprintf("%s done", name))
	}

	printSummaryTable(results)
	printSeedStatistics(results)
	return nil
}

// printSummaryTable renders one row per run.
func printSummaryTable(results []runResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Map", "Run ID", "Iterations", "Paths Found", "Best Cost", "Elapsed"})
	for _, r := range results {
		t.AppendRow(table.Row{r.mapName, r.runID.String(), r.iterations, r.pathsFound, fmt.Sprintf("%.2f", r.bestCost), r.elapsed})
	}
	t.Render()
}

// printSeedStatistics aggregates best_cost across every run sharing a map
// name, reporting mean/median/percentile the way a multi-seed convergence
// check (spec.md §8) would.
func printSeedStatistics(results []runResult) {
	byMap := map[string][]float64{}
	for _, r := range results {
		byMap[r.mapName] = append(byMap[r.mapName], r.bestCost)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Map", "Runs", "Mean Cost", "Median Cost", "P90 Cost"})
	for _, name := range testmaps.Names() {
		costs, ok := byMap[name]
		if !ok || len(costs) == 0 {
			continue
		}
		mean, _ := stats.Mean(costs)
		median, _ := stats.Median(costs)
		p90, _ := stats.Percentile(costs, 90)
		t.AppendRow(table.Row{name, len(costs), fmt.Sprintf("%.2f", mean), fmt.Sprintf("%.2f", median), fmt.Sprintf("%.2f", p90)})
	}
	t.Render()
}
