package hybridplan

import (
	"math"
	"math/rand"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sealane/hybridplan/geometry"
	"github.com/sealane/hybridplan/pso"
	"github.com/sealane/hybridplan/rrtstar"
	"github.com/sealane/hybridplan/sampler"
)

// Plan computes a low-cost, collision-free path from start to goal through
// obstacles within workspace, per spec.md §4.O and §6. Inputs are validated
// first; on success Plan always returns without error, using an empty path
// and +Inf cost to report NoPathFound (spec.md §7).
func Plan(
	start, goal Position,
	obstacles []Obstacle,
	workspace Workspace,
	cfg PlannerConfig,
	logger *zap.SugaredLogger,
) (Path, float64, PlannerStatistics, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	if err := validateInputs(start, goal, obstacles, workspace, cfg); err != nil {
		return Path{}, math.Inf(1), PlannerStatistics{}, err
	}

	if start.Distance(goal) == 0 {
		return Path{Positions: []Position{start, goal}}, 0, PlannerStatistics{
			Iterations: 1, PathsFound: 1, NodesExplored: 2,
		}, nil
	}

	logger.Debugw("starting plan", "start", start, "goal", goal, "max_iterations", cfg.MaxIterations)

	rng := rand.New(rand.NewSource(cfg.Seed))
	startTree := rrtstar.NewTree(start, rrtstar.StartRoot)
	goalTree := rrtstar.NewTree(goal, rrtstar.GoalRoot)

	var paths geometry.PathSet
	bestPath := Path{}
	bestCost := math.Inf(1)
	var stats PlannerStatistics

	for k := 1; k <= cfg.MaxIterations; k++ {
		if cfg.StopRequested != nil && cfg.StopRequested() {
			logger.Debugw("stop requested", "iteration", k)
			break
		}

		active, opposite := startTree, goalTree
		if k%2 != 0 {
			active, opposite = goalTree, startTree
		}

		weights := sampler.InitialWeights()
		if !paths.Empty() {
			weights = sampler.Schedule(k, cfg.MaxIterations)
		}
		xRand := sampler.Sample(rng, workspace, obstacles, startTree, goalTree, paths, weights)

		res := rrtstar.Expand(active, xRand, cfg.StepSize, cfg.Gamma, obstacles)
		if res.Inserted {
			if path, ok := rrtstar.Connect(active, opposite, res.NewRef, cfg.ConnectionK, obstacles); ok {
				paths.Add(path)
				stats.PathsFound++
				if c := path.Cost(); c < bestCost {
					bestCost = c
					bestPath = path
					logger.Debugw("new best path", "iteration", k, "cost", c)
				}
			}
		}

		if k%cfg.OptimizationInterval == 0 && !paths.Empty() {
			refineAll(rng, &paths, obstacles, workspace, cfg)
			if p, c, ok := paths.Best(); ok && c < bestCost {
				bestCost = c
				bestPath = p
			}
			stats.BestCostHistory = append(stats.BestCostHistory, bestCost)
		}

		stats.Iterations = k
	}

	if !paths.Empty() {
		refineAll(rng, &paths, obstacles, workspace, cfg)
		if p, c, ok := paths.Best(); ok && c < bestCost {
			bestCost = c
			bestPath = p
		}
		stats.BestCostHistory = append(stats.BestCostHistory, bestCost)
	}

	stats.NodesExplored = startTree.Len() + goalTree.Len()

	logger.Debugw("plan finished", "iterations", stats.Iterations, "paths_found", stats.PathsFound, "best_cost", bestCost)

	if math.IsInf(bestCost, 1) {
		return Path{}, math.Inf(1), stats, nil
	}
	return bestPath, bestCost, stats, nil
}

// refineAll runs one PSO pass over every path in the set, rewriting each in
// place (spec.md §4.P, §4.O step 6/final pass).
func refineAll(rng *rand.Rand, paths *geometry.PathSet, obstacles []Obstacle, workspace Workspace, cfg PlannerConfig) {
	psoCfg := cfg.psoConfig()
	for i, p := range paths.Paths {
		paths.Paths[i] = pso.Refine(rng, p, obstacles, workspace, psoCfg)
	}
}

// validateInputs checks spec.md §6's entry conditions, aggregating every
// violation rather than stopping at the first.
func validateInputs(start, goal Position, obstacles []Obstacle, workspace Workspace, cfg PlannerConfig) error {
	var errs error

	if !workspace.Valid() {
		errs = multierr.Append(errs, newPlanError(InvalidWorkspace, "workspace rectangle is degenerate: %+v", workspace))
	}
	if err := cfg.validate(); err != nil {
		errs = multierr.Append(errs, err)
	}

	// Endpoint checks only make sense against a valid workspace.
	if workspace.Valid() {
		if !geometry.InFreeSpace(start, workspace, obstacles) {
			errs = multierr.Append(errs, newPlanError(InvalidEndpoint, "start %v is outside the workspace or inside an obstacle", start))
		}
		if !geometry.InFreeSpace(goal, workspace, obstacles) {
			errs = multierr.Append(errs, newPlanError(InvalidEndpoint, "goal %v is outside the workspace or inside an obstacle", goal))
		}
	}

	return errs
}
