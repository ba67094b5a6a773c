package hybridplan

// PlannerStatistics reports the work Plan did, per spec.md §3 "Planner
// Statistics".
type PlannerStatistics struct {
	Iterations    int
	PathsFound    int
	NodesExplored int

	// BestCostHistory records the best-known cost after each PSO refinement
	// pass, oldest first: one entry every OptimizationInterval iterations once
	// a path exists, plus one after the final pass. It stays empty when no
	// path is found. This is additive instrumentation beyond spec.md; see
	// SPEC_FULL.md §12.
	BestCostHistory []float64
}
