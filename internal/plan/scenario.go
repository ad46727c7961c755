package plan

// ApplyScenario folds the planner's percentage adjustment into the algorithm
// quantity: floor(qty * (1 + pct/100)). Integer arithmetic keeps the floor
// exact; bounds on pct are the input boundary's job, not ours.
func ApplyScenario(algorithmQty, adjustPercent int) int {
	return algorithmQty * (100 + adjustPercent) / 100
}
