package model

import "github.com/speters9/JobMatch/types"

// seniorityBonusScale controls how much a worker's priority rank boosts edge
// weights when seniority weighting is enabled. The bonus for the most senior
// worker (priority 1) equals the weight gap between adjacent preference ranks
// on a short list, so seniority breaks ties without overriding preferences.
const seniorityBonusScale = 0.25

// PreferenceWeight converts a preference rank into the edge weight used by
// the bipartite and linear-programming solvers.
//
// The formula, shared by both solvers so their objectives are comparable:
//
//	base(rank)   = (maxRank + 1 - rank) / maxRank      rank 1-based, maxRank = len(preferences)
//	bonus        = seniorityBonusScale / priority       only when seniority is true
//	weight       = (base + bonus) / plausible(worker)
//
// base is monotonically decreasing in rank and lands in (0, 1]; dividing by
// the worker's plausible section count normalizes across preference-list
// lengths so workers with short lists are not penalized relative to workers
// with long ones.
//
// Parameters:
//   - w: Worker whose preference is being weighted
//   - taskID: Task to weight
//   - tasks: All tasks (used for the plausible-section normalization)
//   - seniority: Whether to add the priority bonus
//
// Returns:
//   - float64: Edge weight, 0 when the task is absent from the preferences
//   - bool: Whether the task appears in the worker's preferences
func PreferenceWeight(w types.Worker, taskID string, tasks []types.Task, seniority bool) (float64, bool) {
	rank, ok := w.Rank(taskID)
	if !ok {
		return 0, false
	}

	maxRank := len(w.Preferences)
	base := float64(maxRank+1-rank) / float64(maxRank)

	if seniority && w.Priority > 0 {
		base += seniorityBonusScale / float64(w.Priority)
	}

	return base / float64(plausibleSections(w, tasks)), true
}

// plausibleSections returns the number of sections the worker could plausibly
// take: its budget capped by the total capacity of its listed tasks.
func plausibleSections(w types.Worker, tasks []types.Task) int {
	listed := 0
	for _, t := range tasks {
		if _, ok := w.Rank(t.ID); ok {
			listed += t.Capacity
		}
	}

	n := min(w.MaxSections, listed)
	if n < 1 {
		n = 1
	}

	return n
}
