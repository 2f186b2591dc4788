package scheduler

import "sort"

// CanonicalSort orders scored tasks deterministically:
// 1. Score: higher first
// 2. Due date: earliest first (nil last)
// 3. Task ID: lexical ascending
// Identical inputs therefore always produce an identical allocation.
func CanonicalSort(tasks []ScoredTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		dueA, dueB := a.Input.DueDate, b.Input.DueDate
		if (dueA == nil) != (dueB == nil) {
			return dueA != nil // non-nil before nil
		}
		if dueA != nil && dueB != nil && !dueA.Equal(*dueB) {
			return dueA.Before(*dueB)
		}

		return a.Input.TaskID < b.Input.TaskID
	})
}
