package reconcile

import (
	"fmt"
	"sort"
)

// Reconcile compares the recorded keys against the current keys and returns a plan
// describing every difference. Neither input is modified.
func Reconcile(recorded, current []string) *ReconcilePlan {
	recordedIndex := buildIndex(recorded)
	currentIndex := buildIndex(current)
	union := buildUnion(recordedIndex, currentIndex)

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	plan := &ReconcilePlan{
		Results: []ReconcileResult{},
		Actions: []Action{},
	}
	plan.Summary.TotalKeys = len(keys)

	for _, key := range keys {
		result := buildResult(key, recordedIndex, currentIndex)

		switch result.Status() {
		case StatusInSync:
			plan.Summary.InSync++
			continue
		case StatusAdded:
			plan.Summary.Added++
		case StatusRemoved:
			plan.Summary.Removed++
		case StatusCountChanged:
			plan.Summary.CountChanged++
		}

		plan.Results = append(plan.Results, result)
		action := buildAction(result)
		plan.Actions = append(plan.Actions, action)
		if action.Type == ActionRecord {
			plan.Summary.RecordActions++
		} else {
			plan.Summary.DropActions++
		}
	}

	return plan
}

// buildIndex counts the occurrences of every key.
func buildIndex(keys []string) map[string]int {
	index := make(map[string]int, len(keys))
	for _, key := range keys {
		index[key]++
	}
	return index
}

// buildUnion creates a union of all keys from both listings.
func buildUnion(recordedIndex, currentIndex map[string]int) map[string]struct{} {
	union := make(map[string]struct{}, len(recordedIndex)+len(currentIndex))
	for key := range recordedIndex {
		union[key] = struct{}{}
	}
	for key := range currentIndex {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, recordedIndex, currentIndex map[string]int) ReconcileResult {
	return ReconcileResult{
		Key:      key,
		Recorded: recordedIndex[key],
		Current:  currentIndex[key],
	}
}

func buildAction(result ReconcileResult) Action {
	delta := result.Current - result.Recorded
	if delta > 0 {
		return Action{
			Type:   ActionRecord,
			Key:    result.Key,
			Count:  delta,
			Reason: fmt.Sprintf("%s: recorded=%d current=%d", result.Status(), result.Recorded, result.Current),
		}
	}
	return Action{
		Type:   ActionDrop,
		Key:    result.Key,
		Count:  -delta,
		Reason: fmt.Sprintf("%s: recorded=%d current=%d", result.Status(), result.Recorded, result.Current),
	}
}
