// Package reconcile compares two listings of object keys: the keys recorded
// at some point in time and the keys a fresh resolution returns now.
//
// # Architecture
//
// The engine builds a count index per source, takes the union of both key
// sets and produces one ReconcileResult per key whose occurrence counts
// differ. Results are sorted by key so plans are deterministic.
//
// Keys are counted rather than deduplicated because a resolution may legally
// return the same key more than once when patterns overlap.
//
// # Usage Example
//
//	plan := reconcile.Reconcile(detail.Keys, current)
//	if plan.InSync() {
//	    return nil
//	}
//	for _, action := range plan.Actions {
//	    fmt.Println(action.Type, action.Key)
//	}
package reconcile
