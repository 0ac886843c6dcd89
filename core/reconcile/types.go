package reconcile

// ReconcileResult represents the reconciliation output for a single key.
type ReconcileResult struct {
	// Key is the object key.
	Key string `json:"key"`

	// Recorded is the number of times the key appears in the recorded listing.
	Recorded int `json:"recorded"`

	// Current is the number of times the key appears in the current listing.
	Current int `json:"current"`
}

// Status describes how the key drifted.
func (r ReconcileResult) Status() Status {
	switch {
	case r.Recorded == 0:
		return StatusAdded
	case r.Current == 0:
		return StatusRemoved
	case r.Recorded != r.Current:
		return StatusCountChanged
	default:
		return StatusInSync
	}
}

// Status is the drift state of a key.
type Status string

const (
	StatusInSync       Status = "in_sync"
	StatusAdded        Status = "added"
	StatusRemoved      Status = "removed"
	StatusCountChanged Status = "count_changed"
)

// ActionType represents the type of change needed to bring the recording up to date.
type ActionType string

const (
	// ActionRecord adds occurrences of a key to the recording.
	ActionRecord ActionType = "record"
	// ActionDrop removes occurrences of a key from the recording.
	ActionDrop ActionType = "drop"
)

// Action represents a planned change to the recorded listing.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Count  int        `json:"count"`
	Reason string     `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Results contains one entry per drifted key, sorted by key.
	Results []ReconcileResult `json:"results"`

	// Actions contains the changes that turn the recorded listing into the current one.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// InSync reports whether both listings hold the same keys with the same counts.
func (p *ReconcilePlan) InSync() bool {
	return len(p.Results) == 0
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalKeys is the number of distinct keys across both listings.
	TotalKeys int `json:"total_keys"`

	InSync       int `json:"in_sync"`
	Added        int `json:"added"`
	Removed      int `json:"removed"`
	CountChanged int `json:"count_changed"`

	RecordActions int `json:"record_actions"`
	DropActions   int `json:"drop_actions"`
}
