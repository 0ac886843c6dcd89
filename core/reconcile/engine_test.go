package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_InSync(t *testing.T) {
	plan := Reconcile(
		[]string{"logs/a", "logs/b", "logs/b"},
		[]string{"logs/b", "logs/a", "logs/b"},
	)

	assert.True(t, plan.InSync())
	assert.Empty(t, plan.Results)
	assert.Empty(t, plan.Actions)
	assert.Equal(t, 2, plan.Summary.TotalKeys)
	assert.Equal(t, 2, plan.Summary.InSync)
}

func TestReconcile_Drift(t *testing.T) {
	recorded := []string{"logs/a", "logs/b", "logs/c", "logs/c"}
	current := []string{"logs/c", "logs/b", "logs/d"}

	plan := Reconcile(recorded, current)

	require.False(t, plan.InSync())
	assert.Equal(t, []ReconcileResult{
		{Key: "logs/a", Recorded: 1, Current: 0},
		{Key: "logs/c", Recorded: 2, Current: 1},
		{Key: "logs/d", Recorded: 0, Current: 1},
	}, plan.Results)

	require.Len(t, plan.Actions, 3)
	assert.Equal(t, Action{Type: ActionDrop, Key: "logs/a", Count: 1, Reason: "removed: recorded=1 current=0"}, plan.Actions[0])
	assert.Equal(t, Action{Type: ActionDrop, Key: "logs/c", Count: 1, Reason: "count_changed: recorded=2 current=1"}, plan.Actions[1])
	assert.Equal(t, Action{Type: ActionRecord, Key: "logs/d", Count: 1, Reason: "added: recorded=0 current=1"}, plan.Actions[2])

	assert.Equal(t, PlanSummary{
		TotalKeys:     4,
		InSync:        1,
		Added:         1,
		Removed:       1,
		CountChanged:  1,
		RecordActions: 1,
		DropActions:   2,
	}, plan.Summary)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	plan := Reconcile(nil, nil)

	assert.True(t, plan.InSync())
	assert.NotNil(t, plan.Results)
	assert.NotNil(t, plan.Actions)
	assert.Equal(t, 0, plan.Summary.TotalKeys)
}

func TestReconcile_DoesNotModifyInputs(t *testing.T) {
	recorded := []string{"b", "a"}
	current := []string{"c"}

	Reconcile(recorded, current)

	assert.Equal(t, []string{"b", "a"}, recorded)
	assert.Equal(t, []string{"c"}, current)
}

func TestReconcileResult_Status(t *testing.T) {
	tests := []struct {
		name   string
		result ReconcileResult
		want   Status
	}{
		{"added", ReconcileResult{Recorded: 0, Current: 2}, StatusAdded},
		{"removed", ReconcileResult{Recorded: 1, Current: 0}, StatusRemoved},
		{"count changed", ReconcileResult{Recorded: 1, Current: 3}, StatusCountChanged},
		{"in sync", ReconcileResult{Recorded: 2, Current: 2}, StatusInSync},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Status())
		})
	}
}
