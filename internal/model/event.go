// internal/model/event.go
package model

import "time"

const EventWorkflowLaunched = "workflow.launched"

// WorkflowEvent is published after a cancel-and-fill succeeds.
type WorkflowEvent struct {
	EventID            string    `json:"event_id"`
	Type               string    `json:"type"`
	WorkflowID         int       `json:"workflow_id"`
	SlotID             int       `json:"slot_id"`
	Reason             string    `json:"reason"`
	DiscountPercentage int       `json:"discount_percentage"`
	WaitTimeMinutes    int       `json:"wait_time_minutes"`
	OccurredAt         time.Time `json:"occurred_at"`
}
