// internal/model/workflow.go
package model

import (
	"fmt"
	"strings"
	"time"
)

type WorkflowStatus string

const (
	WorkflowRunning   WorkflowStatus = "running"
	WorkflowSucceeded WorkflowStatus = "succeeded"
	WorkflowFailed    WorkflowStatus = "failed"
)

type CandidateStatus string

const (
	CandidatePending   CandidateStatus = "pending"
	CandidateAccepted  CandidateStatus = "accepted"
	CandidateDeclined  CandidateStatus = "declined"
	CandidateNotNeeded CandidateStatus = "not_needed"
)

// CandidateContact is one customer offered the freed slot.
type CandidateContact struct {
	CustomerID     int             `json:"customerId"`
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Status         CandidateStatus `json:"status"`
	BatchNumber    int             `json:"batchNumber"`
	MessagePreview string          `json:"messagePreview"`
	ContactedAt    *time.Time      `json:"contactedAt,omitempty"`
	WillContactAt  *time.Time      `json:"willContactAt,omitempty"`
	RespondedAt    *time.Time      `json:"respondedAt,omitempty"`
}

// Workflow is the client-facing view of a backend campaign.
type Workflow struct {
	ID              int                `json:"id"`
	Key             string             `json:"key"`
	SlotID          int                `json:"slotId,omitempty"`
	SlotKey         string             `json:"slotKey,omitempty"`
	SlotSummary     string             `json:"slotSummary"`
	Status          WorkflowStatus     `json:"status"`
	ServiceType     string             `json:"serviceType"`
	DiscountPercent int                `json:"discountPercent"`
	WaitTimeMinutes int                `json:"waitTimeMinutes"`
	CustomContext   string             `json:"customContext,omitempty"`
	CurrentBatch    int                `json:"currentBatch"`
	TotalContacted  int                `json:"totalContacted"`
	Candidates      []CandidateContact `json:"candidates"`
}

// AcceptedCandidate returns the candidate holding the slot, if any.
func (w *Workflow) AcceptedCandidate() *CandidateContact {
	for i := range w.Candidates {
		if w.Candidates[i].Status == CandidateAccepted {
			return &w.Candidates[i]
		}
	}
	return nil
}

func (w *Workflow) Filled() bool {
	return w.AcceptedCandidate() != nil
}

// CountLabel is the list-item summary: accepted count once the campaign
// succeeded, otherwise the number contacted.
func (w *Workflow) CountLabel() string {
	if w.Status == WorkflowSucceeded {
		accepted := 0
		for _, c := range w.Candidates {
			if c.Status == CandidateAccepted {
				accepted++
			}
		}
		return fmt.Sprintf("%d accepted", accepted)
	}
	return fmt.Sprintf("%d contacted", len(w.Candidates))
}

// StatusLabel renders any screen status for a status pill.
func StatusLabel(status string) string {
	if status == string(CandidateNotNeeded) {
		return "Not needed"
	}
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
