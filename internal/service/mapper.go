// internal/service/mapper.go
package service

import (
	"fmt"
	"time"

	"github.com/unclebandit/gapgrabber-web/internal/model"
)

// SlotStatusFor: only "cancelled" survives; everything else is scheduled.
func SlotStatusFor(s model.AppointmentStatus) model.SlotStatus {
	switch s {
	case model.AppointmentCancelled:
		return model.SlotCancelled
	default:
		return model.SlotScheduled
	}
}

func WorkflowStatusFor(s model.CampaignStatus) model.WorkflowStatus {
	switch s {
	case model.CampaignFilled:
		return model.WorkflowSucceeded
	case model.CampaignExpired:
		return model.WorkflowFailed
	case model.CampaignActive:
		return model.WorkflowRunning
	default:
		return model.WorkflowRunning
	}
}

func CandidateStatusFor(s model.AttemptStatus) model.CandidateStatus {
	switch s {
	case model.AttemptAccepted:
		return model.CandidateAccepted
	case model.AttemptDeclined:
		return model.CandidateDeclined
	case model.AttemptNotifiedFilled:
		return model.CandidateNotNeeded
	case model.AttemptSent:
		return model.CandidatePending
	default:
		return model.CandidatePending
	}
}

func MapAppointment(a model.Appointment) model.Slot {
	start := a.ScheduledTime.UTC()
	return model.Slot{
		ID:           a.ID,
		Key:          model.FormatKey(model.SlotPrefix, a.ID),
		StartTime:    start,
		EndTime:      start.Add(model.SlotDuration),
		JobType:      a.ServiceType,
		Status:       SlotStatusFor(a.Status),
		CustomerName: a.Customer.Name,
		Address:      "",
		Description:  a.ServiceType + " appointment",
	}
}

// MapCampaign builds a Workflow. The slot summary is rendered in loc; the
// slot id is unknown here and left for the caller to fill in.
func MapCampaign(c *model.Campaign, loc *time.Location) model.Workflow {
	if loc == nil {
		loc = time.UTC
	}
	wait := time.Duration(c.WaitTimeMinutes) * time.Minute

	candidates := make([]model.CandidateContact, 0, len(c.OutreachAttempts))
	for i, a := range c.OutreachAttempts {
		cand := model.CandidateContact{
			CustomerID:     a.Customer.ID,
			Key:            model.FormatKey(model.CandidatePrefix, a.Customer.ID),
			Name:           a.Customer.Name,
			Phone:          a.Customer.Phone,
			Status:         CandidateStatusFor(a.Status),
			BatchNumber:    a.BatchNumber,
			MessagePreview: a.MessageSent,
		}
		if !a.SentAt.IsZero() {
			sent := a.SentAt.UTC()
			cand.ContactedAt = &sent
			if i > 0 {
				next := sent.Add(wait)
				cand.WillContactAt = &next
			}
		}
		if a.RespondedAt != nil && !a.RespondedAt.IsZero() {
			responded := a.RespondedAt.UTC()
			cand.RespondedAt = &responded
		}
		candidates = append(candidates, cand)
	}

	wf := model.Workflow{
		ID:              c.ID,
		Key:             model.FormatKey(model.WorkflowPrefix, c.ID),
		SlotSummary:     slotSummary(c.CancelledSlotTime.Time, loc),
		Status:          WorkflowStatusFor(c.Status),
		ServiceType:     c.ServiceType,
		DiscountPercent: c.DiscountPercentage,
		WaitTimeMinutes: c.WaitTimeMinutes,
		CurrentBatch:    c.CurrentBatch,
		TotalContacted:  c.TotalContacted,
		Candidates:      candidates,
	}
	if c.CustomContext != nil {
		wf.CustomContext = *c.CustomContext
	}
	return wf
}

func slotSummary(start time.Time, loc *time.Location) string {
	start = start.In(loc)
	end := start.Add(model.SlotDuration)
	return fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))
}
