// internal/service/gap_service.go
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
	"github.com/unclebandit/gapgrabber-web/internal/model"
	"github.com/unclebandit/gapgrabber-web/internal/queue"
	"github.com/unclebandit/gapgrabber-web/internal/repository"
)

// Adapter is what the screens and the JSON API need from the backend.
type Adapter interface {
	ListSlots(ctx context.Context) ([]model.Slot, error)
	CancelSlot(ctx context.Context, slotKey string) (*model.Slot, error)
	StartFillWorkflow(ctx context.Context, slotKey string, req FillRequest) (*model.Workflow, error)
	ListWorkflows(ctx context.Context) ([]model.Workflow, error)
	GetWorkflow(ctx context.Context, workflowKey string) (*model.Workflow, error)
	GetCustomerMessages(ctx context.Context, customerID int, campaignID *int) (*model.CustomerMessages, error)
}

const (
	DefaultDiscountPercent = 0
	DefaultWaitTimeMinutes = 5
)

// FillRequest carries the cancel form's inputs.
type FillRequest struct {
	Reason          string `json:"reason"`
	DiscountPercent int    `json:"discountPercent"`
	WaitTimeMinutes int    `json:"waitTimeMinutes"`
}

func NewFillRequest(reason string) FillRequest {
	return FillRequest{
		Reason:          reason,
		DiscountPercent: DefaultDiscountPercent,
		WaitTimeMinutes: DefaultWaitTimeMinutes,
	}
}

func (r FillRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return appErrors.NewValidation("reason", "Please provide a reason for cancellation")
	}
	if r.DiscountPercent < 0 || r.DiscountPercent > 100 {
		return appErrors.NewValidation("discount", "Discount must be between 0 and 100")
	}
	if r.WaitTimeMinutes < 1 || r.WaitTimeMinutes > 60 {
		return appErrors.NewValidation("waitingMinutes", "Waiting period must be between 1 and 60 minutes")
	}
	return nil
}

type GapService struct {
	AppointmentRepo repository.AppointmentRepositoryInterface
	CampaignRepo    repository.CampaignRepositoryInterface
	MessageRepo     repository.MessageRepositoryInterface
	Queue           queue.Queue
	Logger          *zap.Logger
	Location        *time.Location
	Now             func() time.Time
}

func (s *GapService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *GapService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ListSlots returns every scheduled appointment as a Slot.
func (s *GapService) ListSlots(ctx context.Context) ([]model.Slot, error) {
	appts, err := s.AppointmentRepo.ListScheduled(ctx)
	if err != nil {
		return nil, err
	}
	slots := make([]model.Slot, len(appts))
	for i, a := range appts {
		slots[i] = MapAppointment(a)
	}
	return slots, nil
}

// CancelSlot resolves the slot about to be cancelled. It performs no write:
// the backend cancels the appointment inside StartFillWorkflow.
func (s *GapService) CancelSlot(ctx context.Context, slotKey string) (*model.Slot, error) {
	id, err := model.ParseKey(model.SlotPrefix, slotKey)
	if err != nil {
		return nil, err
	}

	appts, err := s.AppointmentRepo.ListScheduled(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		if a.ID == id {
			slot := MapAppointment(a)
			return &slot, nil
		}
	}
	return nil, appErrors.NewNotFound("appointment", strconv.Itoa(id))
}

// StartFillWorkflow cancels the appointment and launches its fill campaign,
// then loads the new campaign.
func (s *GapService) StartFillWorkflow(ctx context.Context, slotKey string, req FillRequest) (*model.Workflow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id, err := model.ParseKey(model.SlotPrefix, slotKey)
	if err != nil {
		return nil, err
	}

	resp, err := s.AppointmentRepo.CancelAndFill(ctx, id, model.CancelAndFillRequest{
		DiscountPercentage: req.DiscountPercent,
		WaitTimeMinutes:    req.WaitTimeMinutes,
		CustomContext:      req.Reason,
	})
	if err != nil {
		return nil, err
	}

	campaign, err := s.CampaignRepo.GetByID(ctx, resp.CampaignID)
	if err != nil {
		// The appointment is already cancelled at this point.
		s.logger().Warn("campaign launched but could not be loaded",
			zap.String("slot", slotKey), zap.Int("campaign_id", resp.CampaignID), zap.Error(err))
		return nil, err
	}

	wf := MapCampaign(campaign, s.Location)
	wf.SlotID = id
	wf.SlotKey = slotKey

	s.publishLaunched(wf, req)
	return &wf, nil
}

func (s *GapService) publishLaunched(wf model.Workflow, req FillRequest) {
	if s.Queue == nil {
		return
	}
	ev := model.WorkflowEvent{
		EventID:            uuid.NewString(),
		Type:               model.EventWorkflowLaunched,
		WorkflowID:         wf.ID,
		SlotID:             wf.SlotID,
		Reason:             req.Reason,
		DiscountPercentage: req.DiscountPercent,
		WaitTimeMinutes:    req.WaitTimeMinutes,
		OccurredAt:         s.now().UTC(),
	}
	if err := s.Queue.Publish(model.EventWorkflowLaunched, ev); err != nil {
		s.logger().Warn("failed to publish workflow event", zap.Int("workflow_id", wf.ID), zap.Error(err))
	}
}

// ListWorkflows loads every campaign's detail concurrently. Campaigns whose
// detail fetch fails are logged and left out; order follows the summaries.
func (s *GapService) ListWorkflows(ctx context.Context) ([]model.Workflow, error) {
	summaries, err := s.CampaignRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.logger().Debug("fetched campaign summaries", zap.Int("count", len(summaries)))

	results := make([]*model.Workflow, len(summaries))
	var g errgroup.Group
	for i, summary := range summaries {
		g.Go(func() error {
			c, err := s.CampaignRepo.GetByID(ctx, summary.ID)
			if err != nil {
				s.logger().Warn("dropping campaign from list", zap.Int("campaign_id", summary.ID), zap.Error(err))
				return nil
			}
			wf := MapCampaign(c, s.Location)
			results[i] = &wf
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workflows := make([]model.Workflow, 0, len(results))
	for _, wf := range results {
		if wf != nil {
			workflows = append(workflows, *wf)
		}
	}
	return workflows, nil
}

func (s *GapService) GetWorkflow(ctx context.Context, workflowKey string) (*model.Workflow, error) {
	id, err := model.ParseKey(model.WorkflowPrefix, workflowKey)
	if err != nil {
		return nil, err
	}
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wf := MapCampaign(c, s.Location)
	return &wf, nil
}

// GetCustomerMessages returns the thread of one customer. The backend groups
// messages by customer; a missing group is NotFound even on a 200.
func (s *GapService) GetCustomerMessages(ctx context.Context, customerID int, campaignID *int) (*model.CustomerMessages, error) {
	groups, err := s.MessageRepo.ListByCustomer(ctx, customerID, campaignID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g.Customer.ID != customerID {
			continue
		}
		out := &model.CustomerMessages{
			Customer: g.Customer,
			Messages: make([]model.Message, len(g.Messages)),
		}
		for i, m := range g.Messages {
			out.Messages[i] = model.Message{
				ID:        m.ID,
				Direction: m.Direction,
				Content:   m.Content,
				Timestamp: m.Timestamp.UTC(),
			}
		}
		return out, nil
	}
	return nil, appErrors.NewNotFound("messages for customer", strconv.Itoa(customerID))
}

var _ Adapter = (*GapService)(nil)
