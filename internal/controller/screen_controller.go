// internal/controller/screen_controller.go
package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
	"github.com/unclebandit/gapgrabber-web/internal/model"
	"github.com/unclebandit/gapgrabber-web/internal/service"
	"github.com/unclebandit/gapgrabber-web/internal/view"
)

const (
	msgSlotNotFound   = "Slot not found"
	msgLoadSlotFailed = "Failed to load slot"
	msgFillStarted    = "Started contacting people to fill this slot"
	msgFillFailed     = "Failed to start gap filling"
)

// ScreenController serves the mobile HTML screens.
type ScreenController struct {
	Adapter service.Adapter
	Views   *view.Renderer
	Logger  *zap.Logger
}

// Routes mounts every screen on r.
func (c *ScreenController) Routes(r chi.Router) {
	r.Get("/", c.Slots)
	r.Get("/workflows", c.Workflows)
	r.Get("/cancel-slot/{slotId}", c.CancelForm)
	r.Post("/cancel-slot/{slotId}", c.SubmitCancel)
	r.Get("/workflow/{workflowId}", c.Workflow)
	r.Get("/workflow/{workflowId}/customer/{customerId}", c.CustomerMessages)
	r.NotFound(c.NotFound)
}

func (c *ScreenController) Slots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Adapter.ListSlots(r.Context())
	if err != nil {
		c.fail(w, r, view.TabSlots, "Failed to load slots", err)
		return
	}
	c.render(w, r, http.StatusOK, view.PageSlots, "Schedule", view.TabSlots, slots)
}

func (c *ScreenController) Workflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := c.Adapter.ListWorkflows(r.Context())
	if err != nil {
		c.fail(w, r, view.TabGaps, "Failed to load gaps", err)
		return
	}
	c.render(w, r, http.StatusOK, view.PageWorkflows, "Gaps", view.TabGaps, workflows)
}

func (c *ScreenController) Workflow(w http.ResponseWriter, r *http.Request) {
	wf, err := c.Adapter.GetWorkflow(r.Context(), chi.URLParam(r, "workflowId"))
	if err != nil {
		c.fail(w, r, view.TabGaps, "Failed to load gap", err)
		return
	}
	c.render(w, r, http.StatusOK, view.PageWorkflow, "Gap Details", view.TabGaps, wf)
}

func (c *ScreenController) CustomerMessages(w http.ResponseWriter, r *http.Request) {
	workflowKey := chi.URLParam(r, "workflowId")
	campaignID, err := model.ParseKey(model.WorkflowPrefix, workflowKey)
	if err != nil {
		c.fail(w, r, view.TabGaps, "Failed to load messages", err)
		return
	}
	customerID, err := strconv.Atoi(chi.URLParam(r, "customerId"))
	if err != nil || customerID <= 0 {
		c.fail(w, r, view.TabGaps, "Failed to load messages",
			appErrors.NewNotFound("customer", chi.URLParam(r, "customerId")))
		return
	}

	thread, err := c.Adapter.GetCustomerMessages(r.Context(), customerID, &campaignID)
	if err != nil {
		c.fail(w, r, view.TabGaps, "Failed to load messages", err)
		return
	}
	c.render(w, r, http.StatusOK, view.PageMessages, thread.Customer.Name, view.TabGaps,
		view.Thread{WorkflowKey: workflowKey, Messages: thread})
}

// CancelForm resolves the slot and shows the launch form. Values bounced
// back by a rejected submit arrive in the query; otherwise defaults apply.
func (c *ScreenController) CancelForm(w http.ResponseWriter, r *http.Request) {
	slot, err := c.Adapter.CancelSlot(r.Context(), chi.URLParam(r, "slotId"))
	if err != nil {
		c.slotUnavailable(w, r, err)
		return
	}
	q := r.URL.Query()
	c.render(w, r, http.StatusOK, view.PageCancel, "Fill Empty Slot", view.TabSlots, view.CancelForm{
		Slot:           slot,
		Reason:         q.Get("reason"),
		Discount:       intOr(q.Get("discount"), service.DefaultDiscountPercent),
		WaitingMinutes: intOr(q.Get("waitingMinutes"), service.DefaultWaitTimeMinutes),
	})
}

// SubmitCancel validates the form, resolves the slot, then cancels it and
// launches the fill workflow. Invalid input never reaches the backend.
func (c *ScreenController) SubmitCancel(w http.ResponseWriter, r *http.Request) {
	slotKey := chi.URLParam(r, "slotId")
	req, err := parseFillForm(r)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		// Entered values ride the redirect query; no backend call here.
		entered := url.Values{}
		for _, field := range []string{"reason", "discount", "waitingMinutes"} {
			if v := r.PostFormValue(field); v != "" {
				entered.Set(field, v)
			}
		}
		target := "/cancel-slot/" + url.PathEscape(slotKey)
		if len(entered) > 0 {
			target += "?" + entered.Encode()
		}
		view.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	slot, err := c.Adapter.CancelSlot(r.Context(), slotKey)
	if err != nil {
		c.slotUnavailable(w, r, err)
		return
	}

	wf, err := c.Adapter.StartFillWorkflow(r.Context(), slot.Key, req)
	if err != nil {
		c.logger().Warn("gap filling failed", zap.String("slot", slot.Key), zap.Error(err))
		c.render(w, r, statusFor(err), view.PageCancel, "Fill Empty Slot", view.TabSlots, view.CancelForm{
			Slot:           slot,
			Reason:         req.Reason,
			Discount:       req.DiscountPercent,
			WaitingMinutes: req.WaitTimeMinutes,
			Error:          msgFillFailed,
		})
		return
	}

	view.SetFlash(w, "success", msgFillStarted)
	http.Redirect(w, r, "/workflow/"+wf.Key, http.StatusSeeOther)
}

func (c *ScreenController) NotFound(w http.ResponseWriter, r *http.Request) {
	c.logger().Info("route not found", zap.String("path", r.URL.Path))
	c.render(w, r, http.StatusNotFound, view.PageNotFound, "Not Found", "", nil)
}

func intOr(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func parseFillForm(r *http.Request) (service.FillRequest, error) {
	req := service.NewFillRequest(r.PostFormValue("reason"))
	if v := strings.TrimSpace(r.PostFormValue("discount")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, appErrors.NewValidation("discount", "Discount must be between 0 and 100")
		}
		req.DiscountPercent = n
	}
	if v := strings.TrimSpace(r.PostFormValue("waitingMinutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, appErrors.NewValidation("waitingMinutes", "Waiting period must be between 1 and 60 minutes")
		}
		req.WaitTimeMinutes = n
	}
	return req, nil
}

func (c *ScreenController) slotUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	var nf *appErrors.NotFoundError
	if errors.As(err, &nf) {
		view.SetFlash(w, "error", msgSlotNotFound)
	} else {
		c.logger().Error("resolve slot", zap.Error(err))
		view.SetFlash(w, "error", msgLoadSlotFailed)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fail renders the error screen with a single notification.
func (c *ScreenController) fail(w http.ResponseWriter, r *http.Request, tab, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		c.logger().Error(message, zap.String("path", r.URL.Path), zap.Error(err))
	}
	c.render(w, r, status, view.PageError, message, tab, err.Error())
}

func (c *ScreenController) render(w http.ResponseWriter, r *http.Request, status int, page, title, tab string, data any) {
	p := view.Page{Title: title, Tab: tab, Flash: view.PopFlash(w, r), Data: data}
	// The error screen shows its own notification instead of a stale one.
	if page == view.PageError {
		p.Flash = &view.Flash{Kind: "error", Message: title}
	}
	if err := c.Views.Render(w, status, page, p); err != nil {
		c.logger().Error("render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (c *ScreenController) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// statusFor maps adapter errors onto response codes.
func statusFor(err error) int {
	var (
		ve *appErrors.ValidationError
		nf *appErrors.NotFoundError
		re *appErrors.RequestError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &re):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
