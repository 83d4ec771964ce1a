package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/unclebandit/gapgrabber-web/internal/backend"
	"github.com/unclebandit/gapgrabber-web/internal/model"
)

type AppointmentRepositoryInterface interface {
	ListScheduled(ctx context.Context) ([]model.Appointment, error)
	CancelAndFill(ctx context.Context, id int, req model.CancelAndFillRequest) (*model.CancelAndFillResponse, error)
}

type AppointmentRepository struct {
	Client *backend.Client
}

func (r *AppointmentRepository) ListScheduled(ctx context.Context) ([]model.Appointment, error) {
	var resp model.AppointmentsResponse
	q := url.Values{"status": {string(model.AppointmentScheduled)}}
	if err := r.Client.Get(ctx, "fetch appointments", "/api/appointments", q, &resp); err != nil {
		return nil, err
	}
	if resp.Appointments == nil {
		return []model.Appointment{}, nil
	}
	return resp.Appointments, nil
}

// CancelAndFill cancels the appointment and launches its fill campaign in
// one backend call.
func (r *AppointmentRepository) CancelAndFill(ctx context.Context, id int, req model.CancelAndFillRequest) (*model.CancelAndFillResponse, error) {
	var resp model.CancelAndFillResponse
	path := "/api/appointments/" + strconv.Itoa(id) + "/cancel-and-fill"
	if err := r.Client.Do(ctx, "start fill workflow", http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ AppointmentRepositoryInterface = (*AppointmentRepository)(nil)
