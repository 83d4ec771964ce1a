// internal/model/appointment.go
package model

// AppointmentStatus is the backend's appointment state.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID            int               `json:"id"`
	Customer      Customer          `json:"customer"`
	ScheduledTime Timestamp         `json:"scheduled_time"`
	ServiceType   string            `json:"service_type"`
	Status        AppointmentStatus `json:"status"`
}

type AppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

// CancelAndFillRequest is the body of POST /api/appointments/{id}/cancel-and-fill.
type CancelAndFillRequest struct {
	DiscountPercentage int    `json:"discount_percentage"`
	WaitTimeMinutes    int    `json:"wait_time_minutes"`
	CustomContext      string `json:"custom_context"`
}

type CancelAndFillResponse struct {
	CampaignID int `json:"campaign_id"`
}
