// internal/model/campaign.go
package model

// CampaignStatus is the backend-native campaign state. It never reaches a
// screen directly; see WorkflowStatus.
type CampaignStatus string

const (
	CampaignActive  CampaignStatus = "active"
	CampaignFilled  CampaignStatus = "filled"
	CampaignExpired CampaignStatus = "expired"
)

// AttemptStatus is the backend-native outreach attempt state.
type AttemptStatus string

const (
	AttemptPending        AttemptStatus = "pending"
	AttemptSent           AttemptStatus = "sent"
	AttemptAccepted       AttemptStatus = "accepted"
	AttemptDeclined       AttemptStatus = "declined"
	AttemptNotifiedFilled AttemptStatus = "notified_filled"
)

type CampaignSummary struct {
	ID                 int            `json:"id"`
	Status             CampaignStatus `json:"status"`
	CancelledSlotTime  Timestamp      `json:"cancelled_slot_time"`
	ServiceType        string         `json:"service_type"`
	DiscountPercentage int            `json:"discount_percentage"`
	WaitTimeMinutes    int            `json:"wait_time_minutes"`
	CurrentBatch       int            `json:"current_batch"`
	TotalContacted     int            `json:"total_contacted"`
	CreatedAt          Timestamp      `json:"created_at"`
}

type CampaignsResponse struct {
	Campaigns []CampaignSummary `json:"campaigns"`
}

type OutreachAttempt struct {
	Customer    Customer      `json:"customer"`
	Status      AttemptStatus `json:"status"`
	BatchNumber int           `json:"batch_number"`
	MessageSent string        `json:"message_sent"`
	SentAt      Timestamp     `json:"sent_at"`
	RespondedAt *Timestamp    `json:"responded_at,omitempty"`
}

type Campaign struct {
	ID                 int               `json:"id"`
	Status             CampaignStatus    `json:"status"`
	CancelledSlotTime  Timestamp         `json:"cancelled_slot_time"`
	ServiceType        string            `json:"service_type"`
	DiscountPercentage int               `json:"discount_percentage"`
	WaitTimeMinutes    int               `json:"wait_time_minutes"`
	CustomContext      *string           `json:"custom_context,omitempty"`
	CurrentBatch       int               `json:"current_batch"`
	TotalContacted     int               `json:"total_contacted"`
	OutreachAttempts   []OutreachAttempt `json:"outreach_attempts"`
}
