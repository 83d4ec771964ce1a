// internal/model/message.go
package model

import "time"

type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Message is one text exchanged with a customer. Read-only.
type Message struct {
	ID        int       `json:"id"`
	Direction Direction `json:"direction"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type CustomerMessages struct {
	Customer Customer  `json:"customer"`
	Messages []Message `json:"messages"`
}

// Wire shapes of GET /api/messages.

type MessageRecord struct {
	ID        int       `json:"id"`
	Customer  Customer  `json:"customer"`
	Direction Direction `json:"direction"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}

type MessageGroup struct {
	Customer Customer        `json:"customer"`
	Messages []MessageRecord `json:"messages"`
}

type MessagesByCustomerResponse struct {
	MessagesByCustomer []MessageGroup `json:"messages_by_customer"`
}
