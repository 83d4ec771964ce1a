// internal/model/slot.go
package model

import "time"

type SlotStatus string

const (
	SlotScheduled SlotStatus = "scheduled"
	SlotCancelled SlotStatus = "cancelled"
	SlotFilling   SlotStatus = "filling"
	SlotFilled    SlotStatus = "filled"
)

// SlotDuration is assumed for every appointment; the backend has no end time.
const SlotDuration = 2 * time.Hour

type Slot struct {
	ID           int        `json:"id"`
	Key          string     `json:"key"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      time.Time  `json:"endTime"`
	JobType      string     `json:"jobType"`
	Status       SlotStatus `json:"status"`
	CustomerName string     `json:"customerName"`
	Address      string     `json:"address"`
	Description  string     `json:"description"`
}

func (s Slot) Cancellable() bool {
	return s.Status == SlotScheduled
}
