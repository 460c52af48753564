package model

import (
	"time"
)

const (
	RequestPriorityLow    = "low"
	RequestPriorityMedium = "medium"
	RequestPriorityHigh   = "high"
	RequestPriorityUrgent = "urgent"

	RequestStatusOpen       = "open"
	RequestStatusInProgress = "in-progress"
	RequestStatusResolved   = "resolved"
	RequestStatusClosed     = "closed"
)

type ServiceRequest struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	ServiceType string    `json:"service_type"`
	Priority    string    `json:"priority"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
