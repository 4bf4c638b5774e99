package models

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking lifecycle: PENDING -> ACCEPTED ->
// COMPLETED, with CANCELLED reachable from the two non-terminal states.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingAccepted || next == BookingCancelled
	case BookingAccepted:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

// Booking is one service request between a customer and a provider. The
// foreign keys are stored directly; the relation pointers are only filled
// when a read explicitly preloads them.
type Booking struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	ServiceCategory string        `gorm:"type:varchar(80);not null" json:"service_category"` // e.g. "Plumber"
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ScheduledDate   time.Time     `json:"scheduled_date"`

	Rating        *int   `json:"rating,omitempty"` // 1-5, set by the customer after completion
	ReviewComment string `gorm:"type:text" json:"review_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Provider *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
