package enum

import (
	"database/sql/driver"
	"fmt"
)

// BookingStatus tracks a garment ticket through the shop
type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "booked"
	BookingStatusProcessing BookingStatus = "processing"
	BookingStatusReady      BookingStatus = "ready"
	BookingStatusDelivered  BookingStatus = "delivered"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:     {BookingStatusProcessing, BookingStatusCancelled},
	BookingStatusProcessing: {BookingStatusReady, BookingStatusCancelled},
	BookingStatusReady:      {BookingStatusDelivered},
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusBooked, BookingStatusProcessing, BookingStatusReady,
		BookingStatusDelivered, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in s may move to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *BookingStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = BookingStatus(v)
	case []byte:
		*s = BookingStatus(v)
	case nil:
		*s = BookingStatusBooked
	default:
		return fmt.Errorf("cannot scan %T into BookingStatus", value)
	}
	return nil
}
