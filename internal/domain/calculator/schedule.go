// Package calculator holds the booking date, delivery date, pricing and receipt
// numbering rules. Every function is pure: the current moment and the pricing
// configuration are always passed in.
package calculator

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
)

// Shop clock thresholds
const (
	sameDayCutoffHour   = 10
	sameDayCutoffMinute = 30
	lateCutoffHour      = 18
	lateCutoffMinute    = 30
	openingHour         = 9
)

// ClosedWeekday is the day the shop never delivers on
const ClosedWeekday = time.Friday

// Schedule is the set of dates shown to the counter before a booking is taken
type Schedule struct {
	BookingDate            time.Time
	SameDayUrgentAvailable bool
	DeliveryDates          map[enum.DeliveryType]*time.Time
}

func atClock(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

func sameDayCutoff(t time.Time) time.Time {
	return atClock(t, sameDayCutoffHour, sameDayCutoffMinute)
}

func lateCutoff(t time.Time) time.Time {
	return atClock(t, lateCutoffHour, lateCutoffMinute)
}

// EndOfDay returns the last millisecond of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return now.New(t).EndOfDay().Truncate(time.Millisecond)
}

// IsLate reports whether t is past the evening cutoff
func IsLate(t time.Time) bool {
	return t.After(lateCutoff(t))
}

// BookingDate moves bookings taken after the evening cutoff to 09:00 on the
// next open day. Earlier bookings keep the current moment.
func BookingDate(current time.Time) time.Time {
	if !IsLate(current) {
		return current
	}

	next := atClock(current.AddDate(0, 0, 1), openingHour, 0)
	if next.Weekday() == ClosedWeekday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SameDayUrgentAvailable is false only between the morning and evening cutoffs
func SameDayUrgentAvailable(current time.Time) bool {
	return current.Before(sameDayCutoff(current)) || current.After(lateCutoff(current))
}

// DeliveryDate computes the promised delivery moment. Cutoffs are checked
// against current, not bookingDate. A nil result means the delivery type
// cannot be offered right now.
func DeliveryDate(current, bookingDate time.Time, deliveryType enum.DeliveryType, cfg *entity.Configuration) *time.Time {
	var days int

	switch deliveryType {
	case enum.DeliverySameDayUrgent:
		if current.Before(sameDayCutoff(current)) {
			// No closed-day check on this branch.
			eod := EndOfDay(bookingDate)
			return &eod
		}
		if !IsLate(current) {
			return nil
		}
		days = 1
	case enum.DeliveryNormal, enum.DeliveryUrgent:
		if cfg == nil {
			return nil
		}
		days = cfg.NumberOfDaysForNormal
		if deliveryType == enum.DeliveryUrgent {
			days = cfg.NumberOfDaysForUrgent
		}
		if IsLate(current) {
			days++
		}
	default:
		return nil
	}

	delivery := walkDays(bookingDate, days)
	eod := EndOfDay(delivery)
	return &eod
}

// walkDays advances one calendar day at a time, stepping over the closed
// weekday whenever it is landed on. A zero count still leaves the closed day.
func walkDays(from time.Time, days int) time.Time {
	d := from
	for i := 0; i < days; i++ {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == ClosedWeekday {
			d = d.AddDate(0, 0, 1)
		}
	}
	for d.Weekday() == ClosedWeekday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Plan computes the booking date and the delivery date of every delivery type
func Plan(current time.Time, cfg *entity.Configuration) Schedule {
	booking := BookingDate(current)
	s := Schedule{
		BookingDate:            booking,
		SameDayUrgentAvailable: SameDayUrgentAvailable(current),
		DeliveryDates:          make(map[enum.DeliveryType]*time.Time, len(enum.DeliveryTypes)),
	}
	for _, dt := range enum.DeliveryTypes {
		s.DeliveryDates[dt] = DeliveryDate(current, booking, dt, cfg)
	}
	return s
}
