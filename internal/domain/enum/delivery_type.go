package enum

import (
	"database/sql/driver"
	"fmt"
)

// DeliveryType decides the surcharge and the scheduling rule of a booking
type DeliveryType string

const (
	DeliveryNormal        DeliveryType = "normal"
	DeliveryUrgent        DeliveryType = "urgent"
	DeliverySameDayUrgent DeliveryType = "same_day_urgent"
)

// DeliveryTypes lists every accepted delivery type in display order
var DeliveryTypes = []DeliveryType{DeliveryNormal, DeliveryUrgent, DeliverySameDayUrgent}

// IsValid reports whether d is one of the enumerated delivery types
func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryNormal, DeliveryUrgent, DeliverySameDayUrgent:
		return true
	}
	return false
}

func (d DeliveryType) String() string {
	return string(d)
}

// Label is the human readable name printed on tickets
func (d DeliveryType) Label() string {
	switch d {
	case DeliveryNormal:
		return "Normal"
	case DeliveryUrgent:
		return "Urgent"
	case DeliverySameDayUrgent:
		return "Same Day Urgent"
	}
	return string(d)
}

func (d DeliveryType) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid delivery type %q", string(d))
	}
	return string(d), nil
}

func (d *DeliveryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*d = DeliveryType(v)
	case []byte:
		*d = DeliveryType(v)
	case nil:
		*d = DeliveryNormal
	default:
		return fmt.Errorf("cannot scan %T into DeliveryType", value)
	}
	return nil
}
