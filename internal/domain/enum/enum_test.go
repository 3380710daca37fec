package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryTypeValidity(t *testing.T) {
	for _, d := range DeliveryTypes {
		assert.True(t, d.IsValid(), d)
	}
	assert.False(t, DeliveryType("express").IsValid())

	_, err := DeliveryType("express").Value()
	assert.Error(t, err)

	var scanned DeliveryType
	require.NoError(t, scanned.Scan([]byte("same_day_urgent")))
	assert.Equal(t, DeliverySameDayUrgent, scanned)
	assert.Equal(t, "Same Day Urgent", scanned.Label())
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusBooked.CanTransitionTo(BookingStatusProcessing))
	assert.True(t, BookingStatusReady.CanTransitionTo(BookingStatusDelivered))
	assert.False(t, BookingStatusDelivered.CanTransitionTo(BookingStatusBooked))
	assert.False(t, BookingStatusReady.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusProcessing))
}
