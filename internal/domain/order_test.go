package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusPending.CanTransitionTo(StatusCanceled))

	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusPending))
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCanceled.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}
