package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPendingPayment, StatusConfirmed, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusExpired, true},
		{StatusPendingPayment, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPendingPayment, false},
		{StatusConfirmed, StatusExpired, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusExpired, StatusConfirmed, false},
		{StatusConfirmed, StatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPendingPayment.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusExpired.Terminal())
}

func TestStatusBlocksSlot(t *testing.T) {
	assert.True(t, StatusPendingPayment.BlocksSlot())
	assert.True(t, StatusConfirmed.BlocksSlot())
	assert.True(t, StatusCompleted.BlocksSlot())
	assert.False(t, StatusCancelled.BlocksSlot())
	assert.False(t, StatusExpired.BlocksSlot())
}

func TestStatusCancellable(t *testing.T) {
	assert.True(t, StatusPendingPayment.Cancellable())
	assert.True(t, StatusConfirmed.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
	assert.False(t, StatusCompleted.Cancellable())
	assert.False(t, StatusExpired.Cancellable())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, Status("pending_payment").Valid())
	assert.True(t, Status("expired").Valid())
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}
