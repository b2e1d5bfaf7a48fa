package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts() *time.Time {
	t := time.Now()
	return &t
}

func TestOrderStatusPrecedence(t *testing.T) {
	cases := []struct {
		name  string
		order Order
		want  OrderStatus
	}{
		{"fresh", Order{}, StatusPending},
		{"accepted", Order{AcceptedAt: ts()}, StatusAccepted},
		{"ready", Order{AcceptedAt: ts(), ReadyAt: ts()}, StatusReady},
		{"collected", Order{AcceptedAt: ts(), ReadyAt: ts(), CollectedAt: ts()}, StatusCollected},
		{"cancelled wins", Order{AcceptedAt: ts(), ReadyAt: ts(), CancelledAt: ts()}, StatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.order.Status())
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]OrderStatus{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusReady},
		{StatusAccepted, StatusCancelled},
		{StatusReady, StatusCollected},
	}
	for _, p := range allowed {
		assert.True(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}

	denied := [][2]OrderStatus{
		{StatusPending, StatusReady},
		{StatusPending, StatusCollected},
		{StatusAccepted, StatusCollected},
		{StatusReady, StatusCancelled},
		{StatusCollected, StatusReady},
		{StatusCancelled, StatusAccepted},
	}
	for _, p := range denied {
		assert.False(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}
}

func TestIsOpen(t *testing.T) {
	o := Order{}
	assert.True(t, o.IsOpen())
	o.PaidAt = ts()
	assert.False(t, o.IsOpen())
}
