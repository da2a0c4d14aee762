package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second int
	dispatcher.Subscribe(EventLoanCreated, func(_ context.Context, _ Event) error {
		first++
		return nil
	})
	dispatcher.Subscribe(EventLoanCreated, func(_ context.Context, _ Event) error {
		second++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventLoanCreated, SubjectID: "txn-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestPublishContinuesPastHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventBookAdded, func(_ context.Context, _ Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventBookAdded, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventBookAdded})
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	err := dispatcher.Publish(context.Background(), Event{Type: EventMemberRegistered})
	assert.NoError(t, err)
}

func TestSubscriberOnlyReceivesItsType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls int
	dispatcher.Subscribe(EventLoanCompleted, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	_ = dispatcher.Publish(context.Background(), Event{Type: EventLoanCreated})
	assert.Zero(t, calls)
}
