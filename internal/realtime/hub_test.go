package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesRoomSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(CompanyRoom(1))
	defer sub.Close()

	hub.ToCompany(1, "new_message", "hello")

	require.Len(t, sub.C, 1)
	event := <-sub.C
	assert.Equal(t, "new_message", event.Name)
	assert.Equal(t, "hello", event.Payload)
}

func TestPublishSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(CompanyRoom(1))
	defer sub.Close()

	hub.ToCompany(2, "new_message", "other company")
	hub.ToUser(99, "new_private_message", "someone else")

	assert.Empty(t, sub.C)
}

func TestSubscriptionSpansMultipleRooms(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(CompanyRoom(1), UserRoom(7))
	defer sub.Close()

	hub.ToCompany(1, "a", nil)
	hub.ToUser(7, "b", nil)

	assert.Len(t, sub.C, 2)
}

func TestClosedSubscriptionStopsReceiving(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(UserRoom(7))
	sub.Close()

	hub.ToUser(7, "late", nil)
	assert.Empty(t, sub.C)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(UserRoom(7))
	defer sub.Close()

	for i := 0; i < 100; i++ {
		hub.ToUser(7, "flood", i)
	}

	// The buffer caps delivery; the publisher never blocked.
	assert.Equal(t, cap(sub.C), len(sub.C))
}
