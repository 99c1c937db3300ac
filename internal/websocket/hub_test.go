package coursews

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for seat update")
		return nil
	}
}

func TestHubBroadcastsSeatChanges(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	first := newClient(hub, nil, 4)
	second := newClient(hub, nil, 4)
	hub.Register(first)
	hub.Register(second)

	hub.CourseSeatsChanged(models.Course{
		ID:                  3,
		CurrentParticipants: 1,
		MaxParticipants:     1,
		Status:              models.CourseStatusFull,
	})

	for _, client := range []*Client{first, second} {
		var message SeatsMessage
		require.NoError(t, json.Unmarshal(receive(t, client), &message))
		assert.Equal(t, "course.seats", message.Type)
		assert.Equal(t, int64(3), message.CourseID)
		assert.Equal(t, 1, message.CurrentParticipants)
		assert.Equal(t, models.CourseStatusFull, message.Status)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	slow := newClient(hub, nil, 1)
	fast := newClient(hub, nil, 4)
	hub.Register(slow)
	hub.Register(fast)

	hub.CourseSeatsChanged(models.Course{ID: 1})
	hub.CourseSeatsChanged(models.Course{ID: 2})
	receive(t, fast)
	receive(t, fast)
	// Registration is served by the same loop, so both broadcasts are done.
	hub.Register(newClient(hub, nil, 1))

	_, ok := <-slow.send
	assert.True(t, ok, "first update fits the queue")
	_, ok = <-slow.send
	assert.False(t, ok, "slow client should be dropped")
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	client := newClient(hub, nil, 1)
	hub.Register(client)
	hub.Stop()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client queue not closed on stop")
	}
}
