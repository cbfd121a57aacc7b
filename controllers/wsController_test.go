package controllers

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayEventsForwardsPayloads(t *testing.T) {
	src := make(chan *redis.Message, 2)
	src <- &redis.Message{Payload: "first"}
	src <- &redis.Message{Payload: "second"}
	close(src)

	dst := make(chan []byte, 2)
	done := make(chan struct{})

	relayEvents(dst, done, src)
	close(dst)

	var got []string
	for msg := range dst {
		got = append(got, string(msg))
	}
	assert.Equal(t, []string{"first", "second"}, got)
}

// A full buffer must not block the forwarder forever once the writer side
// has gone away.
func TestRelayEventsStopsWhenWriterGone(t *testing.T) {
	src := make(chan *redis.Message, 2)
	src <- &redis.Message{Payload: "a"}
	src <- &redis.Message{Payload: "b"}

	dst := make(chan []byte, 1)
	done := make(chan struct{})
	close(done)

	finished := make(chan struct{})
	go func() {
		relayEvents(dst, done, src)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		require.Fail(t, "relayEvents still blocked after writer exit")
	}
}
