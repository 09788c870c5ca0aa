package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	events []Event
	err    error
}

func (s *stubSink) Publish(ctx context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func (s *stubSink) Close() error { return s.err }

func TestMulti_FansOut(t *testing.T) {
	t.Parallel()

	a, b := &stubSink{}, &stubSink{}
	m := Multi{a, b}

	e := Event{Type: TypeLoginSucceeded, Username: "user", At: time.Now()}
	require.NoError(t, m.Publish(context.Background(), e))

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, TypeLoginSucceeded, b.events[0].Type)
}

func TestMulti_ReturnsFirstErrorButPublishesAll(t *testing.T) {
	t.Parallel()

	failing := &stubSink{err: errors.New("broker down")}
	ok := &stubSink{}
	m := Multi{failing, ok}

	err := m.Publish(context.Background(), Event{Type: TypeLogout})
	assert.Error(t, err)
	assert.Len(t, ok.events, 1)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	var s Sink = Noop{}
	assert.NoError(t, s.Publish(context.Background(), Event{}))
	assert.NoError(t, s.Close())
}
