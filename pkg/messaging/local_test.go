package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBroker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewLocalBroker()
	defer b.Close()

	ch, err := b.Subscribe(ctx, "clinic.intake")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "clinic.intake", map[string]string{"type": "intake.submitted"}))
	require.NoError(t, b.Publish(ctx, "other", "ignored"))

	select {
	case msg := <-ch:
		assert.JSONEq(t, `{"type":"intake.submitted"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestBrokerAdapter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapter := NewBrokerAdapter(NewLocalBroker())
	defer adapter.Close()

	got := make(chan []byte, 1)
	require.NoError(t, adapter.Subscribe(ctx, "t", func(b []byte) error {
		got <- b
		return nil
	}))
	require.NoError(t, adapter.Publish(ctx, "t", []byte(`{"a":1}`)))

	select {
	case msg := <-got:
		assert.JSONEq(t, `{"a":1}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
}

func TestLocalBrokerUnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewLocalBroker()

	ch, err := b.Subscribe(ctx, "c")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
