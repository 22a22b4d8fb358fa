package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NewChannelSink(1))
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}
	// Every method must be nil-safe.
	d.Emit(context.Background(), Event{Operation: "login"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero dropped on nil dispatcher")
	}
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	for _, op := range []string{"login", "logout", "rehydrate"} {
		d.Emit(context.Background(), Event{Operation: op})
	}

	for _, want := range []string{"login", "logout", "rehydrate"} {
		select {
		case ev := <-sink.Events():
			if ev.Operation != want {
				t.Fatalf("expected %q, got %q", want, ev.Operation)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{Operation: "login", Success: true})
	}
	d.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 drained events, got %d: %q", len(lines), buf.String())
	}
	var ev Event
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("unmarshal drained event: %v", err)
	}
	if ev.Operation != "login" || !ev.Success {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	// A sink that never consumes: the first event occupies the goroutine's
	// hand-off, the buffer fills, the rest must be dropped, not block.
	blocked := make(chan struct{})
	sink := sinkFunc(func(context.Context, Event) { <-blocked })
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		d.Emit(context.Background(), Event{Operation: "login"})
		select {
		case <-deadline:
			t.Fatal("expected events dropped once the buffer filled")
		default:
		}
	}

	close(blocked)
	d.Close()
}

func TestEmitAfterCloseIsIgnored(t *testing.T) {
	sink := NewChannelSink(4)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, sink)
	d.Close()

	d.Emit(context.Background(), Event{Operation: "login"})
	select {
	case ev := <-sink.Events():
		t.Fatalf("unexpected event after close: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

type sinkFunc func(ctx context.Context, event Event)

func (f sinkFunc) Emit(ctx context.Context, event Event) { f(ctx, event) }
