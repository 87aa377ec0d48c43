package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Rendering svg").start()
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !strings.Contains(out.String(), "Rendering svg") {
		t.Errorf("spinner output %q should contain the message", out.String())
	}
	if s.interrupted() {
		t.Error("stop should not count as an interruption")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "first").start()
	s.update("second %d", 2)
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !strings.Contains(out.String(), "second 2") {
		t.Errorf("spinner output %q should contain the updated message", out.String())
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "waiting").start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.interrupted() {
		t.Error("spinner should report interruption after context cancellation")
	}
	s.stop()
}

func TestSpinnerContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, &syncBuffer{}, "waiting").start()
	time.Sleep(150 * time.Millisecond)

	if !s.interrupted() {
		t.Error("spinner should report interruption after timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "stopping").start()
	s.stop()
	s.stop()
	s.stopWithSuccess("done")
	s.stopWithError("failed")
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "idle")
	done := make(chan struct{})
	go func() {
		s.stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop blocked on a spinner that never started")
	}
}
