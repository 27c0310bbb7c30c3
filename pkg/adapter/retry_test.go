package adapter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// flakyAdapter fails a fixed number of times before succeeding.
type flakyAdapter struct {
	failures int
	calls    int
}

func (a *flakyAdapter) Name() string         { return "flaky" }
func (a *flakyAdapter) CostPerCall() float64 { return 0 }

func (a *flakyAdapter) Complete(_ context.Context, _, _ string) (string, error) {
	a.calls++
	if a.calls <= a.failures {
		return "", errors.New("upstream hiccup")
	}
	return "ok", nil
}

func withFakeSleep(t *testing.T, a Adapter) *[]time.Duration {
	t.Helper()
	ra, ok := a.(*retryAdapter)
	if !ok {
		t.Fatalf("WithRetry returned %T, want *retryAdapter", a)
	}
	var slept []time.Duration
	ra.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return &slept
}

func TestRetryDelaySequence(t *testing.T) {
	p := DefaultRetryPolicy()

	want := []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	for attempt, wantDelay := range want {
		if got := p.delay(attempt); got != wantDelay {
			t.Errorf("delay(%d) = %v, want %v", attempt, got, wantDelay)
		}
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	inner := &flakyAdapter{failures: 2}
	a := WithRetry(inner, DefaultRetryPolicy())
	slept := withFakeSleep(t, a)

	out, err := a.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if out != "ok" {
		t.Errorf("Complete() = %q, want %q", out, "ok")
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
	if want := []time.Duration{4 * time.Second, 8 * time.Second}; len(*slept) != len(want) {
		t.Errorf("slept %v, want %v", *slept, want)
	} else {
		for i := range want {
			if (*slept)[i] != want[i] {
				t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], want[i])
			}
		}
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	inner := &flakyAdapter{failures: 10}
	a := WithRetry(inner, DefaultRetryPolicy())
	slept := withFakeSleep(t, a)

	_, err := a.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Complete() = nil error, want failure after exhausting retries")
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}
}

func TestRetryStopsOnCanceledContext(t *testing.T) {
	inner := &flakyAdapter{failures: 10}
	a := WithRetry(inner, DefaultRetryPolicy())
	withFakeSleep(t, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Complete(ctx, "sys", "user")
	if err == nil {
		t.Fatal("Complete() = nil error, want failure")
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (no retries after cancellation)", inner.calls)
	}
}

func TestRetryPassesThroughMetadata(t *testing.T) {
	inner := &flakyAdapter{}
	a := WithRetry(inner, DefaultRetryPolicy())

	if a.Name() != "flaky" {
		t.Errorf("Name() = %q, want %q", a.Name(), "flaky")
	}
	if a.CostPerCall() != 0 {
		t.Errorf("CostPerCall() = %v, want 0", a.CostPerCall())
	}
}

func TestMockAdapterScriptedResponses(t *testing.T) {
	m := NewMockAdapterWithResponses(map[string]string{
		"ping": "pong",
	}, "")

	out, err := m.Complete(context.Background(), "sys", "ping")
	if err != nil {
		t.Fatal(err)
	}
	if out != "pong" {
		t.Errorf("scripted response = %q, want %q", out, "pong")
	}

	out, err = m.Complete(context.Background(), "sys", "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("default response is empty")
	}
	if m.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", m.CallCount())
	}
}

func TestMockAdapterConcurrentCalls(t *testing.T) {
	m := NewMockAdapter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := m.Complete(context.Background(), "sys", "user"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if m.CallCount() != 800 {
		t.Errorf("CallCount() = %d, want 800", m.CallCount())
	}
}

func TestMockAdapterErr(t *testing.T) {
	m := NewMockAdapter()
	m.Err = errors.New("boom")

	if _, err := m.Complete(context.Background(), "sys", "user"); err == nil {
		t.Error("Complete() = nil error, want failure")
	}
}
