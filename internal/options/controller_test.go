package options

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestController_SubmitWhileSubmitting(t *testing.T) {
	set := mustParse(t, `{"a": {"type": "string"}}`)
	ctrl := NewController(set, Init(set))

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Submit(context.Background(), func(ctx context.Context, _ Set, _ State) error {
			calls.Add(1)
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	if !ctrl.Submitting() {
		t.Error("Submitting() = false during submission")
	}
	if got := ctrl.Form().SubmitLabel; got != SubmitBusy {
		t.Errorf("SubmitLabel = %q, want %q", got, SubmitBusy)
	}

	err := ctrl.Submit(context.Background(), func(context.Context, Set, State) error {
		calls.Add(1)
		return nil
	})
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second Submit() error = %v, want ErrSubmitInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first Submit() error = %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
	if ctrl.Submitting() {
		t.Error("Submitting() = true after completion")
	}
	if got := ctrl.Form().SubmitLabel; got != SubmitIdle {
		t.Errorf("SubmitLabel = %q, want %q", got, SubmitIdle)
	}
}

func TestController_SubmitClearsFlagOnError(t *testing.T) {
	set := mustParse(t, `{}`)
	ctrl := NewController(set, Init(set))
	boom := errors.New("boom")

	if err := ctrl.Submit(context.Background(), func(context.Context, Set, State) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v, want boom", err)
	}
	if ctrl.Submitting() {
		t.Error("flag left set after failure")
	}
	if err := ctrl.Submit(context.Background(), func(context.Context, Set, State) error { return nil }); err != nil {
		t.Errorf("retry Submit() error = %v", err)
	}
}

func TestController_SubmitSeesLatestSnapshot(t *testing.T) {
	set := mustParse(t, `{"a": {"type": "string"}}`)
	ctrl := NewController(set, Init(set))
	ctrl.Change("a", "latest")

	var seen any
	_ = ctrl.Submit(context.Background(), func(_ context.Context, _ Set, s State) error {
		seen, _ = s.Get("a")
		return nil
	})
	if seen != "latest" {
		t.Errorf("submitted a = %v, want latest", seen)
	}
}

func TestController_Observers(t *testing.T) {
	set := mustParse(t, `{"a": {"type": "string"}}`)
	ctrl := NewController(set, Init(set))

	var mu sync.Mutex
	var changes []string
	cancel := ctrl.Subscribe(func(before, after State) {
		mu.Lock()
		defer mu.Unlock()
		b, _ := before.Get("a")
		a, _ := after.Get("a")
		changes = append(changes, Display(b)+"->"+Display(a))
	})

	ctrl.Change("a", "one")
	ctrl.Change("a", "two")
	cancel()
	ctrl.Change("a", "three")

	want := []string{"->one", "one->two"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}

func TestController_Close(t *testing.T) {
	set := mustParse(t, `{"a": {"type": "string"}}`)
	ctrl := NewController(set, Init(set))

	var notified bool
	ctrl.Subscribe(func(State, State) { notified = true })
	ctrl.Close()

	if !ctrl.Closed() {
		t.Error("Closed() = false")
	}
	ctrl.Change("a", "late")
	if notified {
		t.Error("observer notified after Close")
	}
	err := ctrl.Submit(context.Background(), func(context.Context, Set, State) error {
		t.Error("handler ran after Close")
		return nil
	})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() error = %v, want ErrClosed", err)
	}
}
