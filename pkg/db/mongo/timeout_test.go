package mongo

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout_AppliesTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("deadline too far: %s", time.Until(deadline))
	}
}

func TestWithTimeout_KeepsEarlierDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelParent()
	want, _ := parent.Deadline()

	ctx, cancel := WithTimeout(parent, time.Minute)
	defer cancel()

	got, _ := ctx.Deadline()
	if !got.Equal(want) {
		t.Errorf("deadline = %v, want %v", got, want)
	}
}

func TestNoopTransactionManager(t *testing.T) {
	called := false
	err := NoopTransactionManager{}.ExecuteTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		if InTransaction(ctx) {
			t.Errorf("noop manager must not create a session")
		}
		return nil
	})
	if err != nil || !called {
		t.Errorf("expected fn to run without error, got %v", err)
	}
}

func TestObjectID(t *testing.T) {
	if !IsObjectID("507f1f77bcf86cd799439011") {
		t.Errorf("valid hex id rejected")
	}
	if IsObjectID("not-an-id") {
		t.Errorf("invalid id accepted")
	}
}
