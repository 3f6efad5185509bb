package services

import (
	"context"
	"testing"
	"time"
)

func TestRunSessionSweeperRemovesExpired(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "sweeper@example.com")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := f.registry.Create(ctx, user.ID, "", 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.registry.now = func() time.Time { return time.Now().UTC().AddDate(0, 0, 2) }

	done := make(chan error, 1)
	go func() { done <- RunSessionSweeper(ctx, f.registry, 5*time.Millisecond) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		sessions, _ := f.store.Sessions().ListActive(ctx, user.ID, time.Now())
		if len(sessions) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("sweeper did not remove the expired session")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("sweeper returned %v", err)
	}
}
