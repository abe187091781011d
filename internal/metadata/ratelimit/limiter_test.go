package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitPacesSameSource(t *testing.T) {
	l := New(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := l.Wait(ctx, "tmdb"); err != nil {
		t.Fatal(err)
	}
	if err := l.Wait(ctx, "tmdb"); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("two queries took %v, want at least the 50ms interval", elapsed)
	}
}

func TestWaitSourcesIndependent(t *testing.T) {
	l := New(200 * time.Millisecond)
	ctx := context.Background()

	if err := l.Wait(ctx, "tmdb"); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "omdb"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different source waited %v behind tmdb's slot", elapsed)
	}
}

func TestWaitZeroIntervalDisabled(t *testing.T) {
	l := New(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := l.Wait(ctx, "tmdb"); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled limiter took %v for 100 calls", elapsed)
	}
}

func TestWaitHonorsContextCancel(t *testing.T) {
	l := New(time.Hour)
	ctx := context.Background()

	if err := l.Wait(ctx, "tmdb"); err != nil {
		t.Fatal(err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := l.Wait(cancelled, "tmdb"); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
