package history

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
}

func TestSyntheticReproducible(t *testing.T) {
	a := NewSyntheticProvider(1000, "up", 0.1, 42).WithClock(fixedNow)
	b := NewSyntheticProvider(1000, "up", 0.1, 42).WithClock(fixedNow)

	ctx := context.Background()
	got1, err := a.History(ctx, "revenue", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got2, err := b.History(ctx, "revenue", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(got1, got2) {
		t.Fatalf("same seed and metric must produce identical series")
	}
}

func TestSyntheticDistinctPerMetric(t *testing.T) {
	p := NewSyntheticProvider(1000, "flat", 0.2, 42).WithClock(fixedNow)

	ctx := context.Background()
	rev, _ := p.History(ctx, "revenue", 12)
	users, _ := p.History(ctx, "users", 12)

	same := true
	for i := range rev {
		if rev[i].Value != users[i].Value {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different metrics should not share the same series")
	}
}

func TestSyntheticMonthsAscending(t *testing.T) {
	p := NewSyntheticProvider(1000, "flat", 0, 1).WithClock(fixedNow)

	obs, err := p.History(context.Background(), "orders", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 6 {
		t.Fatalf("expected 6 observations, got %d", len(obs))
	}

	last := obs[len(obs)-1].Month
	if last.Year() != 2025 || last.Month() != time.June || last.Day() != 1 {
		t.Fatalf("series must end at the current month start, got %v", last)
	}
	for i := 1; i < len(obs); i++ {
		if !obs[i].Month.After(obs[i-1].Month) {
			t.Fatalf("months must be strictly ascending at index %d", i)
		}
	}
}

func TestSyntheticUpwardDrift(t *testing.T) {
	p := NewSyntheticProvider(1000, "up", 0, 7).WithClock(fixedNow)

	obs, _ := p.History(context.Background(), "revenue", 12)
	for i := 1; i < len(obs); i++ {
		if obs[i].Value <= obs[i-1].Value {
			t.Fatalf("zero-volatility upward series must grow at index %d", i)
		}
	}
}

func TestSyntheticNonPositiveMonths(t *testing.T) {
	p := NewSyntheticProvider(1000, "flat", 0.1, 7)

	obs, err := p.History(context.Background(), "revenue", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 0 {
		t.Fatalf("expected empty series, got %d", len(obs))
	}
}
