package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "staywise/internal/adapters/redis"
	"staywise/internal/domain"
)

func TestCache_RoundTripAndMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var got []domain.Hotel
	ok, err := c.Get(ctx, "recs:u1", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := []domain.Hotel{{ID: "h1", Name: "The Grand Resort", AverageRating: 4.8}}
	if err := c.Set(ctx, "recs:u1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "recs:u1", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != "h1" || got[0].AverageRating != 4.8 {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	if err := c.Del(ctx, "recs:u1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "recs:u1", &got)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
