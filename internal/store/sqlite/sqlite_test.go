package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/bingohub/internal/store"
)

func TestSaveAndListResults(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	seed := []store.Result{
		{Room: "lobby", Winner: "alice", WinningValues: []store.Value{{ID: "0", Numeric: true}, {ID: "1", Numeric: true}}, EndedAt: base},
		{Room: "other", Winner: "bob", WinningValues: []store.Value{{ID: "Straw Man"}}, EndedAt: base.Add(time.Minute)},
		{Room: "lobby", Winner: "carol", WinningValues: []store.Value{{ID: "Red Herring"}}, EndedAt: base.Add(2 * time.Minute)},
	}
	for i := range seed {
		if err := s.SaveResult(ctx, &seed[i]); err != nil {
			t.Fatalf("save result %d: %v", i, err)
		}
		if seed[i].ID == 0 {
			t.Fatalf("result %d has no id", i)
		}
	}

	tests := []struct {
		name    string
		filter  store.ResultFilter
		winners []string
	}{
		{name: "all rooms", filter: store.ResultFilter{}, winners: []string{"carol", "bob", "alice"}},
		{name: "one room", filter: store.ResultFilter{Room: "lobby"}, winners: []string{"carol", "alice"}},
		{name: "limit", filter: store.ResultFilter{Limit: 1}, winners: []string{"carol"}},
		{name: "unknown room", filter: store.ResultFilter{Room: "ghost"}, winners: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListResults(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.winners) {
				t.Fatalf("expected %d results, got %d", len(tt.winners), len(got))
			}
			for i, r := range got {
				if r.Winner != tt.winners[i] {
					t.Errorf("result %d: expected winner %s, got %s", i, tt.winners[i], r.Winner)
				}
			}
		})
	}

	all, _ := s.ListResults(ctx, store.ResultFilter{Room: "lobby"})
	alice := all[1]
	if len(alice.WinningValues) != 2 || !alice.WinningValues[0].Numeric || alice.WinningValues[1].ID != "1" {
		t.Fatalf("winning values not round-tripped: %+v", alice.WinningValues)
	}
	if !alice.EndedAt.Equal(base) {
		t.Fatalf("ended_at not round-tripped: %v", alice.EndedAt)
	}
}
