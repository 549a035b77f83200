package main

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/bingohub/internal/proto"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
		event string
		want  string
	}{
		{"message", "hello there", proto.EventMessage, `{"room":"lobby","message":"hello there"}`},
		{"win", "/win 0, 1,2,3,4", proto.EventWinGame, `{"username":"ann","winningValues":[0,1,2,3,4],"room":"lobby"}`},
		{"win text", "/win a,7", proto.EventWinGame, `{"username":"ann","winningValues":["a",7],"room":"lobby"}`},
		{"leave", "/leave", proto.EventLeaveRoom, `{"room":"lobby","username":"ann"}`},
		{"create", "/create vip private", proto.EventCreateRoom, `{"room":"vip","type":"private"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, data := parseInput(tc.input, "ann", "lobby")
			if event != tc.event {
				t.Fatalf("expected event %q, got %q", tc.event, event)
			}
			raw, err := json.Marshal(data)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(raw) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, raw)
			}
		})
	}
}
