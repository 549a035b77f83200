package core

import (
	"time"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

// Result is an accepted win, handed to the results journal.
type Result struct {
	Room          string
	Winner        string
	WinningValues []bingo.Item
	EndedAt       time.Time
}

// ResultSink receives accepted wins. Record must not block the hub.
type ResultSink interface {
	Record(Result)
}
