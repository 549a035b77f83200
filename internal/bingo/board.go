// Package bingo holds the 5x5 board and the line rules used to arbitrate win claims.
package bingo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
)

const (
	// Side is the number of cells in a row or column.
	Side = 5
	// Cells is the number of cells on a board.
	Cells = Side * Side
)

// ErrShortCatalog is returned when a catalog cannot fill a board.
var ErrShortCatalog = errors.New("catalog has fewer items than board cells")

// Item identifies one cell value. Numeric records whether the client sent it
// as a JSON number so it can be echoed back unchanged.
type Item struct {
	ID      string
	Numeric bool
}

// NumberItem builds a numeric item.
func NumberItem(n int) Item {
	return Item{ID: strconv.Itoa(n), Numeric: true}
}

// TextItem builds a string item.
func TextItem(s string) Item {
	return Item{ID: s}
}

func (i Item) String() string {
	return i.ID
}

// Board is the canonical card of a room, laid out row-major.
type Board [Cells]Item

// IdentityBoard returns the board whose cell i holds the number i.
func IdentityBoard() Board {
	var b Board
	for i := range b {
		b[i] = NumberItem(i)
	}
	return b
}

// Deal picks Cells items from catalog in random order. An empty catalog deals
// the identity board.
func Deal(catalog []Item, rng *rand.Rand) (Board, error) {
	if len(catalog) == 0 {
		return IdentityBoard(), nil
	}
	if len(catalog) < Cells {
		return Board{}, fmt.Errorf("%w: have %d, need %d", ErrShortCatalog, len(catalog), Cells)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var b Board
	for i, idx := range rng.Perm(len(catalog))[:Cells] {
		b[i] = catalog[idx]
	}
	return b, nil
}

// Items returns the board cells as a slice.
func (b Board) Items() []Item {
	out := make([]Item, Cells)
	copy(out, b[:])
	return out
}
