package bingo

// Lines lists the cell indexes of the 12 winning lines: 5 rows, 5 columns and
// the two diagonals.
var Lines = [12][Side]int{
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
	{15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24},
	{0, 5, 10, 15, 20},
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	{0, 6, 12, 18, 24},
	{4, 8, 12, 16, 20},
}

// MatchLine reports which of Lines the claimed items cover on board b.
// Order of the claim is irrelevant but it must name exactly Side distinct items.
func MatchLine(b Board, claim []Item) (int, bool) {
	if len(claim) != Side {
		return -1, false
	}
	claimed := make(map[string]struct{}, Side)
	for _, it := range claim {
		claimed[it.ID] = struct{}{}
	}
	if len(claimed) != Side {
		return -1, false
	}

	for li, line := range Lines {
		hit := true
		for _, idx := range line {
			if _, ok := claimed[b[idx].ID]; !ok {
				hit = false
				break
			}
		}
		if hit {
			return li, true
		}
	}
	return -1, false
}

// IsWinningLine reports whether claim is one of the 12 lines of board b.
func IsWinningLine(b Board, claim []Item) bool {
	_, ok := MatchLine(b, claim)
	return ok
}
