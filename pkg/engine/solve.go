package engine

// Value is the outcome of a position for the player about to move.
type Value int8

const (
	PrevWins Value = -1 // the player who just moved has won or will win
	Unknown  Value = 0  // the depth budget ran out first
	NextWins Value = 1  // the player to move can force a win
)

// InfiniteDepth is a depth budget large enough for an exact solve.
const InfiniteDepth = MaxPlies

// String returns the display name of the value.
func (v Value) String() string {
	switch v {
	case PrevWins:
		return "PrevWins"
	case NextWins:
		return "NextWins"
	case Unknown:
		return "Unknown"
	}
	return "Value(?)"
}

// Negate flips the point of view by one ply. Unknown stays Unknown.
func (v Value) Negate() Value {
	return -v
}

// Solve returns the game value of a position searching at most depth plies.
// It is a negamax search memoised in cache; a nil cache disables
// memoisation. Cached values are returned whatever the depth, which is
// sound because the cache never holds Unknown.
func Solve(b Board, depth int, cache *Cache) Value {
	mustCheck(b)
	return solve(b, depth, cache)
}

func solve(b Board, depth int, cache *Cache) Value {
	key := Fingerprint(b)
	if v, ok := cache.Lookup(key); ok {
		return v
	}

	var value Value
	moves := generateMoves(b)
	switch {
	case len(moves) == 0:
		// The previous player completed a line.
		value = PrevWins
	case depth <= 0:
		value = Unknown
	default:
		value = PrevWins
		for _, m := range moves {
			if v := solve(m, depth-1, cache).Negate(); v > value {
				value = v
			}
			if value == NextWins {
				break
			}
		}
	}

	cache.Add(key, value)
	return value
}
