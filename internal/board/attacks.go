package board

// KnightOffsets lists the eight knight jumps as (file, rank) deltas, in the
// order candidates are generated during a search.
var KnightOffsets = [8][2]int{
	{-2, -1}, {-1, -2},
	{-2, 1}, {1, -2},
	{2, -1}, {-1, 2},
	{2, 1}, {1, 2},
}

// Pre-computed knight jump table
var knightAttacks [64]Bitboard

func init() {
	initKnightAttacks()
}

func initKnightAttacks() {
	for i := 0; i < 64; i++ {
		bb := Bitboard(1) << uint(i)

		// Knight moves: 2+1 or 1+2 in any direction
		attacks := Empty

		// Up 2, left/right 1
		attacks |= (bb << 17) & NotFileA // NNE
		attacks |= (bb << 15) & NotFileH // NNW
		attacks |= (bb >> 17) & NotFileH // SSW
		attacks |= (bb >> 15) & NotFileA // SSE

		// Up 1, left/right 2
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[i] = attacks
	}
}

// KnightAttacks returns the squares a knight on sq can jump to.
// Invalid squares have no jumps.
func KnightAttacks(sq Square) Bitboard {
	if !sq.IsValid() {
		return Empty
	}
	return knightAttacks[sq.Index()]
}

// IsKnightMove reports whether a knight can jump from a to b in one move.
func IsKnightMove(a, b Square) bool {
	return KnightAttacks(a).IsSet(b)
}
