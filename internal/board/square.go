// Package board implements the chessboard coordinate model used by the knight route search.
package board

import (
	"errors"
	"fmt"
)

// ErrMalformedSquare is returned when square text is not a letter followed by a digit.
var ErrMalformedSquare = errors.New("malformed square")

// Square is a board coordinate. File 0-7 is column A-H, rank 0-7 is row 1-8.
// Coordinates are not range checked on construction; use IsValid before
// admitting a square to a search.
type Square struct {
	file int
	rank int
}

// NoSquare is returned alongside parse errors.
var NoSquare = Square{file: -1, rank: -1}

// Corner squares, handy in tests and defaults.
var (
	A1 = Square{0, 0}
	H1 = Square{7, 0}
	A8 = Square{0, 7}
	H8 = Square{7, 7}
)

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square{file: file, rank: rank}
}

// ParseSquare decodes board notation such as "E4" (lowercase is accepted).
// Only malformed text is an error: a letter past H or the digits 0 and 9
// decode to a square whose IsValid reports false.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}

	letter, digit := s[0], s[1]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' || digit < '0' || digit > '9' {
		return NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}

	return NewSquare(int(letter-'A'), int(digit-'1')), nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the file (column) of the square (0-7, where 0=A, 7=H).
func (sq Square) File() int {
	return sq.file
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return sq.rank
}

// IsValid returns true if both coordinates lie on the board.
func (sq Square) IsValid() bool {
	return sq.file == sq.file&7 && sq.rank == sq.rank&7
}

// Index returns the Little-Endian Rank-File index: A1=0, H1=7, A8=56, H8=63.
// Only meaningful for valid squares.
func (sq Square) Index() int {
	return sq.rank*8 + sq.file
}

// Offset returns the square displaced by df files and dr ranks.
func (sq Square) Offset(df, dr int) Square {
	return Square{file: sq.file + df, rank: sq.rank + dr}
}

// String returns the canonical notation ("A1".."H8"). It is the key used
// wherever squares are compared as text. Decoded but off-board squares keep
// their letter and digit; anything else prints as "-".
func (sq Square) String() string {
	if sq.file < 0 || sq.file > 25 || sq.rank < -1 || sq.rank > 8 {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'A'+sq.file, '1'+sq.rank)
}

// SquareAt returns the square for a Little-Endian Rank-File index.
func SquareAt(index int) Square {
	return Square{file: index & 7, rank: index >> 3}
}

// AllSquares returns the 64 board squares in index order.
func AllSquares() []Square {
	squares := make([]Square, 0, 64)
	for i := 0; i < 64; i++ {
		squares = append(squares, SquareAt(i))
	}
	return squares
}

// IsLight reports whether the square is a light square (A1 is dark).
func (sq Square) IsLight() bool {
	return (sq.file^sq.rank)&1 == 1
}
