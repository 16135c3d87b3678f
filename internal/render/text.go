// Package render draws knight search layers on a chessboard, either as
// plain text or as an image.
package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/hailam/knightroutes/internal/board"
)

// Text board cells
const (
	lightCell  = "#"
	darkCell   = "_"
	targetCell = "X"
)

// TextBoard builds the text cells for the layers: every square of layer k
// shows the digit k, the target shows X until a layer covers it, and the
// remaining squares show their colour. Row 0 is rank 1.
func TextBoard(layers []board.Bitboard, target board.Square) [8][8]string {
	var cells [8][8]string
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if board.NewSquare(file, rank).IsLight() {
				cells[rank][file] = lightCell
			} else {
				cells[rank][file] = darkCell
			}
		}
	}

	if target.IsValid() {
		cells[target.Rank()][target.File()] = targetCell
	}

	for depth, layer := range layers {
		layer.ForEach(func(sq board.Square) {
			cells[sq.Rank()][sq.File()] = strconv.Itoa(depth)
		})
	}
	return cells
}

// DrawText writes the board as text: a file header, then one line per rank
// from 1 to 8.
func DrawText(w io.Writer, layers []board.Bitboard, target board.Square) error {
	cells := TextBoard(layers, target)

	bw := bufio.NewWriter(w)
	bw.WriteString("  A B C D E F G H\n")
	for rank := 0; rank < 8; rank++ {
		bw.WriteString(strconv.Itoa(rank + 1))
		for file := 0; file < 8; file++ {
			bw.WriteByte(' ')
			bw.WriteString(cells[rank][file])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
