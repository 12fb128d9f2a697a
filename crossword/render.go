package crossword

import (
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cellSize   = 40
	cellBorder = 2
)

// LetterGrid lays out an assignment on the grid. Cells not covered by any
// assigned slot hold zero.
func (cw *Crossword) LetterGrid(assignment map[Variable]string) [][]rune {
	letters := make([][]rune, cw.Height)
	for i := range letters {
		letters[i] = make([]rune, cw.Width)
	}
	for v, word := range assignment {
		for k, r := range word {
			row, col := v.Cell(k)
			letters[row][col] = r
		}
	}
	return letters
}

// GridString renders an assignment for the terminal: one rune per cell,
// `█` for blocked cells, space for open cells with no letter.
func (cw *Crossword) GridString(assignment map[Variable]string) string {
	letters := cw.LetterGrid(assignment)
	var sb strings.Builder
	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			switch {
			case !cw.structure[i][j]:
				sb.WriteRune('█')
			case letters[i][j] != 0:
				sb.WriteRune(letters[i][j])
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// SaveImage writes the assignment as a PNG: black canvas, white open
// cells, centered black letters.
func (cw *Crossword) SaveImage(assignment map[Variable]string, filename string) error {
	letters := cw.LetterGrid(assignment)
	img := image.NewRGBA(image.Rect(0, 0, cw.Width*cellSize, cw.Height*cellSize))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}
	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			if !cw.structure[i][j] {
				continue
			}
			cell := image.Rect(
				j*cellSize+cellBorder, i*cellSize+cellBorder,
				(j+1)*cellSize-cellBorder, (i+1)*cellSize-cellBorder)
			draw.Draw(img, cell, image.White, image.Point{}, draw.Src)
			if letters[i][j] == 0 {
				continue
			}
			glyph := string(letters[i][j])
			w := drawer.MeasureString(glyph)
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(j*cellSize+cellSize/2) - w/2,
				Y: fixed.I(i*cellSize + (cellSize+face.Ascent)/2),
			}
			drawer.DrawString(glyph)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
