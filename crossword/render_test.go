package crossword

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solvedTwoSlot(t *testing.T) (*Crossword, map[Variable]string) {
	t.Helper()
	cw, err := New([]string{
		"___",
		"##_",
		"##_",
	}, []string{"cat", "ten"})
	require.NoError(t, err)
	return cw, map[Variable]string{
		{Row: 0, Col: 0, Direction: Across, Length: 3}: "CAT",
		{Row: 0, Col: 2, Direction: Down, Length: 3}:   "TEN",
	}
}

func TestLetterGrid(t *testing.T) {
	cw, assignment := solvedTwoSlot(t)
	letters := cw.LetterGrid(assignment)
	assert.Equal(t, 'C', letters[0][0])
	assert.Equal(t, 'T', letters[0][2])
	assert.Equal(t, 'E', letters[1][2])
	assert.Equal(t, 'N', letters[2][2])
	assert.Equal(t, rune(0), letters[1][0])
}

func TestGridString(t *testing.T) {
	cw, assignment := solvedTwoSlot(t)
	assert.Equal(t, "CAT\n██E\n██N\n", cw.GridString(assignment))
	// Unassigned open cells render as spaces.
	assert.Equal(t, "   \n██ \n██ \n", cw.GridString(nil))
}

func TestSaveImage(t *testing.T) {
	cw, assignment := solvedTwoSlot(t)
	out := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, cw.SaveImage(assignment, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, cw.Width*cellSize, img.Bounds().Dx())
	assert.Equal(t, cw.Height*cellSize, img.Bounds().Dy())
}
