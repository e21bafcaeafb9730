package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, theme game.Theme) game.Snapshot {
	t.Helper()
	gen, err := maze.NewGenerator(maze.DefaultSize, nil)
	require.NoError(t, err)
	g, err := game.New(gen, maze.Medium, theme)
	require.NoError(t, err)
	return g.Snapshot()
}

func TestImage(t *testing.T) {
	for _, theme := range []game.Theme{game.Calm, game.Joy, game.Focus} {
		t.Run(string(theme), func(t *testing.T) {
			img, err := Image(snapshot(t, theme), 16)
			require.NoError(t, err)
			assert.Equal(t, 160, img.Bounds().Dx())
			assert.Equal(t, 160, img.Bounds().Dy())
		})
	}
}

func TestImage_EmptySnapshot(t *testing.T) {
	_, err := Image(game.Snapshot{}, 16)
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestWritePNG(t *testing.T) {
	s := snapshot(t, game.Calm)

	t.Run("natural size", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, s, 0))
		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, maze.DefaultSize*DefaultBlockSize, img.Bounds().Dx())
	})

	t.Run("resized", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, s, 200))
		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 200, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("out of range", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, WritePNG(&buf, s, 10), ErrInvalidImageSize)
		assert.ErrorIs(t, WritePNG(&buf, s, 5000), ErrInvalidImageSize)
	})
}
