// Package render draws game snapshots as images.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	DefaultBlockSize = 32

	minImageSize = 64
	maxImageSize = 1024
)

var (
	ErrEmptySnapshot    = errors.New("snapshot has no maze")
	ErrInvalidImageSize = errors.New("invalid image size")
)

// palette is a vertical gradient plus the wall colour for one theme.
type palette struct {
	top, bottom [3]float64
	wall        [3]float64
}

var palettes = map[game.Theme]palette{
	game.Calm:  {top: rgb(0xef, 0xf6, 0xff), bottom: rgb(0xfa, 0xf5, 0xff), wall: rgb(0x4c, 0x1d, 0x95)},
	game.Joy:   {top: rgb(0xfe, 0xfc, 0xe8), bottom: rgb(0xff, 0xf7, 0xed), wall: rgb(0x9a, 0x34, 0x12)},
	game.Focus: {top: rgb(0xf0, 0xfd, 0xf4), bottom: rgb(0xf0, 0xfd, 0xfa), wall: rgb(0x13, 0x4e, 0x4a)},
}

var itemColours = map[maze.CollectibleType][3]float64{
	maze.Star:    rgb(0xfa, 0xcc, 0x15),
	maze.Crystal: rgb(0x38, 0xbd, 0xf8),
	maze.Heart:   rgb(0xf4, 0x3f, 0x5e),
}

func rgb(r, g, b uint8) [3]float64 {
	return [3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

func colour(c [3]float64) color.Color {
	return color.RGBA{R: uint8(c[0] * 255), G: uint8(c[1] * 255), B: uint8(c[2] * 255), A: 0xff}
}

// Image draws s with square cells of blockSize pixels.
func Image(s game.Snapshot, blockSize int) (image.Image, error) {
	if s.Maze == nil || s.Maze.Size == 0 {
		return nil, ErrEmptySnapshot
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	p, ok := palettes[s.State.Theme]
	if !ok {
		p = palettes[game.Calm]
	}

	side := s.Maze.Size * blockSize
	dc := gg.NewContext(side, side)

	grad := gg.NewLinearGradient(0, 0, 0, float64(side))
	grad.AddColorStop(0, colour(p.top))
	grad.AddColorStop(1, colour(p.bottom))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(side), float64(side))
	dc.Fill()

	bs := float64(blockSize)
	dc.SetRGB(p.wall[0], p.wall[1], p.wall[2])
	for y, row := range s.Maze.Grid {
		for x, cell := range row {
			if cell == maze.Wall {
				dc.DrawRectangle(float64(x)*bs, float64(y)*bs, bs, bs)
			}
		}
	}
	dc.Fill()

	renderGrid(dc, side, blockSize)

	goal := s.Maze.Goal()
	dc.SetRGBA(0.13, 0.77, 0.37, 0.6)
	dc.DrawRectangle(float64(goal.X)*bs+bs*0.1, float64(goal.Y)*bs+bs*0.1, bs*0.8, bs*0.8)
	dc.Fill()

	for _, c := range s.Collectibles {
		if c.Collected {
			continue
		}
		col := itemColours[c.Type]
		dc.SetRGB(col[0], col[1], col[2])
		dc.DrawCircle(float64(c.X)*bs+bs/2, float64(c.Y)*bs+bs/2, bs*0.25)
		dc.Fill()
	}

	dc.SetRGB(0.55, 0.36, 0.96)
	dc.DrawCircle(float64(s.Player.X)*bs+bs/2, float64(s.Player.Y)*bs+bs/2, bs*0.35)
	dc.Fill()

	return dc.Image(), nil
}

// renderGrid draws faint cell borders.
func renderGrid(dc *gg.Context, side, blockSize int) {
	dc.SetRGBA(0, 0, 0, 0.08)
	dc.SetLineWidth(1)
	for v := 0; v <= side; v += blockSize {
		dc.DrawLine(float64(v), 0, float64(v), float64(side))
		dc.DrawLine(0, float64(v), float64(side), float64(v))
	}
	dc.Stroke()
}

// WritePNG encodes s as a PNG of roughly size×size pixels. A size of 0 keeps
// the natural DefaultBlockSize scale.
func WritePNG(w io.Writer, s game.Snapshot, size int) error {
	if size != 0 && (size < minImageSize || size > maxImageSize) {
		return ErrInvalidImageSize
	}

	img, err := Image(s, DefaultBlockSize)
	if err != nil {
		return err
	}

	if size != 0 && size != img.Bounds().Dx() {
		img = imaging.Resize(img, size, size, imaging.NearestNeighbor)
	}
	return png.Encode(w, img)
}
