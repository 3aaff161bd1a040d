package avatar

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// Glyphs are rendered on a small tile and upscaled to the requested size
	tileSize = 32

	MinSize     = 32
	MaxSize     = 512
	DefaultSize = 128
)

// Palette of background colors. The color is picked deterministically from
// the name so the same user always gets the same avatar.
var palette = []color.RGBA{
	{0x00, 0x7A, 0xFF, 0xFF}, // blue
	{0xFF, 0x2D, 0x55, 0xFF}, // pink
	{0xFF, 0x95, 0x00, 0xFF}, // orange
	{0x34, 0xC7, 0x59, 0xFF}, // green
	{0x5A, 0x56, 0xD6, 0xFF}, // indigo
	{0xAF, 0x52, 0xDE, 0xFF}, // purple
	{0x00, 0xC7, 0xBE, 0xFF}, // teal
}

// Initials extracts up to two uppercase initials from a display name.
// Falls back to "?" when the name has no letters or digits.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// Render produces a PNG avatar with the name's initials centered on a
// deterministic background color.
func Render(name string, size int) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("avatar size must be between %d and %d", MinSize, MaxSize)
	}

	initials := Initials(name)
	bg := backgroundFor(name)

	// Draw initials on a small tile first; upscaling keeps the basicfont
	// glyphs readable at any requested size.
	tile := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	textWidth := len(initials) * face.Advance
	drawer := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.P(
			(tileSize-textWidth)/2,
			(tileSize+face.Ascent-face.Descent)/2,
		),
	}
	drawer.DrawString(initials)

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), tile, tile.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

func backgroundFor(name string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return palette[h.Sum32()%uint32(len(palette))]
}
