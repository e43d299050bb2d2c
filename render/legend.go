package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/setanarut/beadgrid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrNoMaterials is returned by Legend for an empty materials list.
var ErrNoMaterials = errors.New("no materials to draw")

const legendPad = 6

// LegendLine is the text drawn beside a swatch.
func LegendLine(m beadgrid.BeadColor, total int) string {
	return fmt.Sprintf("%-6s %s  x%-5d %5.1f%%", m.ID, m.Hex.Hex(), m.Count, 100*beadgrid.Share(m.Count, total))
}

// Legend draws one swatch row per material, in list order.
func Legend(materials []beadgrid.BeadColor, tileSize int) (*image.NRGBA, error) {
	if len(materials) == 0 {
		return nil, ErrNoMaterials
	}
	if tileSize <= 0 {
		tileSize = 24
	}
	total := beadgrid.TotalBeads(materials)
	metrics := labelFace.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Ceil()
	rowH := max(tileSize, textH) + legendPad

	d := &font.Drawer{Face: labelFace, Src: image.NewUniform(color.Black)}
	textW := 0
	for _, m := range materials {
		textW = max(textW, d.MeasureString(LegendLine(m, total)).Ceil())
	}

	w := legendPad + tileSize + legendPad + textW + legendPad
	h := legendPad + rowH*len(materials)
	dst := imaging.New(w, h, color.White)
	d.Dst = dst

	for i, m := range materials {
		y0 := legendPad + i*rowH
		tile := image.Rect(legendPad, y0, legendPad+tileSize, y0+tileSize)
		draw.Draw(dst, tile, image.NewUniform(m.Hex), image.Point{}, draw.Src)
		outline(dst, tile, color.NRGBA{A: 96})

		ty := y0 + (tileSize-textH)/2 + metrics.Ascent.Ceil()
		d.Dot = fixed.P(tile.Max.X+legendPad, ty)
		d.DrawString(LegendLine(m, total))
	}
	return dst, nil
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	for _, e := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	} {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}
