// Package chart draws the PNG bar charts on the admin dashboard.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	Width  = 800
	Height = 400

	marginTop    = 60
	marginBottom = 60
	marginLeft   = 70
	marginRight  = 30
	yTicks       = 5
)

var (
	bgColor    = color.RGBA{255, 255, 255, 255}
	axisColor  = color.RGBA{60, 60, 60, 255}
	gridColor  = color.RGBA{225, 225, 225, 255}
	textColor  = color.RGBA{30, 30, 30, 255}
	defaultBar = color.RGBA{54, 162, 235, 255}
)

type Bar struct {
	Label string
	Value int
	Color color.Color
}

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
)

func loadFonts() {
	fontsOnce.Do(func() {
		regular, _ = opentype.Parse(goregular.TTF)
		bold, _ = opentype.Parse(gobold.TTF)
	})
}

func setFont(dc *gg.Context, f *opentype.Font, size float64) {
	if f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// BarChart renders bars left to right with a zero-based y axis labelled yLabel.
func BarChart(title, yLabel string, bars []Bar) ([]byte, error) {
	loadFonts()

	dc := gg.NewContext(Width, Height)
	dc.SetColor(bgColor)
	dc.Clear()

	setFont(dc, bold, 20)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, Width/2, marginTop/2, 0.5, 0.5)

	plotW := float64(Width - marginLeft - marginRight)
	plotH := float64(Height - marginTop - marginBottom)
	x0 := float64(marginLeft)
	y0 := float64(Height - marginBottom)

	maxValue := 0
	for _, b := range bars {
		if b.Value < 0 {
			return nil, fmt.Errorf("chart: negative value for %q", b.Label)
		}
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}
	top := niceCeil(maxValue)

	setFont(dc, regular, 12)
	for i := 0; i <= yTicks; i++ {
		v := top * i / yTicks
		y := y0 - plotH*float64(v)/float64(top)

		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x0, y, x0+plotW, y)
		dc.Stroke()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(strconv.Itoa(v), x0-8, y, 1, 0.5)
	}

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, y0-plotH/2)
	dc.DrawStringAnchored(yLabel, 18, y0-plotH/2, 0.5, 0.5)
	dc.Pop()

	if len(bars) > 0 {
		slot := plotW / float64(len(bars))
		barW := math.Min(slot*0.6, 120)

		for i, b := range bars {
			cx := x0 + slot*float64(i) + slot/2
			h := plotH * float64(b.Value) / float64(top)

			c := b.Color
			if c == nil {
				c = defaultBar
			}
			dc.SetColor(c)
			dc.DrawRectangle(cx-barW/2, y0-h, barW, h)
			dc.Fill()

			dc.SetColor(textColor)
			dc.DrawStringAnchored(strconv.Itoa(b.Value), cx, y0-h-10, 0.5, 0.5)
			dc.DrawStringAnchored(b.Label, cx, y0+18, 0.5, 0.5)
		}
	}

	dc.SetColor(axisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(x0, y0, x0+plotW, y0)
	dc.DrawLine(x0, y0, x0, y0-plotH)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// niceCeil rounds up to a multiple of yTicks so tick labels stay integers.
func niceCeil(v int) int {
	if v <= 0 {
		return yTicks
	}
	return ((v + yTicks - 1) / yTicks) * yTicks
}

// Palette colours shared by the status and category charts.
var (
	Green  = color.RGBA{75, 192, 192, 255}
	Yellow = color.RGBA{255, 206, 86, 255}
	Red    = color.RGBA{255, 99, 132, 255}
	Grey   = color.RGBA{160, 160, 160, 255}
	Blue   = defaultBar
	Purple = color.RGBA{153, 102, 255, 255}
	Orange = color.RGBA{255, 159, 64, 255}
)
