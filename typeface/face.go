// Package typeface wraps a parsed font at a fixed pixel size and exposes the
// measuring and drawing operations the layout and renderers need.
package typeface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/specimen/layout"
)

// Engine selects the font parser and glyph rasterizer.
type Engine int

const (
	// SFNT parses with golang.org/x/image/font/opentype.
	SFNT Engine = iota
	// FreeType parses with github.com/golang/freetype/truetype (TrueType outlines only).
	FreeType
)

func (e Engine) String() string {
	switch e {
	case FreeType:
		return "freetype"
	default:
		return "sfnt"
	}
}

// ParseEngine 解析引擎名称，空字符串返回 SFNT。
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sfnt", "opentype":
		return SFNT, nil
	case "freetype", "truetype":
		return FreeType, nil
	default:
		return SFNT, fmt.Errorf("未知字体引擎 %q", name)
	}
}

// Face is a font bound to a pixel size. Not safe for concurrent use.
type Face struct {
	name   string
	size   float64
	face   font.Face
	ascent fixed.Int26_6
}

var _ layout.Measurer = (*Face)(nil)

// Parse 解析字体数据并以 size（每 em 像素数）创建字体面。
// 使用 72 DPI 且不做 hinting，保证几何结果稳定。
func Parse(name string, data []byte, size float64, engine Engine) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %g", size)
	}
	var (
		face font.Face
		err  error
	)
	switch engine {
	case FreeType:
		var f *truetype.Font
		f, err = truetype.Parse(data)
		if err == nil {
			face = truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
		}
	default:
		var f *opentype.Font
		f, err = opentype.Parse(data)
		if err == nil {
			face, err = opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	return &Face{
		name:   name,
		size:   size,
		face:   face,
		ascent: face.Metrics().Ascent,
	}, nil
}

func (f *Face) Name() string { return f.name }

// Size 返回每 em 像素数。
func (f *Face) Size() float64 { return f.size }

// Ascent 返回上升线到基线的像素距离。
func (f *Face) Ascent() float64 { return fixedToFloat(f.ascent) }

// Advance implements layout.Measurer.
func (f *Face) Advance(s string) float64 {
	return fixedToFloat(font.MeasureString(f.face, s))
}

// Bounds implements layout.Measurer. 返回以上升线左端为原点的墨迹包围盒，
// 向外取整到整像素。
func (f *Face) Bounds(s string) layout.Rect {
	if s == "" {
		return layout.Rect{}
	}
	b, _ := font.BoundString(f.face, s)
	if b.Empty() {
		return layout.Rect{}
	}
	return layout.Rect{
		Left:   b.Min.X.Floor(),
		Top:    (b.Min.Y + f.ascent).Floor(),
		Right:  b.Max.X.Ceil(),
		Bottom: (b.Max.Y + f.ascent).Ceil(),
	}
}

// DrawString 以 (x, y) 为绘制起点（上升线左端）绘制文本。
func (f *Face) DrawString(dst draw.Image, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.ascent},
	}
	d.DrawString(s)
}

// Close releases the underlying face.
func (f *Face) Close() error { return f.face.Close() }

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
