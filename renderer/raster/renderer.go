package rasterrenderer

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
	"github.com/ByLCY/specimen/typeface"
)

// Backend draws text with golang.org/x/image/font onto an in-memory RGBA canvas.
type Backend struct {
	Engine typeface.Engine
}

var _ renderer.Backend = Backend{}

// NewBackend creates a raster backend using the given font engine.
func NewBackend(engine typeface.Engine) Backend { return Backend{Engine: engine} }

// Load implements renderer.Backend.
func (b Backend) Load(src renderer.FontSource, size float64) (renderer.Font, error) {
	data, err := renderer.ReadFontSource(src)
	if err != nil {
		return nil, err
	}
	face, err := typeface.Parse(renderer.SourceName(src), data, size, b.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", renderer.ErrFontUnavailable, err)
	}
	return &Font{Face: face}, nil
}

// Font is a renderer.Font backed by a typeface.Face.
type Font struct {
	*typeface.Face
}

var _ renderer.Font = (*Font)(nil)

// Rasterize fills the canvas with the background color and draws each placed line.
func (f *Font) Rasterize(plan layout.Plan, style renderer.Style) (*image.RGBA, error) {
	if plan.Width <= 0 || plan.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", plan.Width, plan.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, plan.Width, plan.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(renderer.RGBA(style.Background)), image.Point{}, draw.Src)

	fg := renderer.RGBA(style.Foreground)
	for _, line := range plan.Lines {
		if line.Text == "" {
			continue
		}
		f.DrawString(dst, line.X, line.Y, line.Text, fg)
	}
	return dst, nil
}
