package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
	"github.com/ByLCY/specimen/typeface"
)

// 画布以毫米为单位，光栅化分辨率固定为 1 像素/毫米，因此画布上的 1mm 即输出中的 1px。
const (
	pixelsPerMm = 1.0
	ptPerMm     = 72.0 / 25.4
)

// Backend draws layout plans via github.com/tdewolff/canvas.
type Backend struct {
	// Engine 用于测量的字体引擎；绘制始终由 canvas 完成。
	Engine typeface.Engine
}

var _ renderer.Backend = Backend{}

// NewBackend creates a canvas backend measuring with the SFNT engine.
func NewBackend() Backend { return Backend{Engine: typeface.SFNT} }

// Load implements renderer.Backend. The font bytes are loaded twice: into a canvas
// font family for drawing, and into a typeface.Face for glyph-accurate measuring.
func (b Backend) Load(src renderer.FontSource, size float64) (renderer.Font, error) {
	data, err := renderer.ReadFontSource(src)
	if err != nil {
		return nil, err
	}
	name := renderer.SourceName(src)

	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: canvas 加载字体 %s 失败: %v", renderer.ErrFontUnavailable, name, err)
	}
	face, err := typeface.Parse(name, data, size, b.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", renderer.ErrFontUnavailable, err)
	}
	return &Font{Face: face, family: family, sizePt: toPt(size)}, nil
}

// Font draws with a canvas font family and measures with the embedded typeface.Face.
type Font struct {
	*typeface.Face
	family *canvas.FontFamily
	sizePt float64
}

var _ renderer.VectorFont = (*Font)(nil)

// Rasterize implements renderer.Font.
func (f *Font) Rasterize(plan layout.Plan, style renderer.Style) (*image.RGBA, error) {
	c, err := f.draw(plan, style)
	if err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(pixelsPerMm), canvas.DefaultColorSpace), nil
}

// WritePDF 将排版方案输出为单页 PDF，页面尺寸以毫米计，数值等于像素尺寸。
func (f *Font) WritePDF(w io.Writer, plan layout.Plan, style renderer.Style) error {
	c, err := f.draw(plan, style)
	if err != nil {
		return err
	}
	writer := pdf.New(w, toMm(plan.Width), toMm(plan.Height), nil)
	writer.SetInfo(f.Name(), "font specimen", f.Name(), "", "specimen")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func (f *Font) draw(plan layout.Plan, style renderer.Style) (*canvas.Canvas, error) {
	if plan.Width <= 0 || plan.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", plan.Width, plan.Height)
	}
	w, h := toMm(plan.Width), toMm(plan.Height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)

	// 背景在默认坐标系下铺满整个画布
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetFillColor(colorFromLayout(style.Background))
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版方案保持左上角为原点
	face := f.family.Face(f.sizePt, colorFromLayout(style.Foreground), canvas.FontRegular, canvas.FontNormal)
	ascent := face.Metrics().Ascent
	for _, line := range plan.Lines {
		if line.Text == "" {
			continue
		}
		// 基线位置：以行顶部（上升线）加上字体上升部
		baseline := toMm(line.Y) + ascent
		ctx.DrawText(toMm(line.X), baseline, canvas.NewTextLine(face, line.Text, canvas.Left))
	}
	return c, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将像素字号转换为 canvas 使用的点（pt）。
func toPt(px float64) float64 { return px / pixelsPerMm * ptPerMm }

// toMm 将像素转换为画布毫米。
func toMm(px int) float64 { return float64(px) / pixelsPerMm }
