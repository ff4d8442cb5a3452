package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/specimen/fonts"
	"github.com/ByLCY/specimen/layout"
)

var (
	// ErrFontUnavailable 表示字体文件缺失或无法解析；调用方应跳过本次渲染并继续。
	ErrFontUnavailable = errors.New("字体不可用")
	// ErrUnsupportedFormat 表示输出扩展名不受支持。
	ErrUnsupportedFormat = errors.New("不支持的输出格式")
)

// FontSource 描述字体来源，Src 可以是文件路径或 embed:<name> 形式的内置字体。
type FontSource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// Style 描述画布背景色与文字颜色。
type Style struct {
	Background layout.Color `json:"background"`
	Foreground layout.Color `json:"foreground"`
}

// DefaultStyle 为白底黑字。
func DefaultStyle() Style {
	return Style{Background: layout.White, Foreground: layout.Black}
}

// Font 是渲染所需的字体能力：测量字符串并按排版方案绘制画布。
// 实例绑定一个字号，仅在一次渲染调用期间使用。
type Font interface {
	layout.Measurer
	Name() string
	Rasterize(plan layout.Plan, style Style) (*image.RGBA, error)
	Close() error
}

// VectorFont 由能够直接输出矢量文档的后端实现。
type VectorFont interface {
	Font
	WritePDF(w io.Writer, plan layout.Plan, style Style) error
}

// Backend 根据来源与像素字号加载字体；失败时返回的错误包装 ErrFontUnavailable。
type Backend interface {
	Load(src FontSource, size float64) (Font, error)
}

// Renderer 串联字体加载、排版与输出。
type Renderer struct {
	backend Backend
	style   Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle overrides the default white-on-black style.
func WithStyle(s Style) Option { return func(r *Renderer) { r.style = s } }

// New creates a renderer drawing with the given backend.
func New(b Backend, opts ...Option) *Renderer {
	r := &Renderer{backend: b, style: DefaultStyle()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Style 返回当前渲染样式。
func (r *Renderer) Style() Style { return r.style }

// Load 加载字体。失败时错误满足 errors.Is(err, ErrFontUnavailable)。
func (r *Renderer) Load(src FontSource, size float64) (Font, error) {
	if r.backend == nil {
		return nil, fmt.Errorf("renderer 未配置后端")
	}
	f, err := r.backend.Load(src, size)
	if err != nil {
		if errors.Is(err, ErrFontUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, src.Src, err)
	}
	return f, nil
}

// RenderSingle 将 text 作为单行绘制，画布为文本包围盒加四周 padding，并写入 outPath。
func (r *Renderer) RenderSingle(f Font, text string, padding int, outPath string) (layout.Plan, error) {
	plan := layout.PlanSingle(text, f, padding)
	return plan, r.save(f, plan, outPath)
}

// RenderMultiline 按行绘制 lines 并写入 outPath，画布不小于 layout.MinCanvasSize。
func (r *Renderer) RenderMultiline(f Font, lines []string, padding, spacing int, outPath string) (layout.Plan, error) {
	plan := layout.PlanMultiline(lines, f, padding, spacing)
	return plan, r.save(f, plan, outPath)
}

// RenderText 加载字体、按 params 折行并输出多行图像。
// 字体不可用时不绘制也不写文件，返回包装 ErrFontUnavailable 的错误。
func (r *Renderer) RenderText(src FontSource, size float64, text string, params layout.Params, outPath string) (layout.Plan, error) {
	f, err := r.Load(src, size)
	if err != nil {
		return layout.Plan{}, err
	}
	defer f.Close()

	lines := layout.WrapParagraphs(text, f, params.WrapWidth())
	return r.RenderMultiline(f, lines, params.Padding, params.LineSpacing, outPath)
}

func (r *Renderer) save(f Font, plan layout.Plan, outPath string) error {
	ext := strings.ToLower(filepath.Ext(outPath))
	if ext == ".pdf" {
		vf, ok := f.(VectorFont)
		if !ok {
			return fmt.Errorf("%w: 当前后端无法输出 %s", ErrUnsupportedFormat, ext)
		}
		return writeFile(outPath, func(w io.Writer) error { return vf.WritePDF(w, plan, r.style) })
	}
	if !SupportedFormat(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	img, err := f.Rasterize(plan, r.style)
	if err != nil {
		return fmt.Errorf("绘制 %s 失败: %w", f.Name(), err)
	}
	return WriteImage(outPath, img)
}

// ReadFontSource 读取字体字节，缺失的文件包装为 ErrFontUnavailable。
func ReadFontSource(src FontSource) ([]byte, error) {
	if src.Src == "" {
		return nil, fmt.Errorf("%w: 字体 %s 缺少 src", ErrFontUnavailable, src.Name)
	}
	var (
		data []byte
		err  error
	)
	if fonts.IsBuiltin(src.Src) {
		data, err = fonts.Load(src.Src)
	} else {
		data, err = os.ReadFile(src.Src)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return data, nil
}

// SourceName 返回字体来源的显示名：优先 Name，否则取不带扩展名的文件名。
func SourceName(src FontSource) string {
	if src.Name != "" {
		return src.Name
	}
	base := filepath.Base(strings.TrimPrefix(src.Src, fonts.Prefix))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RGBA converts a layout color to an opaque color.RGBA.
func RGBA(c layout.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}
