package layout

// 默认排版参数，单位均为像素。
const (
	DefaultSinglePadding    = 20
	DefaultMultilinePadding = 30
	DefaultLineSpacing      = 10
	DefaultMaxWidth         = 800
	DefaultWrapMargin       = 20

	// MinCanvasSize 是多行画布在每个方向上的最小尺寸，避免空文本产生退化的小图。
	MinCanvasSize = 100
)

// Params 描述多行渲染的排版参数。
type Params struct {
	Padding     int `json:"padding"`     // 画布四周统一留白
	LineSpacing int `json:"lineSpacing"` // 相邻两行包围盒之间的间距
	MaxWidth    int `json:"maxWidth"`    // 目标图像宽度
	WrapMargin  int `json:"wrapMargin"`  // 换行时从 MaxWidth 两侧各扣除的宽度
}

// DefaultParams 返回与参考行为一致的默认参数。
func DefaultParams() Params {
	return Params{
		Padding:     DefaultMultilinePadding,
		LineSpacing: DefaultLineSpacing,
		MaxWidth:    DefaultMaxWidth,
		WrapMargin:  DefaultWrapMargin,
	}
}

// WrapWidth 返回换行使用的像素预算：MaxWidth 扣除两侧 WrapMargin。
func (p Params) WrapWidth() float64 {
	return float64(p.MaxWidth - 2*p.WrapMargin)
}

// Measurer 是排版阶段所需的字体能力。
type Measurer interface {
	// Advance 返回字符串的排版前进宽度（像素），用于换行。
	Advance(s string) float64
	// Bounds 返回字符串的紧致墨迹包围盒，用于计算画布与行高。
	Bounds(s string) Rect
}

// MeasureFunc 返回字符串在某个字体下的像素宽度。
type MeasureFunc func(s string) float64
