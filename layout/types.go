package layout

// 该文件定义排版结果与几何描述，供换行、画布规划、渲染与调试 JSON 共用。
// 所有坐标与尺寸均为像素，原点位于画布左上角。

// Rect 是字符串的紧致墨迹包围盒。
// 参照原点为绘制起点：左边缘与字体上升线（ascender）的交点，向下为正。
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// W 返回包围盒宽度（right - left）。
func (r Rect) W() int { return r.Right - r.Left }

// H 返回包围盒高度（bottom - top）。
func (r Rect) H() int { return r.Bottom - r.Top }

// Empty reports whether the box encloses no pixels.
func (r Rect) Empty() bool { return r.W() <= 0 || r.H() <= 0 }

// Placement 表示画布上一行已确定位置的文本。
// X/Y 为绘制起点（行的左上角，按上升线对齐），而非墨迹的左上角。
type Placement struct {
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Bounds Rect   `json:"bounds"`
}

// Plan 是一次渲染的完整几何方案：画布尺寸以及每行文本的位置。
type Plan struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Padding     int         `json:"padding"`
	LineSpacing int         `json:"lineSpacing,omitempty"`
	Lines       []Placement `json:"lines"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
)
