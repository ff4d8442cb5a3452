package renderer_test

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
	rasterrenderer "github.com/ByLCY/specimen/renderer/raster"
	"github.com/ByLCY/specimen/typeface"
)

var goRegular = renderer.FontSource{Src: "embed:goregular"}

func newRenderer() *renderer.Renderer {
	return renderer.New(rasterrenderer.NewBackend(typeface.SFNT))
}

func loadFont(t *testing.T, r *renderer.Renderer) renderer.Font {
	t.Helper()
	f, err := r.Load(goRegular, 30)
	if err != nil {
		t.Fatalf("加载内置字体失败: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开输出失败: %v", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		t.Fatalf("解码输出失败: %v", err)
	}
	return img
}

func TestRenderMultilineEmptyHasMinimumCanvas(t *testing.T) {
	r := newRenderer()
	out := filepath.Join(t.TempDir(), "empty.png")
	plan, err := r.RenderMultiline(loadFont(t, r), nil, layout.DefaultMultilinePadding, layout.DefaultLineSpacing, out)
	if err != nil {
		t.Fatalf("RenderMultiline error: %v", err)
	}
	img := decodeFile(t, out)
	if b := img.Bounds(); b.Dx() < layout.MinCanvasSize || b.Dy() < layout.MinCanvasSize {
		t.Fatalf("空输入画布小于下限: %v", b)
	}
	if plan.Width != layout.MinCanvasSize || plan.Height != layout.MinCanvasSize {
		t.Fatalf("plan size = %dx%d", plan.Width, plan.Height)
	}
}

func TestRenderSingleMatchesPlan(t *testing.T) {
	r := newRenderer()
	out := filepath.Join(t.TempDir(), "single.png")
	plan, err := r.RenderSingle(loadFont(t, r), "Hello, specimen", layout.DefaultSinglePadding, out)
	if err != nil {
		t.Fatalf("RenderSingle error: %v", err)
	}
	b := decodeFile(t, out).Bounds()
	if b.Dx() != plan.Width || b.Dy() != plan.Height {
		t.Fatalf("image %v does not match plan %dx%d", b, plan.Width, plan.Height)
	}
	if plan.Width <= 2*layout.DefaultSinglePadding || plan.Height <= 2*layout.DefaultSinglePadding {
		t.Fatalf("text box should be non-empty: %+v", plan)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newRenderer()
	dir := t.TempDir()
	lines := []string{"The quick brown fox", "jumps over the lazy dog"}
	var outputs [][]byte
	for _, name := range []string{"a.png", "b.png"} {
		f, err := r.Load(goRegular, 24)
		if err != nil {
			t.Fatalf("load error: %v", err)
		}
		out := filepath.Join(dir, name)
		if _, err := r.RenderMultiline(f, lines, 30, 10, out); err != nil {
			t.Fatalf("render error: %v", err)
		}
		f.Close()
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read error: %v", err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatalf("相同输入的两次渲染结果不一致")
	}
}

func TestRenderTextMissingFontWritesNothing(t *testing.T) {
	r := newRenderer()
	dir := t.TempDir()
	out := filepath.Join(dir, "missing.png")
	_, err := r.RenderText(renderer.FontSource{Src: filepath.Join(dir, "nope.ttf")}, 30, "hello", layout.DefaultParams(), out)
	if !errors.Is(err, renderer.ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("字体不可用时不应写出文件: %v", statErr)
	}
}

func TestRenderTextCorruptFont(t *testing.T) {
	r := newRenderer()
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(bad, []byte("definitely not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "bad.png")
	if _, err := r.RenderText(renderer.FontSource{Src: bad}, 30, "hello", layout.DefaultParams(), out); !errors.Is(err, renderer.ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("字体不可用时不应写出文件")
	}
}

func TestRenderTextWrapsToWidth(t *testing.T) {
	r := newRenderer()
	out := filepath.Join(t.TempDir(), "wrapped.png")
	text := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen"
	params := layout.Params{Padding: 30, LineSpacing: 10, MaxWidth: 300, WrapMargin: 20}
	plan, err := r.RenderText(goRegular, 30, text, params, out)
	if err != nil {
		t.Fatalf("RenderText error: %v", err)
	}
	if len(plan.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(plan.Lines))
	}
	// 多个单词组成的行，墨迹宽度不应明显超过折行预算
	for _, ln := range plan.Lines {
		if ln.Bounds.W() > int(params.WrapWidth())+2 {
			t.Fatalf("line %q too wide: %d", ln.Text, ln.Bounds.W())
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	r := newRenderer()
	dir := t.TempDir()
	for _, name := range []string{"out.webp", "out.pdf"} {
		out := filepath.Join(dir, name)
		_, err := r.RenderSingle(loadFont(t, r), "x", 20, out)
		if !errors.Is(err, renderer.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Fatalf("%s: 不应写出文件", name)
		}
	}
}

func TestRasterFormatsByExtension(t *testing.T) {
	r := newRenderer()
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.bmp", "a.tiff", "a.jpg", "a.gif"} {
		out := filepath.Join(dir, name)
		plan, err := r.RenderSingle(loadFont(t, r), "Format", 20, out)
		if err != nil {
			t.Fatalf("%s: render error: %v", name, err)
		}
		if b := decodeFile(t, out).Bounds(); b.Dx() != plan.Width || b.Dy() != plan.Height {
			t.Fatalf("%s: decoded size %v, plan %dx%d", name, b, plan.Width, plan.Height)
		}
	}
}

func TestSourceName(t *testing.T) {
	cases := map[renderer.FontSource]string{
		{Src: "/app/fonts/NanumGothic.ttf"}: "NanumGothic",
		{Src: "embed:gomono"}:               "gomono",
		{Name: "Body", Src: "fonts/x.otf"}:  "Body",
	}
	for src, want := range cases {
		if got := renderer.SourceName(src); got != want {
			t.Fatalf("SourceName(%+v) = %q, want %q", src, got, want)
		}
	}
}
