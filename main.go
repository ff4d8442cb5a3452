package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/specimen/batch"
	"github.com/ByLCY/specimen/dsl"
	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
	canvasrenderer "github.com/ByLCY/specimen/renderer/canvas"
	rasterrenderer "github.com/ByLCY/specimen/renderer/raster"
	"github.com/ByLCY/specimen/typeface"
)

type options struct {
	job     string
	root    string
	fonts   string
	out     string
	text    string
	font    string
	size    float64
	width   int
	backend string
	debug   string
	single  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.job, "job", "", "任务文件路径（specimen DSL）")
	flag.StringVar(&opts.root, "root", ".", "容器根目录，默认读取 <root>/fonts 并输出到 <root>/output")
	flag.StringVar(&opts.fonts, "fonts", "", "字体目录，覆盖任务文件与 -root")
	flag.StringVar(&opts.out, "out", "", "输出目录；-single 模式下为输出文件路径")
	flag.StringVar(&opts.text, "text", "", "渲染文本，覆盖任务文件")
	flag.StringVar(&opts.font, "font", "embed:goregular", "-single 模式使用的字体")
	flag.Float64Var(&opts.size, "size", 0, "像素字号，覆盖任务文件")
	flag.IntVar(&opts.width, "width", 0, "最大图像宽度（像素），覆盖任务文件")
	flag.StringVar(&opts.backend, "backend", "", "绘制后端：canvas | sfnt | freetype")
	flag.StringVar(&opts.debug, "debug", "", "排版方案 JSON 输出目录")
	flag.BoolVar(&opts.single, "single", false, "将 -text 渲染为单行图像")
	flag.Parse()

	if opts.single {
		if err := runSingle(opts); err != nil {
			log.Fatalf("生成图片失败: %v", err)
		}
		return
	}
	if err := run(opts); err != nil {
		log.Fatalf("批量渲染失败: %v", err)
	}
}

// run 串联任务解析、字体遍历与渲染。
func run(opts options) error {
	job, err := loadJob(opts)
	if err != nil {
		return err
	}
	backend, err := newBackend(job.Backend)
	if err != nil {
		return err
	}

	d := batch.NewDriver(renderer.New(backend, renderer.WithStyle(job.Style)))
	d.DebugDir = opts.debug
	report, err := d.Run(job)
	if err != nil {
		return err
	}
	report.Summary(os.Stdout)
	return nil
}

func runSingle(opts options) error {
	backend, err := newBackend(opts.backend)
	if err != nil {
		return err
	}
	out := opts.out
	if out == "" {
		out = filepath.Join("output", "text_image.png")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	size := opts.size
	if size <= 0 {
		size = batch.DefaultSize
	}
	text := opts.text
	if text == "" {
		text = "Hello, specimen!"
	}

	r := renderer.New(backend)
	f, err := r.Load(renderer.FontSource{Src: opts.font}, size)
	if errors.Is(err, renderer.ErrFontUnavailable) {
		log.Printf("跳过 %s: %v", opts.font, err)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	plan, err := r.RenderSingle(f, text, layout.DefaultSinglePadding, out)
	if err != nil {
		return err
	}
	if opts.debug != "" {
		if err := writeDebug(&plan, filepath.Join(opts.debug, "single.json")); err != nil {
			return err
		}
	}
	fmt.Printf("已生成图片：%s\n", out)
	return nil
}

// loadJob 读取任务文件（如有），再用命令行参数覆盖。
func loadJob(opts options) (batch.Job, error) {
	job := batch.DefaultJob(opts.root)
	if opts.job != "" {
		file, err := os.Open(opts.job)
		if err != nil {
			return job, fmt.Errorf("无法打开任务文件 %s: %w", opts.job, err)
		}
		defer file.Close()
		doc, err := dsl.Parse(file)
		if err != nil {
			return job, fmt.Errorf("解析任务文件失败: %w", err)
		}
		if job, err = batch.FromDocument(doc, opts.root); err != nil {
			return job, err
		}
	}

	if opts.fonts != "" {
		job.FontDir = opts.fonts
	}
	if opts.out != "" {
		job.OutputDir = opts.out
	}
	if opts.text != "" {
		job.Text = opts.text
	}
	if opts.size > 0 {
		job.Size = opts.size
	}
	if opts.width > 0 {
		job.Params.MaxWidth = opts.width
	}
	if opts.backend != "" {
		job.Backend = opts.backend
	}
	return job, nil
}

func newBackend(name string) (renderer.Backend, error) {
	switch strings.ToLower(name) {
	case "", "canvas":
		return canvasrenderer.NewBackend(), nil
	default:
		engine, err := typeface.ParseEngine(name)
		if err != nil {
			return nil, err
		}
		return rasterrenderer.NewBackend(engine), nil
	}
}

func writeDebug(plan *layout.Plan, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(plan, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
