package batch

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/specimen/binding"
	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
)

// ErrNoFonts 表示字体目录中没有匹配的字体，且没有额外的字体来源。
var ErrNoFonts = errors.New("没有找到字体文件")

// Rendered 记录一次成功的渲染。
type Rendered struct {
	Font   renderer.FontSource `json:"font"`
	Output string              `json:"output"`
	Plan   layout.Plan         `json:"plan"`
}

// Skipped 记录因字体不可用而跳过的渲染。
type Skipped struct {
	Font   renderer.FontSource `json:"font"`
	Reason string              `json:"reason"`
}

// Report 汇总一次批量渲染的结果。
type Report struct {
	Rendered []Rendered `json:"rendered"`
	Skipped  []Skipped  `json:"skipped"`
}

// Driver 遍历任务中的字体并逐个调用渲染器。
type Driver struct {
	Renderer *renderer.Renderer
	Logger   *log.Logger
	// DebugDir 非空时，为每个输出额外写一份排版方案 JSON。
	DebugDir string
}

// NewDriver creates a driver logging through the standard logger.
func NewDriver(r *renderer.Renderer) *Driver {
	return &Driver{Renderer: r, Logger: log.Default()}
}

// Discover 返回任务要渲染的字体：FontDir 中扩展名匹配的文件（按文件名排序），
// 以及 Include 中列出的额外来源。FontDir 不存在时只返回 Include。
func Discover(job Job) ([]renderer.FontSource, error) {
	var sources []renderer.FontSource
	entries, err := os.ReadDir(job.FontDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取字体目录 %s 失败: %w", job.FontDir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !matchExt(entry.Name(), job.Extensions) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		sources = append(sources, renderer.FontSource{Src: filepath.Join(job.FontDir, name)})
	}
	for _, src := range job.Include {
		sources = append(sources, renderer.FontSource{Src: src})
	}
	return sources, nil
}

func matchExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Run 执行批量渲染。字体不可用时记录并跳过，继续处理其余字体；
// 其它错误（例如写文件失败）立即返回。
func (d *Driver) Run(job Job) (Report, error) {
	var report Report
	if d.Renderer == nil {
		return report, fmt.Errorf("driver 未配置 renderer")
	}
	sources, err := Discover(job)
	if err != nil {
		return report, err
	}
	if len(sources) == 0 {
		return report, fmt.Errorf("%w: %s", ErrNoFonts, job.FontDir)
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return report, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if d.DebugDir != "" {
		if err := os.MkdirAll(d.DebugDir, 0o755); err != nil {
			return report, fmt.Errorf("创建调试目录失败: %w", err)
		}
	}

	for _, src := range sources {
		rendered, err := d.renderOne(job, src)
		if errors.Is(err, renderer.ErrFontUnavailable) {
			d.logf("跳过 %s: %v", src.Src, err)
			report.Skipped = append(report.Skipped, Skipped{Font: src, Reason: err.Error()})
			continue
		}
		if err != nil {
			return report, err
		}
		report.Rendered = append(report.Rendered, rendered)
	}
	return report, nil
}

func (d *Driver) renderOne(job Job, src renderer.FontSource) (Rendered, error) {
	f, err := d.Renderer.Load(src, job.Size)
	if err != nil {
		return Rendered{}, err
	}
	defer f.Close()

	data := templateData(job, src)
	outPath := filepath.Join(job.OutputDir, binding.Interpolate(job.NameTemplate, data))
	text := norm.NFC.String(binding.Interpolate(job.Text, data))

	d.logf("使用 %s 渲染到 %s...", f.Name(), outPath)
	lines := layout.WrapParagraphs(text, f, job.Params.WrapWidth())
	plan, err := d.Renderer.RenderMultiline(f, lines, job.Params.Padding, job.Params.LineSpacing, outPath)
	if err != nil {
		return Rendered{}, fmt.Errorf("渲染 %s 失败: %w", src.Src, err)
	}
	if d.DebugDir != "" {
		base := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
		if err := layout.WriteDebugJSON(&plan, filepath.Join(d.DebugDir, base+".json")); err != nil {
			return Rendered{}, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return Rendered{Font: src, Output: outPath, Plan: plan}, nil
}

// templateData 构造输出文件名与文本中可引用的变量。
func templateData(job Job, src renderer.FontSource) map[string]any {
	return map[string]any{
		"font": map[string]any{
			"name": renderer.SourceName(src),
			"file": filepath.Base(src.Src),
			"size": job.Size,
		},
		"job": map[string]any{
			"name": job.Name,
		},
	}
}

func (d *Driver) logf(format string, args ...any) {
	if d.Logger == nil {
		return
	}
	d.Logger.Printf(format, args...)
}

// Summary 写出一行人类可读的汇总。
func (r Report) Summary(w io.Writer) {
	fmt.Fprintf(w, "已生成 %d 张图片，跳过 %d 个字体\n", len(r.Rendered), len(r.Skipped))
}
