package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/specimen/dsl"
	"github.com/ByLCY/specimen/layout"
	"github.com/ByLCY/specimen/renderer"
)

// 参考行为的默认值。
const (
	DefaultSize         = 30
	DefaultNameTemplate = "image_${font.name}.png"
	DefaultText         = `ABCDEFGHIJKLMNOPQRSTUVWXYZ abcdefghijklmnopqrstuvwxyz
0123456789 ` + "`" + `~!@#$%^&*()-=_+\|<>,.;:/?"'[{]}
별 헤는 밤, 낡은 짚차를 타고 숲 속으로, 퀘퀘한 향내를 맡으니 즈믄 강은 흐르고 저편에는 붉은 탑이 솟아있네.`
)

// Job 描述一次批量渲染：从字体目录取字体，逐个渲染同一段文本。
type Job struct {
	Name         string         `json:"name"`
	FontDir      string         `json:"fontDir"`
	Extensions   []string       `json:"extensions"`
	Include      []string       `json:"include,omitempty"` // 额外字体来源，例如 embed:gomono
	Size         float64        `json:"size"`              // 像素字号
	Text         string         `json:"text"`
	OutputDir    string         `json:"outputDir"`
	NameTemplate string         `json:"nameTemplate"`
	Params       layout.Params  `json:"params"`
	Style        renderer.Style `json:"style"`
	Backend      string         `json:"backend,omitempty"`
}

// DefaultJob 返回容器目录约定下的任务：<root>/fonts 中的 .ttf，输出到 <root>/output。
func DefaultJob(root string) Job {
	return Job{
		Name:         "specimen",
		FontDir:      filepath.Join(root, "fonts"),
		Extensions:   []string{".ttf"},
		Size:         DefaultSize,
		Text:         DefaultText,
		OutputDir:    filepath.Join(root, "output"),
		NameTemplate: DefaultNameTemplate,
		Params:       layout.DefaultParams(),
		Style:        renderer.DefaultStyle(),
	}
}

// FromDocument 在 DefaultJob(root) 的基础上应用任务文件中的设置。
// 任务文件中的相对路径以 root 为基准。
func FromDocument(doc *dsl.Document, root string) (Job, error) {
	job := DefaultJob(root)
	if doc == nil {
		return job, nil
	}
	job.Name = doc.Name

	for _, section := range doc.Sections {
		attrs := section.Block.Assignments()
		var err error
		switch section.Kind {
		case dsl.SectionFonts:
			if dir := section.TargetString(); dir != "" {
				job.FontDir = resolvePath(root, dir)
			}
			err = applyFonts(&job, attrs)
		case dsl.SectionOutput:
			if dir := section.TargetString(); dir != "" {
				job.OutputDir = resolvePath(root, dir)
			}
			if v, ok := scalar(attrs, "name"); ok {
				job.NameTemplate = v
			}
		case dsl.SectionLayout:
			err = applyLayout(&job.Params, attrs)
		case dsl.SectionStyle:
			err = applyStyle(&job, attrs)
		case dsl.SectionText:
			if texts := section.Block.Texts(); len(texts) > 0 {
				job.Text = strings.Join(texts, "\n")
			}
		}
		if err != nil {
			return Job{}, fmt.Errorf("%s 段配置错误 (%s): %w", section.Kind, section.Pos, err)
		}
	}
	return job, nil
}

func applyFonts(job *Job, attrs map[string]*dsl.Assignment) error {
	if v, ok := scalar(attrs, "size"); ok {
		l, err := layout.ParseLength(v)
		if err != nil {
			return err
		}
		if l.IsZero() {
			return fmt.Errorf("字号不能为 0")
		}
		job.Size = l.ToPx()
	}
	if a, ok := attrs["ext"]; ok {
		exts, ok := a.Value.List()
		if !ok {
			return fmt.Errorf("ext 必须为字符串或数组")
		}
		job.Extensions = exts
	}
	if a, ok := attrs["include"]; ok {
		include, ok := a.Value.List()
		if !ok {
			return fmt.Errorf("include 必须为字符串或数组")
		}
		job.Include = include
	}
	return nil
}

func applyLayout(p *layout.Params, attrs map[string]*dsl.Assignment) error {
	fields := []struct {
		key string
		dst *int
	}{
		{"padding", &p.Padding},
		{"spacing", &p.LineSpacing},
		{"width", &p.MaxWidth},
		{"margin", &p.WrapMargin},
	}
	for _, f := range fields {
		v, ok := scalar(attrs, f.key)
		if !ok {
			continue
		}
		l, err := layout.ParseLength(v)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = l.Pixels()
	}
	if p.WrapWidth() <= 0 {
		return fmt.Errorf("width 必须大于两倍 margin")
	}
	return nil
}

func applyStyle(job *Job, attrs map[string]*dsl.Assignment) error {
	for key, dst := range map[string]*layout.Color{
		"background": &job.Style.Background,
		"color":      &job.Style.Foreground,
	} {
		v, ok := scalar(attrs, key)
		if !ok {
			continue
		}
		c, err := layout.ParseColor(v)
		if err != nil {
			return err
		}
		*dst = c
	}
	if v, ok := scalar(attrs, "backend"); ok {
		job.Backend = v
	}
	return nil
}

func scalar(attrs map[string]*dsl.Assignment, key string) (string, bool) {
	a, ok := attrs[key]
	if !ok {
		return "", false
	}
	return a.Value.Scalar()
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
