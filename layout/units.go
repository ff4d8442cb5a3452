package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-aware lengths and colors used by job files.

// Unit represents the original unit of a length value as written in a job file.
type Unit int

const (
	UnitPX Unit = iota // pixels; unit-less numbers are pixels
	UnitPT             // points
	UnitMM             // millimeters
)

// Conversion constants, at the CSS reference resolution of 96 px per inch.
const (
	PtToPx = 96.0 / 72.0
	MmToPx = 96.0 / 25.4
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPx converts the length to pixels.
func (l Length) ToPx() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	default:
		return l.Value
	}
}

// Pixels 返回四舍五入后的整数像素值。
func (l Length) Pixels() int { return int(math.Round(l.ToPx())) }

// ParseLength parses a length string such as "30", "30px", "22.5pt" or "4mm".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPX
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负数: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParseColor 解析 #RGB 或 #RRGGBB 形式的颜色。
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("颜色格式错误: %q", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色格式错误: %q", value)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
