package layout

// PlanSingle 计算单行渲染方案：画布为文本包围盒加四周 padding，文本绘制于 (padding, padding)。
// 单行方案不设最小画布尺寸。
func PlanSingle(text string, m Measurer, padding int) Plan {
	bounds := m.Bounds(text)
	return Plan{
		Width:   bounds.W() + 2*padding,
		Height:  bounds.H() + 2*padding,
		Padding: padding,
		Lines: []Placement{{
			Text:   text,
			X:      padding,
			Y:      padding,
			Bounds: bounds,
		}},
	}
}

// PlanMultiline 计算多行渲染方案。
//
// 每行独立测量包围盒；画布宽度为最宽行加两侧 padding，高度为各行高度之和、
// 行间距与上下 padding 之和，并在两个方向上分别下限为 MinCanvasSize。
// 各行从 y = padding 开始自上而下排列，每行下移该行自身高度加 spacing。
func PlanMultiline(lines []string, m Measurer, padding, spacing int) Plan {
	plan := Plan{
		Padding:     padding,
		LineSpacing: spacing,
		Lines:       make([]Placement, 0, len(lines)),
	}

	maxWidth, totalHeight := 0, 0
	y := padding
	for _, line := range lines {
		bounds := m.Bounds(line)
		plan.Lines = append(plan.Lines, Placement{
			Text:   line,
			X:      padding,
			Y:      y,
			Bounds: bounds,
		})
		maxWidth = max(maxWidth, bounds.W())
		totalHeight += bounds.H()
		y += bounds.H() + spacing
	}

	gaps := max(len(lines)-1, 0)
	plan.Width = max(maxWidth+2*padding, MinCanvasSize)
	plan.Height = max(totalHeight+gaps*spacing+2*padding, MinCanvasSize)
	return plan
}
