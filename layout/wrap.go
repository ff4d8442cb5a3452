package layout

import "strings"

// Wrap 使用贪心算法把 text 拆成若干行，每行宽度不超过 maxWidth。
//
// 文本按单个空格切分为单词，连续空格不会产生空单词。单词之间的空格宽度
// 取 measure(" ")。宽度超过 maxWidth 的单个单词独占一行并允许溢出，
// 不做字符级拆分。空文本返回空切片。
func Wrap(text string, measure MeasureFunc, maxWidth float64) []string {
	if text == "" {
		return nil
	}

	spaceWidth := measure(" ")
	var lines []string
	var current []string
	currentWidth := 0.0

	emit := func() {
		if len(current) == 0 {
			return
		}
		lines = append(lines, strings.Join(current, " "))
		current = current[:0]
		currentWidth = 0
	}

	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		wordWidth := measure(word)

		sep := 0.0
		if len(current) > 0 {
			sep = spaceWidth
		}
		if currentWidth+sep+wordWidth <= maxWidth {
			current = append(current, word)
			currentWidth += sep + wordWidth
			continue
		}

		// 放不下：先输出当前行，再以该单词开启新行（即使它本身已超宽）
		emit()
		current = append(current, word)
		currentWidth = wordWidth
	}
	emit()
	return lines
}

// WrapFace 使用 m 的前进宽度执行 Wrap。
func WrapFace(text string, m Measurer, maxWidth float64) []string {
	return Wrap(text, m.Advance, maxWidth)
}

// WrapParagraphs 先按显式换行拆分段落，再对每段执行 Wrap。
// 每段首尾空白会被去除；中间的空段落保留为空行，首尾的空段落被丢弃。
func WrapParagraphs(text string, m Measurer, maxWidth float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := strings.Split(strings.TrimSpace(text), "\n")

	var lines []string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		lines = append(lines, WrapFace(p, m, maxWidth)...)
	}
	return lines
}
