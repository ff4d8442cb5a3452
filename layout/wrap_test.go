package layout

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// monoWidth 模拟等宽字体：每个字符 10px（包括空格）。
func monoWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

func TestWrapEmpty(t *testing.T) {
	if lines := Wrap("", monoWidth, 100); len(lines) != 0 {
		t.Fatalf("空文本应得到空结果，实际 %q", lines)
	}
}

func TestWrapFitsAllOnOneLine(t *testing.T) {
	got := Wrap("a b c", monoWidth, 50)
	if diff := cmp.Diff([]string{"a b c"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWrapOneWordPerLine(t *testing.T) {
	got := Wrap("a b c", monoWidth, 10)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

// 恰好等宽时仍然放在同一行（<= 比较）。
func TestWrapExactFit(t *testing.T) {
	got := Wrap("ab cd ef", monoWidth, 50)
	if diff := cmp.Diff([]string{"ab cd", "ef"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWrapOverWideWordOwnsLine(t *testing.T) {
	got := Wrap("hi supercalifragilistic yo", monoWidth, 50)
	want := []string{"hi", "supercalifragilistic", "yo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWrapOverWideLeadingWord(t *testing.T) {
	got := Wrap("abcdefgh a b", monoWidth, 30)
	want := []string{"abcdefgh", "a b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWrapCollapsesSpaces(t *testing.T) {
	got := Wrap("a   b  c", monoWidth, 1000)
	if diff := cmp.Diff([]string{"a b c"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

// 分隔空格使用 measure(" ") 的宽度，而不是固定值。
func TestWrapUsesMeasuredSpace(t *testing.T) {
	measure := func(s string) float64 {
		if s == " " {
			return 1
		}
		return monoWidth(s)
	}
	got := Wrap("ab cd ef", measure, 41)
	if diff := cmp.Diff([]string{"ab cd", "ef"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

// TestWrapProperties 随机生成文本，验证：
// 1) 除单个超宽单词外，每行宽度不超过预算；
// 2) 所有行重新拼接后与规范化输入一致。
func TestWrapProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const letters = "abcdefghijklmnopqrstuvwxyz"
	for iter := 0; iter < 200; iter++ {
		var words []string
		n := rng.IntN(30)
		for i := 0; i < n; i++ {
			var b strings.Builder
			for j := 0; j <= rng.IntN(12); j++ {
				b.WriteByte(letters[rng.IntN(len(letters))])
			}
			words = append(words, b.String())
		}
		text := strings.Join(words, strings.Repeat(" ", 1+rng.IntN(2)))
		budget := float64(20 + rng.IntN(200))

		lines := Wrap(text, monoWidth, budget)
		for _, ln := range lines {
			if monoWidth(ln) > budget && strings.Contains(ln, " ") {
				t.Fatalf("行 %q 宽度 %g 超出预算 %g", ln, monoWidth(ln), budget)
			}
		}
		if got, want := strings.Join(lines, " "), strings.Join(words, " "); got != want {
			t.Fatalf("单词丢失或乱序:\n got=%q\nwant=%q", got, want)
		}
	}
}

func TestWrapParagraphsHonorsNewlines(t *testing.T) {
	text := `
    foo bar

    baz
    `
	got := WrapParagraphs(text, stubMeasurer{}, 1000)
	want := []string{"foo bar", "", "baz"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWrapParagraphsEmpty(t *testing.T) {
	if got := WrapParagraphs(" \n\t\n", stubMeasurer{}, 100); len(got) != 0 {
		t.Fatalf("空白文本应得到空结果，实际 %q", got)
	}
}
