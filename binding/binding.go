package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，路径支持 a.b[0] 形式的下标。
// 若 data 为空或路径不存在，占位符保持原样。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Lookup 按点分路径在嵌套的 map/slice 中取值。
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		key, indexes, ok := splitIndexes(segment)
		if !ok {
			return nil, false
		}
		if key != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			if current, ok = m[key]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			list, isList := current.([]any)
			if !isList || idx < 0 || idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		}
	}
	return current, true
}

// splitIndexes 将 "items[1][0]" 拆成 "items" 与 [1 0]。
func splitIndexes(segment string) (string, []int, bool) {
	open := strings.IndexByte(segment, '[')
	if open == -1 {
		return segment, nil, true
	}
	key, rest := segment[:open], segment[open:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, n)
		rest = rest[end+1:]
	}
	return key, indexes, true
}
