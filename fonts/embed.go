package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Prefix 标记内置字体来源，例如 "embed:goregular"。
const Prefix = "embed:"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomedium":  gomedium.TTF,
	"gomono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:goregular" 或直接 "goregular"，
// 也接受带 .ttf 后缀的写法。
func Load(name string) ([]byte, error) {
	key := strings.TrimSuffix(strings.TrimPrefix(name, Prefix), ".ttf")
	data, ok := builtin[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s", name)
	}
	return data, nil
}

// IsBuiltin 判断 src 是否指向内置字体。
func IsBuiltin(src string) bool { return strings.HasPrefix(src, Prefix) }

// Names 按字母序返回所有内置字体名。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
