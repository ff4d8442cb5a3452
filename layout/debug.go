package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将排版方案输出为 JSON，便于调试或比对不同字体的几何结果。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
