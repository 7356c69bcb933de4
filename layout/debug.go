package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteDebugJSON 将排版结果输出为 JSON，便于核对每个片段的坐标与换页位置。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
