package video

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BaSui01/runwayflow"
)

// EncodeImage 读取本地图像文件并编码为 data-URI 字符串
// （data:<mime>;base64,<payload>）。支持 jpg/jpeg/png，扩展名大小写不敏感。
// 读取发生在扩展名检查之前：不可读文件即使扩展名非法也先暴露读错误。
func (g *Generator) EncodeImage(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &runwayflow.Error{
				Code:    runwayflow.ErrNotFound,
				Message: fmt.Sprintf("image file not found: %s", path),
			}
		}
		return "", fmt.Errorf("checking image file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image file: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	var mime string
	switch ext {
	case "jpg", "jpeg":
		mime = "image/jpeg"
	case "png":
		mime = "image/png"
	default:
		return "", &runwayflow.Error{
			Code:    runwayflow.ErrUnsupportedFormat,
			Message: fmt.Sprintf("unsupported image format: %q, use JPG or PNG", ext),
		}
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}
