package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SupportedFormat 判断扩展名（含点，大小写不敏感）是否为支持的位图格式。
func SupportedFormat(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// Encode 按扩展名选择编码器，将 img 写入 w。
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// WriteImage 按 path 的扩展名编码 img 并写入文件。编码在内存中完成，失败时不会留下文件。
func WriteImage(path string, img image.Image) error {
	ext := filepath.Ext(path)
	return writeFile(path, func(w io.Writer) error { return Encode(w, img, ext) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("编码 %s 失败: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
