package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// PreviewQuality は Web UI のプレビュー用 JPEG 品質です。
const PreviewQuality = 75

// Info は画像ヘッダから読み取ったメタデータです。
type Info struct {
	Format string
	Width  int
	Height int
}

// Inspect は画像全体をデコードせずにフォーマットとサイズを取得します。
// image.DecodeConfig が対応していないフォーマット (webp 等) はエラーになります。
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, err
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// CompressToJPEG は画像データ（PNG, GIF, JPEG）を指定品質の JPEG に再エンコードします。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
