package generator

import "google.golang.org/genai"

const (
	DefaultModel     = "gemini-3-pro-image-preview"
	DefaultImageSize = "1K"
)

// ResponseModalities は生成時に要求する出力の種類です。
var ResponseModalities = []string{
	string(genai.ModalityImage),
	string(genai.ModalityText),
}

// Options は変換処理の設定です。API キーは環境変数からではなく、ここで明示的に渡します。
type Options struct {
	APIKey    string
	Model     string
	ImageSize string
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.ImageSize == "" {
		o.ImageSize = DefaultImageSize
	}
	return o
}
