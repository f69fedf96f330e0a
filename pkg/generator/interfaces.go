package generator

import (
	"context"
	"iter"

	"github.com/shouni/retro-photo-kit/pkg/domain"

	"google.golang.org/genai"
)

// ContentStreamer はストリーミング生成を行うリモート呼び出しです。
// *genai.Models がこのインターフェースを満たします。テストでは固定のチャンク列を返す実装を注入します。
type ContentStreamer interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// ArtifactStore は生成画像の書き出し先です。
type ArtifactStore interface {
	// Save は data を name として保存し、保存先のパスを返します。同名のファイルは上書きします。
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Transformer は入力画像を変換して出力ディレクトリに書き出す統合窓口です。
type Transformer interface {
	Transform(ctx context.Context, inputPath, outputDir string) (*domain.TransformResult, error)
}
