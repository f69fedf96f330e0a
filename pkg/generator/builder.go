package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/imgutil"
	"github.com/shouni/retro-photo-kit/pkg/prompt"

	"google.golang.org/genai"
)

// RequestBuilder は入力画像と固定プロンプトから GenerationRequest を組み立てます。
// ネットワーク通信は行いません。
type RequestBuilder struct {
	opts Options
}

// NewRequestBuilder は RequestBuilder を初期化します。
func NewRequestBuilder(opts Options) *RequestBuilder {
	return &RequestBuilder{opts: opts.withDefaults()}
}

// Build は以下の順に検証してからリクエストを作成します。
//  1. API キーが設定されていること (ファイル I/O の前に確認)
//  2. 入力画像が存在すること (出力ディレクトリ作成の前に確認)
//  3. 出力ディレクトリが存在する、または作成できること
func (b *RequestBuilder) Build(inputPath, outputDir string) (*domain.GenerationRequest, error) {
	if strings.TrimSpace(b.opts.APIKey) == "" {
		return nil, domain.ErrConfiguration
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: inputPath}
		}
		return nil, fmt.Errorf("入力画像の確認に失敗しました: %w", err)
	}
	if info.IsDir() {
		return nil, &domain.NotFoundError{Path: inputPath}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("入力画像の読み込みに失敗しました: %w", err)
	}

	return &domain.GenerationRequest{
		Model: b.opts.Model,
		Role:  domain.RoleUser,
		Image: domain.ImageInput{
			Path:     inputPath,
			Data:     data,
			MIMEType: imgutil.MIMETypeFromPath(inputPath),
		},
		Prompt:             prompt.Retro1980s,
		ResponseModalities: append([]string(nil), ResponseModalities...),
		ImageSize:          b.opts.ImageSize,
		Stem:               fileStem(inputPath),
		OutputDir:          outputDir,
	}, nil
}

// ToGenAI はリクエストを SDK の Content と GenerateContentConfig に変換します。
// Content は user ロールの1件で、パーツは [画像, プロンプト] の順です。
func ToGenAI(req *domain.GenerationRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType),
		genai.NewPartFromText(req.Prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.Role(req.Role)),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: req.ResponseModalities,
		ImageConfig: &genai.ImageConfig{
			ImageSize: req.ImageSize,
		},
	}
	return contents, config
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
