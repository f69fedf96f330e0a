package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/retro-photo-kit/pkg/domain"

	"google.golang.org/genai"
)

// NewGenAIStreamer は API キーを明示的に渡して Gemini API 用のクライアントを作成します。
// 環境変数は参照しないため、キーが空の場合は ErrConfiguration を返します。
func NewGenAIStreamer(ctx context.Context, apiKey string) (ContentStreamer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrConfiguration
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini クライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// NewGeminiTransformer は Gemini API に接続する RetroTransformer を作成します。
func NewGeminiTransformer(ctx context.Context, opts Options, options ...Option) (*RetroTransformer, error) {
	streamer, err := NewGenAIStreamer(ctx, opts.APIKey)
	if err != nil {
		return nil, err
	}
	return NewRetroTransformer(opts, streamer, options...)
}
