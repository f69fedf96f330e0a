package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/metrics"
	"github.com/shouni/retro-photo-kit/pkg/storage"
)

// StoreFactory は出力ディレクトリごとに ArtifactStore を作成します。
type StoreFactory func(dir string) (ArtifactStore, error)

// Option は RetroTransformer の任意設定です。
type Option func(*RetroTransformer)

// WithProgress はテキストチャンクの出力先を設定します。
func WithProgress(w io.Writer) Option {
	return func(t *RetroTransformer) {
		t.progress = w
	}
}

// WithStoreFactory は成果物の書き出し先を差し替えます。
func WithStoreFactory(f StoreFactory) Option {
	return func(t *RetroTransformer) {
		t.newStore = f
	}
}

func dirStoreFactory(dir string) (ArtifactStore, error) {
	store, err := storage.NewDirStore(dir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// RetroTransformer は RequestBuilder・ContentStreamer・StreamConsumer を組み合わせて
// 1回の変換を実行します。
type RetroTransformer struct {
	builder  *RequestBuilder
	streamer ContentStreamer
	progress io.Writer
	newStore StoreFactory
}

// NewRetroTransformer は依存関係を注入して RetroTransformer を初期化します。
func NewRetroTransformer(opts Options, streamer ContentStreamer, options ...Option) (*RetroTransformer, error) {
	if streamer == nil {
		return nil, fmt.Errorf("streamer (ContentStreamer) is required")
	}

	t := &RetroTransformer{
		builder:  NewRequestBuilder(opts),
		streamer: streamer,
		newStore: dirStoreFactory,
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// Transform は inputPath の写真を変換し、outputDir に {stem}_retro_1980s_{n}{ext} として書き出します。
func (t *RetroTransformer) Transform(ctx context.Context, inputPath, outputDir string) (result *domain.TransformResult, err error) {
	defer func() {
		metrics.TransformsTotal.WithLabelValues(Status(result, err)).Inc()
	}()

	req, err := t.builder.Build(inputPath, outputDir)
	if err != nil {
		return nil, err
	}

	store, err := t.newStore(req.OutputDir)
	if err != nil {
		return nil, err
	}
	consumer, err := NewStreamConsumer(store, t.progress)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "画像を変換しています",
		"input", inputPath, "mime_type", req.Image.MIMEType, "model", req.Model, "image_size", req.ImageSize)

	contents, config := ToGenAI(req)
	stream := t.streamer.GenerateContentStream(ctx, req.Model, contents, config)

	result, err = consumer.Consume(ctx, stream, req)
	if err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "変換が完了しました", "output_dir", req.OutputDir, "images", result.ImageCount())
	return result, nil
}

// Status は変換結果をメトリクス用のラベルに変換します。
func Status(result *domain.TransformResult, err error) string {
	var remoteErr *domain.RemoteCallError
	switch {
	case err == nil && result.ImageCount() == 0:
		return "empty"
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrConfiguration):
		return "config_error"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.As(err, &remoteErr):
		return "remote_error"
	default:
		return "error"
	}
}
