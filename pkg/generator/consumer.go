package generator

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/imgutil"
	"github.com/shouni/retro-photo-kit/pkg/metrics"

	"google.golang.org/genai"
)

// StreamConsumer はストリーミング応答を先頭から順に処理し、
// 画像チャンクはファイルに書き出し、テキストチャンクは進捗として出力します。
type StreamConsumer struct {
	store    ArtifactStore
	progress io.Writer
}

// NewStreamConsumer は StreamConsumer を初期化します。progress が nil の場合はテキストを破棄します。
func NewStreamConsumer(store ArtifactStore, progress io.Writer) (*StreamConsumer, error) {
	if store == nil {
		return nil, fmt.Errorf("store (ArtifactStore) is required")
	}
	if progress == nil {
		progress = io.Discard
	}
	return &StreamConsumer{store: store, progress: progress}, nil
}

// Consume はストリームを最後まで読み、結果を返します。
// チャンク間のバッファリングや並べ替えは行わず、受信順にインデックス 0, 1, 2... を割り当てます。
// ストリームのエラーは RemoteCallError として返し、それまでに書き出した成果物は result に残ります。
// 画像が1枚もなくてもエラーにはしません。
func (c *StreamConsumer) Consume(ctx context.Context, stream iter.Seq2[*genai.GenerateContentResponse, error], req *domain.GenerationRequest) (*domain.TransformResult, error) {
	result := &domain.TransformResult{}
	index := 0

	for resp, err := range stream {
		if err != nil {
			return result, &domain.RemoteCallError{Model: req.Model, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		chunk := Classify(resp)
		metrics.ChunksTotal.WithLabelValues(chunk.Kind.String()).Inc()

		switch chunk.Kind {
		case domain.ChunkImage:
			artifact, err := c.saveImage(ctx, req.Stem, index, chunk)
			if err != nil {
				return result, err
			}
			index++
			result.Artifacts = append(result.Artifacts, *artifact)
		case domain.ChunkText:
			result.Texts = append(result.Texts, chunk.Text)
			if _, err := fmt.Fprintln(c.progress, chunk.Text); err != nil {
				slog.WarnContext(ctx, "テキスト出力に失敗しました", "error", err)
			}
		case domain.ChunkEmpty:
			slog.DebugContext(ctx, "空のチャンクをスキップしました")
		}
	}

	return result, nil
}

func (c *StreamConsumer) saveImage(ctx context.Context, stem string, index int, chunk domain.Chunk) (*domain.OutputArtifact, error) {
	name := domain.ArtifactName(stem, index, imgutil.ExtensionFromMIME(chunk.MIMEType))

	path, err := c.store.Save(ctx, name, chunk.Data)
	if err != nil {
		return nil, fmt.Errorf("画像の保存に失敗しました (%s): %w", name, err)
	}

	metrics.ArtifactsTotal.Inc()
	metrics.ArtifactBytesTotal.Add(float64(len(chunk.Data)))

	attrs := []any{"path", path, "mime_type", chunk.MIMEType, "bytes", len(chunk.Data)}
	if info, err := imgutil.Inspect(chunk.Data); err == nil {
		attrs = append(attrs, "width", info.Width, "height", info.Height)
	}
	slog.InfoContext(ctx, "ファイルを保存しました", attrs...)

	return &domain.OutputArtifact{
		Index:    index,
		Path:     path,
		MIMEType: chunk.MIMEType,
		Size:     len(chunk.Data),
		Data:     chunk.Data,
	}, nil
}
