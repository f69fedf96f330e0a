package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewRetroTransformer(t *testing.T) {
	_, err := NewRetroTransformer(Options{APIKey: "key"}, nil)
	assert.Error(t, err, "streamer が nil の場合はエラー")
}

func TestRetroTransformer_Transform(t *testing.T) {
	ctx := context.Background()

	t.Run("PNG チャンク1件で photo_retro_1980s_0.png が1つだけ作成される", func(t *testing.T) {
		input := writeInput(t, "photo.jpg", []byte{0xFF, 0xD8, 0xFF})
		outDir := filepath.Join(t.TempDir(), "out")
		png := pngBytes(t)
		streamer := newScriptedStreamer(imageResponse("image/png", png))

		tr, err := NewRetroTransformer(Options{APIKey: "key"}, streamer)
		require.NoError(t, err)

		result, err := tr.Transform(ctx, input, outDir)
		require.NoError(t, err)

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "photo_retro_1980s_0.png", entries[0].Name())

		got, err := os.ReadFile(filepath.Join(outDir, "photo_retro_1980s_0.png"))
		require.NoError(t, err)
		assert.Equal(t, png, got)

		require.Equal(t, 1, result.ImageCount())
		assert.Equal(t, filepath.Join(outDir, "photo_retro_1980s_0.png"), result.Artifacts[0].Path)
	})

	t.Run("モデル・画像・プロンプト・設定がストリーマーに渡される", func(t *testing.T) {
		data := []byte("gif-bytes")
		input := writeInput(t, "party.gif", data)
		streamer := newScriptedStreamer()

		tr, err := NewRetroTransformer(Options{APIKey: "key", Model: "test-model", ImageSize: "2K"}, streamer)
		require.NoError(t, err)

		_, err = tr.Transform(ctx, input, t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "test-model", streamer.lastModel)
		require.Len(t, streamer.contents, 1)
		assert.Equal(t, string(genai.RoleUser), streamer.contents[0].Role)
		require.Len(t, streamer.contents[0].Parts, 2)
		assert.Equal(t, data, streamer.contents[0].Parts[0].InlineData.Data)
		assert.Equal(t, "image/gif", streamer.contents[0].Parts[0].InlineData.MIMEType)
		assert.Equal(t, prompt.Retro1980s, streamer.contents[0].Parts[1].Text)
		assert.Equal(t, "2K", streamer.lastConfig.ImageConfig.ImageSize)
	})

	t.Run("テキストチャンクは progress に出力される", func(t *testing.T) {
		input := writeInput(t, "photo.jpg", []byte("x"))
		progress := new(bytes.Buffer)
		streamer := newScriptedStreamer(textResponse("Working on it"), emptyResponse())

		tr, err := NewRetroTransformer(Options{APIKey: "key"}, streamer, WithProgress(progress))
		require.NoError(t, err)

		result, err := tr.Transform(ctx, input, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 0, result.ImageCount())
		assert.Equal(t, "Working on it\n", progress.String())
	})

	t.Run("API キーがない場合は通信もファイル作成も行わない", func(t *testing.T) {
		input := writeInput(t, "photo.jpg", []byte("x"))
		outDir := filepath.Join(t.TempDir(), "out")
		streamer := newScriptedStreamer(imageResponse("image/png", []byte("a")))

		tr, err := NewRetroTransformer(Options{}, streamer)
		require.NoError(t, err)

		_, err = tr.Transform(ctx, input, outDir)

		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.False(t, streamer.called)
		assert.NoDirExists(t, outDir)
	})

	t.Run("入力画像がない場合は NotFound で通信しない", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")
		streamer := newScriptedStreamer()

		tr, err := NewRetroTransformer(Options{APIKey: "key"}, streamer)
		require.NoError(t, err)

		_, err = tr.Transform(ctx, filepath.Join(t.TempDir(), "nope.jpg"), outDir)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, streamer.called)
		assert.NoDirExists(t, outDir)
	})

	t.Run("ストア作成の失敗はそのまま返す", func(t *testing.T) {
		input := writeInput(t, "photo.jpg", []byte("x"))
		storeErr := errors.New("store unavailable")
		streamer := newScriptedStreamer()

		tr, err := NewRetroTransformer(Options{APIKey: "key"}, streamer, WithStoreFactory(func(string) (ArtifactStore, error) {
			return nil, storeErr
		}))
		require.NoError(t, err)

		_, err = tr.Transform(ctx, input, t.TempDir())
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, streamer.called)
	})

	t.Run("同じ入力を再実行すると同名ファイルを上書きする", func(t *testing.T) {
		input := writeInput(t, "photo.jpg", []byte("x"))
		outDir := t.TempDir()

		first, err := NewRetroTransformer(Options{APIKey: "key"}, newScriptedStreamer(imageResponse("image/png", []byte("first"))))
		require.NoError(t, err)
		_, err = first.Transform(ctx, input, outDir)
		require.NoError(t, err)

		second, err := NewRetroTransformer(Options{APIKey: "key"}, newScriptedStreamer(imageResponse("image/png", []byte("second"))))
		require.NoError(t, err)
		_, err = second.Transform(ctx, input, outDir)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(outDir, "photo_retro_1980s_0.png"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})
}

func TestStatus(t *testing.T) {
	ok := &domain.TransformResult{Artifacts: []domain.OutputArtifact{{}}}

	assert.Equal(t, "success", Status(ok, nil))
	assert.Equal(t, "empty", Status(&domain.TransformResult{}, nil))
	assert.Equal(t, "config_error", Status(nil, domain.ErrConfiguration))
	assert.Equal(t, "not_found", Status(nil, &domain.NotFoundError{Path: "x"}))
	assert.Equal(t, "remote_error", Status(ok, &domain.RemoteCallError{Err: errors.New("boom")}))
	assert.Equal(t, "error", Status(nil, errors.New("other")))
}
