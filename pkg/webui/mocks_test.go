package webui

import (
	"context"
	"io"
	"os"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/generator"
)

// --- Mocks ---

type fakeTransformer struct {
	result   *domain.TransformResult
	err      error
	progress io.Writer
	text     string

	inputPath   string
	outputDir   string
	stagedBytes []byte
}

func (f *fakeTransformer) Transform(ctx context.Context, inputPath, outputDir string) (*domain.TransformResult, error) {
	f.inputPath = inputPath
	f.outputDir = outputDir
	f.stagedBytes, _ = os.ReadFile(inputPath)
	if f.text != "" {
		_, _ = io.WriteString(f.progress, f.text+"\n")
	}
	return f.result, f.err
}

type fakeFactory struct {
	transformer *fakeTransformer
	err         error
	called      bool
	apiKey      string
}

func (f *fakeFactory) New(ctx context.Context, apiKey string, progress io.Writer) (generator.Transformer, error) {
	f.called = true
	f.apiKey = apiKey
	if f.err != nil {
		return nil, f.err
	}
	f.transformer.progress = progress
	return f.transformer, nil
}
