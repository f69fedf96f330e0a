package generator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"iter"
	"testing"

	"google.golang.org/genai"
)

// --- Mocks ---

// scriptedStreamer は固定のチャンク列を返す ContentStreamer です。
type scriptedStreamer struct {
	chunks []*genai.GenerateContentResponse
	// failAt 番目のチャンクの代わりに err を返します (-1 で無効)。
	failAt int
	err    error

	called     bool
	lastModel  string
	lastConfig *genai.GenerateContentConfig
	contents   []*genai.Content
}

func newScriptedStreamer(chunks ...*genai.GenerateContentResponse) *scriptedStreamer {
	return &scriptedStreamer{chunks: chunks, failAt: -1}
}

func (s *scriptedStreamer) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	s.called = true
	s.lastModel = model
	s.lastConfig = config
	s.contents = contents

	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for i, chunk := range s.chunks {
			if i == s.failAt {
				yield(nil, s.err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
		if s.failAt == len(s.chunks) {
			yield(nil, s.err)
		}
	}
}

type memoryStore struct {
	files map[string][]byte
	order []string
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (m *memoryStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.files[name] = data
	m.order = append(m.order, name)
	return "mem/" + name, nil
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

// --- Chunk helpers ---

func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
			},
		}},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func emptyResponse() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{}
}

// pngBytes は 4x4 の PNG 画像を返します。
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{255, 200, 0, 255})
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}
