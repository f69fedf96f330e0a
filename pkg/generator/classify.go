package generator

import (
	"github.com/shouni/retro-photo-kit/pkg/domain"

	"google.golang.org/genai"
)

// Classify はストリームの1チャンクを Image / Text / Empty のいずれかに分類します。
// 判定するのは最初の候補の先頭パーツのみです。
func Classify(resp *genai.GenerateContentResponse) domain.Chunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return domain.EmptyChunk()
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return domain.EmptyChunk()
	}

	if blob := content.Parts[0].InlineData; blob != nil && len(blob.Data) > 0 {
		return domain.ImageChunk(blob.Data, blob.MIMEType)
	}
	if text := resp.Text(); text != "" {
		return domain.TextChunk(text)
	}
	return domain.EmptyChunk()
}
