package domain

import "fmt"

const (
	// RoleUser はリクエストメッセージのロールです。
	RoleUser = "user"
	// ArtifactInfix は出力ファイル名の固定部分です。
	ArtifactInfix = "_retro_1980s_"
)

// ImageInput はユーザーが指定した写真の内容です。
// 読み込み後は変更しません。
type ImageInput struct {
	Path     string
	Data     []byte
	MIMEType string
}

// GenerationRequest は1回の変換で送信する単一のリクエストです。
// Parts は常に [画像, プロンプト] の2要素で構成されます。
type GenerationRequest struct {
	Model              string
	Role               string
	Image              ImageInput
	Prompt             string
	ResponseModalities []string
	ImageSize          string

	// Stem は入力ファイル名から拡張子を除いた部分で、出力ファイル名の接頭辞になります。
	Stem      string
	OutputDir string
}

// OutputArtifact は出力ディレクトリに書き出された1枚の画像です。
type OutputArtifact struct {
	Index    int
	Path     string
	MIMEType string
	Size     int
	Data     []byte // Web UI での表示用
}

// TransformResult は1回の変換で得られた成果物とテキストです。
// ストリームが途中で失敗した場合も、それまでに書き出した成果物を保持します。
type TransformResult struct {
	Artifacts []OutputArtifact
	Texts     []string
}

// ImageCount は書き出した画像の枚数を返します。
func (r *TransformResult) ImageCount() int {
	if r == nil {
		return 0
	}
	return len(r.Artifacts)
}

// ArtifactName は出力ファイル名 {stem}_retro_1980s_{index}{ext} を組み立てます。
func ArtifactName(stem string, index int, ext string) string {
	return fmt.Sprintf("%s%s%d%s", stem, ArtifactInfix, index, ext)
}
