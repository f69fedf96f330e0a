package domain

// ChunkKind はストリームの1チャンクを分類した結果の種別です。
type ChunkKind int

const (
	// ChunkEmpty は候補・コンテンツ・パーツのいずれかが欠けている、または利用できる内容がないチャンクです。
	ChunkEmpty ChunkKind = iota
	// ChunkImage は先頭パーツにインライン画像データを持つチャンクです。
	ChunkImage
	// ChunkText はテキスト断片を持つチャンクです。
	ChunkText
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkImage:
		return "image"
	case ChunkText:
		return "text"
	default:
		return "empty"
	}
}

// Chunk は Image / Text / Empty のいずれか1つを表すタグ付きユニオンです。
// Kind に対応するフィールドのみが意味を持ちます。
type Chunk struct {
	Kind     ChunkKind
	Data     []byte
	MIMEType string
	Text     string
}

// ImageChunk は画像チャンクを作成します。
func ImageChunk(data []byte, mimeType string) Chunk {
	return Chunk{Kind: ChunkImage, Data: data, MIMEType: mimeType}
}

// TextChunk はテキストチャンクを作成します。
func TextChunk(text string) Chunk {
	return Chunk{Kind: ChunkText, Text: text}
}

// EmptyChunk は内容のないチャンクです。
func EmptyChunk() Chunk {
	return Chunk{Kind: ChunkEmpty}
}
