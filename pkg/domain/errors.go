package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration は API キーが設定されていないことを示します。
	ErrConfiguration = errors.New("GEMINI_API_KEY が設定されていません。環境変数または --api-key で指定してください")
	// ErrNotFound は入力画像が存在しないことを示します。
	ErrNotFound = errors.New("画像ファイルが見つかりません")
)

// NotFoundError は見つからなかったパスを保持します。
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Path)
}

// Is により errors.Is(err, ErrNotFound) が成立します。
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RemoteCallError はストリーミング生成呼び出し中に発生したエラーです。
// 元のエラーは Unwrap で取り出せます。
type RemoteCallError struct {
	Model string
	Err   error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("Gemini ストリーミング生成エラー (model: %s): %v", e.Model, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
