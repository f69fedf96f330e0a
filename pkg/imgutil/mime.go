package imgutil

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	// DefaultMIMEType は拡張子から判定できない場合の入力 MIME タイプです。
	DefaultMIMEType = "image/jpeg"
	// DefaultExtension は MIME タイプから判定できない場合の出力拡張子です。
	DefaultExtension = ".png"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MIMETypeFromPath はファイルの拡張子から MIME タイプを判定します。
// 対応外の拡張子はすべて image/jpeg として扱います。
func MIMETypeFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := mimeByExt[ext]; ok {
		return mt
	}
	return DefaultMIMEType
}

// ExtensionFromMIME は MIME タイプから出力ファイルの拡張子を返します。
// 既知の画像タイプを優先し、次に OS の MIME 登録を参照し、どちらにもなければ .png を返します。
func ExtensionFromMIME(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return DefaultExtension
	}
	if ext, ok := extByMIME[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return DefaultExtension
}
