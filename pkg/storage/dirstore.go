package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirStore は成果物をローカルディレクトリに書き出します。
type DirStore struct {
	dir string
}

// NewDirStore は dir を作成 (既に存在する場合は何もしない) して DirStore を返します。
func NewDirStore(dir string) (*DirStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: 出力ディレクトリが指定されていません")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: 出力ディレクトリの作成に失敗しました: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir は書き出し先ディレクトリを返します。
func (s *DirStore) Dir() string {
	return s.dir
}

// Save は data を name として書き出し、そのパスを返します。既存ファイルは上書きします。
func (s *DirStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, clean)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: ファイルの書き込みに失敗しました: %w", err)
	}
	return path, nil
}

// sanitizeName は出力ディレクトリの外に出るファイル名を拒否します。
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: ファイル名が空です")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("storage: 不正なファイル名です: %q", name)
	}
	return name, nil
}
