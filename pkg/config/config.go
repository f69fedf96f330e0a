package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/generator"
)

const (
	DefaultOutputDir  = "output"
	DefaultListenAddr = ":8501"
	DefaultLogLevel   = "info"
)

var validImageSizes = map[string]bool{
	"1K": true,
	"2K": true,
	"4K": true,
}

// Config はアプリケーション全体の設定です。
// 優先順位は 環境変数 (.env を含む) > YAML ファイル > デフォルト値 です。
// API キーはファイルからは読み込みません。
type Config struct {
	APIKey     string `yaml:"-" env:"GEMINI_API_KEY"`
	Model      string `yaml:"model" env:"RETRO_MODEL"`
	ImageSize  string `yaml:"image_size" env:"RETRO_IMAGE_SIZE"`
	OutputDir  string `yaml:"output_dir" env:"RETRO_OUTPUT_DIR"`
	ListenAddr string `yaml:"listen_addr" env:"RETRO_LISTEN_ADDR"`
	LogLevel   string `yaml:"log_level" env:"RETRO_LOG_LEVEL"`
}

// Default はデフォルト値で埋めた Config を返します。
func Default() *Config {
	return &Config{
		Model:      generator.DefaultModel,
		ImageSize:  generator.DefaultImageSize,
		OutputDir:  DefaultOutputDir,
		ListenAddr: DefaultListenAddr,
		LogLevel:   DefaultLogLevel,
	}
}

// Load は設定を読み込みます。path が空の場合は YAML ファイルを読みません。
// .env / .env.local が存在すればプロセスの環境変数に読み込みます (既存の値は上書きしません)。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	loadDotEnv(".env", ".env.local")

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.ImageSize = strings.ToUpper(strings.TrimSpace(cfg.ImageSize))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証します。API キーの有無はここでは確認しません。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model が空です")
	}
	if !validImageSizes[c.ImageSize] {
		return fmt.Errorf("image_size は 1K, 2K, 4K のいずれかを指定してください: %q", c.ImageSize)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir が空です")
	}
	return nil
}

// GeneratorOptions は generator 用の設定に変換します。
func (c *Config) GeneratorOptions(apiKey string) generator.Options {
	return generator.Options{
		APIKey:    apiKey,
		Model:     c.Model,
		ImageSize: c.ImageSize,
	}
}

// SlogLevel は LogLevel を slog.Level に変換します。不明な値は Info として扱います。
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveAPIKey は API キーを 明示指定 > 環境変数 (fromEnv) の順に決定します。
// どちらもない場合は ErrConfiguration を返します。
func ResolveAPIKey(explicit, fromEnv string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(fromEnv); key != "" {
		return key, nil
	}
	return "", domain.ErrConfiguration
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗しました (%s): %w", path, err)
	}
	return nil
}

func loadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn(".env ファイルの読み込みに失敗しました", "file", f, "error", err)
			}
		}
	}
}
