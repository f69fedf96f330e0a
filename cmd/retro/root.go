package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/retro-photo-kit/pkg/config"
	"github.com/shouni/retro-photo-kit/pkg/generator"
)

var version = "0.1.0"

var (
	cfg *config.Config

	configPath string
	outputDir  string
	apiKey     string
)

var rootCmd = &cobra.Command{
	Use:   "retro <image>",
	Short: "写真を1980年代のフィルム写真風に変換します",
	Long: `retro は Gemini を使って写真を1980年代のアナログフィルム写真風に変換します。

  - 1980年代のフィルム写真らしい色味・粒子・周辺減光
  - 服装を1980年代のファッションに置き換え
  - ラジカセやフィルムカメラなどの小物を追加
  - 人物の顔立ちや構図はそのまま

Examples:
  retro photo.jpg
  retro photo.jpg --output my_output
  retro photo.jpg -o results --api-key your_api_key
  retro serve --addr :8501`,
	Version:           version,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTransform,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML 設定ファイル")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API Key (未指定の場合は環境変数 GEMINI_API_KEY)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "出力ディレクトリ")
}

// setup は設定を読み込み、slog のデフォルトロガーを構成します。
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	key, err := config.ResolveAPIKey(apiKey, cfg.APIKey)
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if cmd.Flags().Changed("output") {
		dir = outputDir
	}

	transformer, err := generator.NewGeminiTransformer(ctx, cfg.GeneratorOptions(key), generator.WithProgress(out))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "1980年代レトロ写真変換")
	fmt.Fprintf(out, "入力: %s\n処理中...\n", args[0])

	result, err := transformer.Transform(ctx, args[0], dir)
	if err != nil {
		return err
	}

	if result.ImageCount() == 0 {
		slog.Warn("画像が生成されませんでした", "input", args[0], "output_dir", dir)
		return nil
	}
	fmt.Fprintf(out, "\n✓ 変換が完了しました (%d 枚)。出力ディレクトリ: %s\n", result.ImageCount(), dir)
	return nil
}
