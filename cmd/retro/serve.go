package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/shouni/retro-photo-kit/pkg/generator"
	"github.com/shouni/retro-photo-kit/pkg/webui"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "ブラウザから写真を変換する Web UI を起動します",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "待ち受けアドレス (未指定の場合は設定の listen_addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	serverKey := cfg.APIKey
	if apiKey != "" {
		serverKey = apiKey
	}

	factory := func(ctx context.Context, key string, progress io.Writer) (generator.Transformer, error) {
		t, err := generator.NewGeminiTransformer(ctx, cfg.GeneratorOptions(key), generator.WithProgress(progress))
		if err != nil {
			return nil, err
		}
		return t, nil
	}

	srv, err := webui.NewServer(factory, webui.Options{
		APIKey:    serverKey,
		OutputDir: cfg.OutputDir,
	})
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context(), addr)
}
