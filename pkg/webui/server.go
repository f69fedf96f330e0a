package webui

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shouni/retro-photo-kit/pkg/config"
	"github.com/shouni/retro-photo-kit/pkg/domain"
	"github.com/shouni/retro-photo-kit/pkg/generator"
	"github.com/shouni/retro-photo-kit/pkg/imgutil"
)

const (
	defaultMaxUploadBytes = 20 << 20
	uploadField           = "image"
	fallbackUploadName    = "upload.jpg"
	shutdownTimeout       = 10 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// TransformerFactory はリクエストごとに Transformer を作成します。
// progress にはモデルから返されたテキストが書き込まれます。
type TransformerFactory func(ctx context.Context, apiKey string, progress io.Writer) (generator.Transformer, error)

// Options は Web UI の設定です。
type Options struct {
	// APIKey はフォームで未入力の場合に使うサーバー側のキーです。
	APIKey    string
	OutputDir string
	// StagingDir はアップロードされた写真を一時的に置くディレクトリです。空の場合は os.TempDir() を使います。
	StagingDir     string
	MaxUploadBytes int64
}

// Server は写真をアップロードして変換結果を表示する Web フロントエンドです。
type Server struct {
	factory TransformerFactory
	opts    Options
	tmpl    *template.Template
}

// NewServer は依存関係を注入して Server を初期化します。
func NewServer(factory TransformerFactory, opts Options) (*Server, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (TransformerFactory) is required")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = config.DefaultOutputDir
	}
	if opts.StagingDir == "" {
		opts.StagingDir = os.TempDir()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗しました: %w", err)
	}

	return &Server{factory: factory, opts: opts, tmpl: tmpl}, nil
}

// Routes は chi のルーターを返します。
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/transform", s.handleTransform)
	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run は addr で待ち受け、ctx がキャンセルされるとグレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Web UI を起動しました", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Web UI を停止しています")
		return srv.Shutdown(shutdownCtx)
	}
}

type indexView struct {
	Error        string
	OutputDir    string
	HasServerKey bool
}

type artifactView struct {
	Name    string
	Path    string
	DataURI template.URL
}

type resultView struct {
	Error     string
	Preview   template.URL
	Artifacts []artifactView
	Texts     string
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", s.indexView(""))
}

func (s *Server) indexView(msg string) indexView {
	return indexView{Error: msg, OutputDir: s.opts.OutputDir, HasServerKey: s.opts.APIKey != ""}
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		s.render(w, r, http.StatusBadRequest, "index", s.indexView("アップロードを読み込めませんでした: "+err.Error()))
		return
	}

	apiKey, err := config.ResolveAPIKey(r.FormValue("api_key"), s.opts.APIKey)
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "index", s.indexView(err.Error()))
		return
	}

	outputDir, err := s.outputDir(r.FormValue("output_dir"))
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "index", s.indexView(err.Error()))
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "index", s.indexView("写真を選択してください"))
		return
	}
	defer file.Close()

	original, err := io.ReadAll(file)
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "index", s.indexView("アップロードを読み込めませんでした: "+err.Error()))
		return
	}

	stagedPath, cleanup, err := s.stage(header.Filename, original)
	if err != nil {
		slog.ErrorContext(ctx, "アップロードの一時保存に失敗しました", "error", err)
		s.render(w, r, http.StatusInternalServerError, "index", s.indexView("アップロードの一時保存に失敗しました"))
		return
	}
	defer cleanup()

	progress := new(bytes.Buffer)
	transformer, err := s.factory(ctx, apiKey, progress)
	if err != nil {
		s.render(w, r, statusFor(err), "index", s.indexView(err.Error()))
		return
	}

	result, err := transformer.Transform(ctx, stagedPath, outputDir)

	view := resultView{
		Preview: previewURI(stagedPath, original),
		Texts:   strings.TrimSpace(progress.String()),
	}
	if result != nil {
		for _, a := range result.Artifacts {
			view.Artifacts = append(view.Artifacts, artifactView{
				Name:    filepath.Base(a.Path),
				Path:    a.Path,
				DataURI: dataURI(a.MIMEType, a.Data),
			})
		}
	}

	status := http.StatusOK
	if err != nil {
		slog.ErrorContext(ctx, "変換に失敗しました", "error", err, "images", result.ImageCount())
		view.Error = err.Error()
		status = statusFor(err)
	} else if result.ImageCount() == 0 {
		slog.WarnContext(ctx, "画像が生成されませんでした", "input", header.Filename)
	}

	s.render(w, r, status, "result", view)
}

// outputDir はフォームの値を検証します。空の場合はサーバー設定の出力先を使います。
// フォームからは作業ディレクトリ配下の相対パスのみ受け付けます。
func (s *Server) outputDir(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == s.opts.OutputDir {
		return s.opts.OutputDir, nil
	}
	if !filepath.IsLocal(value) {
		return "", fmt.Errorf("出力ディレクトリには相対パスを指定してください: %q", value)
	}
	return value, nil
}

// stage はアップロードされた写真を一意なディレクトリに元のファイル名で保存します。
// 出力ファイル名の stem は元のファイル名になります。
func (s *Server) stage(filename string, data []byte) (string, func(), error) {
	dir := filepath.Join(s.opts.StagingDir, "retro-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("一時ディレクトリの削除に失敗しました", "dir", dir, "error", err)
		}
	}

	path := filepath.Join(dir, uploadName(filename))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func uploadName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return fallbackUploadName
	}
	return name
}

func statusFor(err error) int {
	var remoteErr *domain.RemoteCallError
	switch {
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrNotFound):
		return http.StatusBadRequest
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// previewURI は元の写真を軽量な JPEG に変換して表示用の data URI にします。
// デコードできない形式 (webp 等) はそのまま埋め込みます。
func previewURI(path string, data []byte) template.URL {
	if preview, err := imgutil.CompressToJPEG(data, imgutil.PreviewQuality); err == nil {
		return dataURI("image/jpeg", preview)
	}
	return dataURI(imgutil.MIMETypeFromPath(path), data)
}

func dataURI(mimeType string, data []byte) template.URL {
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	buf := new(bytes.Buffer)
	if err := s.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "テンプレートの描画に失敗しました", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
