package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "retro"

var (
	// ChunksTotal は受信したストリームチャンク数です (kind: image, text, empty)。
	ChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Total number of streamed response chunks by kind",
		},
		[]string{"kind"},
	)

	// ArtifactsTotal は書き出した画像ファイル数です。
	ArtifactsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Total number of image files written",
		},
	)

	// ArtifactBytesTotal は書き出した画像の合計バイト数です。
	ArtifactBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Total bytes of image files written",
		},
	)

	// TransformsTotal は変換リクエスト数です (status: success, empty, config_error, not_found, remote_error, error)。
	TransformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Total number of transform invocations by status",
		},
		[]string{"status"},
	)
)
