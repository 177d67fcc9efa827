// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層・ミドルウェア・ワーカーから利用する。
type MetricsCollector interface {
	RecordLogin(success bool)
	RecordRaffleCreated()
	RecordEntryAdmitted()
	RecordEntryRejected(reason string)
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordTokensPurged(count int64)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	logins          *prometheus.CounterVec
	rafflesCreated  prometheus.Counter
	entriesAdmitted prometheus.Counter
	entriesRejected *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	tokensPurged    prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_logins_total",
			Help: "結果別のログイン試行数",
		}, []string{"result"}),
		rafflesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raffle_raffles_created_total",
			Help: "作成された抽選の合計数",
		}),
		entriesAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raffle_entries_admitted_total",
			Help: "受け付けたエントリの合計数",
		}),
		entriesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_entries_rejected_total",
			Help: "理由別の拒否されたエントリ数",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "raffle_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		tokensPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raffle_revoked_tokens_purged_total",
			Help: "クリーンアップで削除した失効トークンの合計数",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.rafflesCreated,
		c.entriesAdmitted,
		c.entriesRejected,
		c.httpStatus,
		c.requestDuration,
		c.tokensPurged,
	)

	return c
}

// RecordLogin はログイン結果を記録する。
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordRaffleCreated は抽選作成を記録する。
func (c *Collector) RecordRaffleCreated() {
	c.rafflesCreated.Inc()
}

// RecordEntryAdmitted はエントリ受付を記録する。
func (c *Collector) RecordEntryAdmitted() {
	c.entriesAdmitted.Inc()
}

// RecordEntryRejected はエントリ拒否を理由付きで記録する。
func (c *Collector) RecordEntryRejected(reason string) {
	c.entriesRejected.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordTokensPurged は削除した失効トークン数を記録する。
func (c *Collector) RecordTokensPurged(count int64) {
	c.tokensPurged.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントのみを提供するHTTPハンドラーを返す。
// APIルーターを持たないworkerプロセスで使う。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
