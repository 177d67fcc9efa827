package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetricFamily は指定名のメトリクスファミリーを返す。見つからない場合はnilを返す。
func findMetricFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

// labeledCounter はラベル値ごとのカウンタ値を返す。
func labeledCounter(mf *dto.MetricFamily) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range mf.GetMetric() {
		out[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	return out
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordLogin_IncrementsCounterWithResult はログイン結果がラベル付きで記録されることを検証する。
func TestRecordLogin_IncrementsCounterWithResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordLogin(false)
	c.RecordLogin(false)

	mf := findMetricFamily(t, reg, "raffle_logins_total")
	if mf == nil {
		t.Fatal("raffle_logins_total metric not found")
	}
	got := labeledCounter(mf)
	if got["success"] != 1 || got["failure"] != 2 {
		t.Errorf("logins_total = %v, want success=1 failure=2", got)
	}
}

// TestRecordRaffleCreated_IncrementsCounter は抽選作成カウンタが増加することを検証する。
func TestRecordRaffleCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRaffleCreated()
	c.RecordRaffleCreated()

	mf := findMetricFamily(t, reg, "raffle_raffles_created_total")
	if mf == nil {
		t.Fatal("raffle_raffles_created_total metric not found")
	}
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 2 {
		t.Errorf("raffles_created_total = %v, want 2", val)
	}
}

// TestRecordEntries はエントリ受付・拒否カウンタを検証する。
func TestRecordEntries(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEntryAdmitted()
	c.RecordEntryRejected("inactive")
	c.RecordEntryRejected("inactive")
	c.RecordEntryRejected("not_found")

	admitted := findMetricFamily(t, reg, "raffle_entries_admitted_total")
	if admitted == nil {
		t.Fatal("raffle_entries_admitted_total metric not found")
	}
	if val := admitted.GetMetric()[0].GetCounter().GetValue(); val != 1 {
		t.Errorf("entries_admitted_total = %v, want 1", val)
	}

	rejected := findMetricFamily(t, reg, "raffle_entries_rejected_total")
	if rejected == nil {
		t.Fatal("raffle_entries_rejected_total metric not found")
	}
	got := labeledCounter(rejected)
	if got["inactive"] != 2 || got["not_found"] != 1 {
		t.Errorf("entries_rejected_total = %v", got)
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(201)
	c.RecordHTTPStatus(201)
	c.RecordHTTPStatus(404)

	mf := findMetricFamily(t, reg, "raffle_http_status_total")
	if mf == nil {
		t.Fatal("raffle_http_status_total metric not found")
	}
	got := labeledCounter(mf)
	if len(got) != 2 || got["201"] != 2 || got["404"] != 1 {
		t.Errorf("http_status_total = %v, want 201=2 404=1", got)
	}
}

// TestRecordRequestDuration_ObservesHistogram は処理時間のヒストグラムに値が記録されることを検証する。
func TestRecordRequestDuration_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestDuration(100 * time.Millisecond)
	c.RecordRequestDuration(2 * time.Second)

	mf := findMetricFamily(t, reg, "raffle_http_request_duration_seconds")
	if mf == nil {
		t.Fatal("raffle_http_request_duration_seconds metric not found")
	}
	h := mf.GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 2 {
		t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
	}
	// 合計は0.1 + 2.0 = 2.1秒
	if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
		t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
	}
}

// TestRecordTokensPurged_AddsCount は失効トークン削除数が加算されることを検証する。
func TestRecordTokensPurged_AddsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTokensPurged(10)
	c.RecordTokensPurged(5)

	mf := findMetricFamily(t, reg, "raffle_revoked_tokens_purged_total")
	if mf == nil {
		t.Fatal("raffle_revoked_tokens_purged_total metric not found")
	}
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 15 {
		t.Errorf("revoked_tokens_purged_total = %v, want 15", val)
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordRaffleCreated()
	c.RecordEntryAdmitted()
	c.RecordEntryRejected("inactive")
	c.RecordHTTPStatus(200)
	c.RecordRequestDuration(500 * time.Millisecond)

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	expectedMetrics := []string{
		"raffle_logins_total",
		"raffle_raffles_created_total",
		"raffle_entries_admitted_total",
		"raffle_entries_rejected_total",
		"raffle_http_status_total",
		"raffle_http_request_duration_seconds",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestCollector_ImplementsMetricsCollectorInterface はCollectorがMetricsCollectorインターフェースを実装することを検証する。
func TestCollector_ImplementsMetricsCollectorInterface(t *testing.T) {
	reg := prometheus.NewRegistry()
	var _ MetricsCollector = NewCollector(reg)
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordRaffleCreated()
	c2.RecordRaffleCreated()
	c2.RecordRaffleCreated()

	val1 := findMetricFamily(t, reg1, "raffle_raffles_created_total").GetMetric()[0].GetCounter().GetValue()
	val2 := findMetricFamily(t, reg2, "raffle_raffles_created_total").GetMetric()[0].GetCounter().GetValue()

	if val1 != 1 {
		t.Errorf("reg1 raffles_created = %v, want 1", val1)
	}
	if val2 != 2 {
		t.Errorf("reg2 raffles_created = %v, want 2", val2)
	}
}
