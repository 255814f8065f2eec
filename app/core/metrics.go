package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sproutplan/sproutplan/pkg/metrics"
)

type Metrics struct {
	apiResponseTime  *prometheus.HistogramVec
	apiErrorCounter  *prometheus.CounterVec
	aiRequestTime    *prometheus.HistogramVec
	aiErrorCounter   *prometheus.CounterVec
	ingestChunkCount *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:  metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:  metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		aiRequestTime:    metrics.NewHistogramVec("ai_request_time", []string{"op"}),
		aiErrorCounter:   metrics.NewCounterVec("ai_error", []string{"op"}),
		ingestChunkCount: metrics.NewHistogramVec("ingest_chunk_count", nil),
	}

	return m
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) AIRequestTimer(op string) *prometheus.Timer {
	return prometheus.NewTimer(m.aiRequestTime.WithLabelValues(op))
}

func (m *Metrics) AIErrorInc(op string) {
	m.aiErrorCounter.WithLabelValues(op).Inc()
}

func (m *Metrics) IngestChunks(count int) {
	m.ingestChunkCount.WithLabelValues().Observe(float64(count))
}
