package processor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - Prometheus-метрики обработчиков. Нулевой указатель допустим:
// все методы в этом случае ничего не делают.
type Metrics struct {
	decisions *prometheus.CounterVec
	pieces    prometheus.Counter
	replaced  prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg.
// При reg == nil используется глобальный регистр Prometheus.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "structkit",
			Subsystem: "processor",
			Name:      "decisions_total",
			Help:      "Решения обработчиков по блокам, по типу обработчика и исходу.",
		}, []string{"rule", "outcome"}),
		pieces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "structkit",
			Subsystem: "processor",
			Name:      "pieces_total",
			Help:      "Количество обработанных частей структур.",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "structkit",
			Subsystem: "processor",
			Name:      "blocks_replaced_total",
			Help:      "Блоки, состояние которых изменил хотя бы один обработчик.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "structkit",
			Subsystem: "processor",
			Name:      "piece_duration_seconds",
			Help:      "Время обработки одной части структуры.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	reg.MustRegister(m.decisions, m.pieces, m.replaced, m.duration)
	return m
}

func (m *Metrics) observeDecision(rule, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(rule, outcome).Inc()
}

func (m *Metrics) observePiece(replaced int, seconds float64) {
	if m == nil {
		return
	}
	m.pieces.Inc()
	m.replaced.Add(float64(replaced))
	m.duration.Observe(seconds)
}
