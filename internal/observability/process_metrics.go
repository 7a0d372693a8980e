package observability

import (
	"os"
	"time"

	"github.com/annel0/structure-toolkit/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics отдает нагрузку процесса в Prometheus. Значения
// снимаются через gopsutil в момент запроса /metrics.
type ProcessMetrics struct {
	proc      *process.Process
	startTime time.Time
}

// NewProcessMetrics регистрирует метрики текущего процесса в reg
func NewProcessMetrics(reg prometheus.Registerer) (*ProcessMetrics, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	pm := &ProcessMetrics{proc: proc, startTime: time.Now()}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "structkit",
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "Использование CPU процессом в процентах.",
		}, pm.CPUPercent),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "structkit",
			Subsystem: "process",
			Name:      "rss_bytes",
			Help:      "Резидентная память процесса.",
		}, pm.RSSBytes),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "structkit",
			Subsystem: "process",
			Name:      "uptime_seconds",
			Help:      "Время работы процесса.",
		}, pm.Uptime),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return pm, nil
}

// CPUPercent возвращает использование CPU процессом (0 при ошибке)
func (pm *ProcessMetrics) CPUPercent() float64 {
	v, err := pm.proc.CPUPercent()
	if err != nil {
		logging.Debug("Не удалось получить CPU процесса: %v", err)
		return 0
	}
	return v
}

// RSSBytes возвращает резидентную память процесса (0 при ошибке)
func (pm *ProcessMetrics) RSSBytes() float64 {
	mem, err := pm.proc.MemoryInfo()
	if err != nil {
		logging.Debug("Не удалось получить память процесса: %v", err)
		return 0
	}
	return float64(mem.RSS)
}

// Uptime возвращает время с момента создания метрик
func (pm *ProcessMetrics) Uptime() float64 {
	return time.Since(pm.startTime).Seconds()
}
