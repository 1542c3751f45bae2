package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/voxelcore/internal/logging"
)

// Exporter управляет HTTP-эндпоинтом Prometheus и раз в секунду обновляет метрики процесса.
// Разреженность мира видна по RSS: пустые области не должны занимать память.
type Exporter struct {
	registry *prometheus.Registry
	proc     *process.Process
	server   *http.Server
	quit     chan struct{}
	done     chan struct{}

	rss prometheus.Gauge
	cpu prometheus.Gauge
}

// NewExporter создаёт экспортер для registry, но не запускает HTTP-сервер.
func NewExporter(registry *prometheus.Registry) (*Exporter, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть текущий процесс: %w", err)
	}

	e := &Exporter{
		registry: registry,
		proc:     proc,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		rss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "resident_memory_bytes",
			Help:      "Резидентная память процесса.",
		}),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом в процентах.",
		}),
	}

	registry.MustRegister(e.rss, e.cpu)
	return e, nil
}

// Handler возвращает HTTP-обработчик /metrics для регистра экспортёра
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func (e *Exporter) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	e.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	go e.loop()
}

// Stop останавливает обновление метрик и HTTP-сервер.
func (e *Exporter) Stop() {
	if e.server == nil {
		return
	}
	close(e.quit)
	<-e.done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.server.Shutdown(ctx); err != nil {
		logging.Warn("Ошибка остановки Prometheus HTTP сервера: %v", err)
	}
}

// Update снимает показатели процесса
func (e *Exporter) Update() error {
	mem, err := e.proc.MemoryInfo()
	if err != nil {
		return fmt.Errorf("ошибка чтения памяти процесса: %w", err)
	}
	e.rss.Set(float64(mem.RSS))

	cpuPercent, err := e.proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, берём системную
		percents, sysErr := cpu.Percent(0, false)
		if sysErr != nil || len(percents) == 0 {
			return nil
		}
		cpuPercent = percents[0]
	}
	e.cpu.Set(cpuPercent)
	return nil
}

func (e *Exporter) loop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer close(e.done)

	for {
		select {
		case <-ticker.C:
			if err := e.Update(); err != nil {
				logging.Debug("Метрики процесса недоступны: %v", err)
			}
		case <-e.quit:
			return
		}
	}
}
