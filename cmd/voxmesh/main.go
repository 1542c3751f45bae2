package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/metrics"
	"github.com/annel0/voxelcore/internal/terrain"
	"github.com/annel0/voxelcore/internal/world"
)

func main() {
	os.Exit(realMain())
}

// realMain возвращает код выхода; отложенные остановки успевают выполниться до os.Exit
func realMain() int {
	var (
		configPath  = flag.String("config", "", "Путь к YAML конфигурации (иначе VOXEL_CONFIG или значения по умолчанию)")
		outPath     = flag.String("out", "mesh.vxmg", "Файл для дампа геометрии")
		metricsAddr = flag.String("metrics-addr", "", "Адрес Prometheus /metrics (например, :2112)")
		compress    = flag.Bool("compress", true, "Сжимать дамп zstd")
		serve       = flag.Bool("serve", false, "После построения продолжать отдавать метрики до сигнала завершения")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("❌ Ошибка загрузки конфигурации: %v", err)
		return 1
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("❌ %v", err)
		return 1
	}

	logging.Configure(logging.Options{
		Dir:          cfg.Logging.Dir,
		ConsoleLevel: cfg.Logging.GetLevel(),
		FileLevel:    logging.DEBUG,
	})
	if err := logging.InitDefaultLogger("voxmesh"); err != nil {
		log.Printf("❌ Ошибка инициализации логирования: %v", err)
		return 1
	}
	defer logging.CloseDefaultLogger()

	loggers := logging.GetLoggerManager()
	defer loggers.CloseAll()
	if err := cfg.Logging.ApplyComponentLevels(loggers); err != nil {
		logging.Error("❌ %v", err)
		return 1
	}

	registry := prometheus.NewRegistry()
	worldMetrics := metrics.NewWorldMetrics(registry)

	var exporter *metrics.Exporter
	if addr := cfg.Metrics.GetMetricsAddr(); addr != "" {
		exporter, err = metrics.NewExporter(registry)
		if err != nil {
			logging.Error("❌ Ошибка создания экспортёра метрик: %v", err)
		} else {
			exporter.StartHTTP(addr)
			defer exporter.Stop()
		}
	}

	if err := run(cfg, worldMetrics, *outPath, *compress); err != nil {
		logging.Error("❌ %v", err)
		return 1
	}
	logging.Debug("Компоненты логирования: %v", loggers.ListComponents())

	if *serve && exporter != nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		logging.Info("Ожидание сигнала завершения...")
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}
	return 0
}

func run(cfg *config.Config, worldMetrics *metrics.WorldMetrics, outPath string, compress bool) error {
	coords, err := cfg.World.CoordinateMetrics()
	if err != nil {
		return err
	}

	w, err := world.NewWorld(coords, cfg.World.VoxelStateSize, world.WithObserver(worldMetrics))
	if err != nil {
		return err
	}
	logging.Info("🌍 Мир: чанк %v, суперчанк %v, мир %v, область координат %v",
		coords.ChunkSize(), coords.SuperChunkSize(), coords.WorldSize(), coords.VoxelBounds())

	start := time.Now()
	gen := terrain.NewGenerator(cfg.Terrain)
	written, err := gen.Fill(w, cfg.Terrain.Area())
	if err != nil {
		return err
	}
	logging.Info("Генерация: %d вокселей, %d чанков, %d суперчанков за %v",
		written, w.ChunkCount(), w.SuperChunkCount(), time.Since(start))

	logging.Debug("Границы заполненных вокселей: %v", w.ComputeVoxelBounds(terrain.IsSolid))

	start = time.Now()
	mesher := mesh.NewNaiveMesher(0)
	faces := mesher.AddFaces(w.ChunkVoxelFaces(w.ComputeChunkBounds(), terrain.IsSolid))
	geometry := mesher.Geometry()
	worldMetrics.ObserveGeometry(geometry)
	logging.Info("Меш: %d граней, %d вершин за %v", faces, geometry.VertexCount(), time.Since(start))

	if err := writeDump(outPath, geometry, compress); err != nil {
		return err
	}
	logging.Info("✅ Геометрия записана в %s (zstd=%v)", outPath, compress)
	return nil
}

func writeDump(path string, g mesh.Geometry, compress bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := mesh.WriteGeometry(bw, g, compress); err != nil {
		return err
	}
	return bw.Flush()
}
