package main

import (
	"context"
	"errors"
	"math/rand"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/mongodb"
	"parabellum/internal/game/infra/persistence/mysql"
	"parabellum/internal/shared/config"
	"parabellum/internal/shared/infrastructure/db"
	"parabellum/internal/shared/infrastructure/mongo"
	"parabellum/internal/shared/logs"
	"parabellum/internal/shared/metrics"
)

func main() {
	config.Load("")
	if err := logs.Init("worker", config.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", config.Conf))

	gormDB, err := db.Open(config.Conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}

	mongoClient, err := mongo.Open(config.Conf.MongoDB, logs.L())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	reports := mongodb.NewReportRepo(mongoClient.Database(config.Conf.MongoDB.Database))
	provider := mysql.NewProvider(gormDB, reports)
	gameCfg := app.NewConfig(config.Conf.Game.WorldSize, config.Conf.Game.Speed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := seedMapIfEmpty(ctx, provider, gameCfg); err != nil {
		logs.Fatal("seed map failed", zap.Error(err))
	}

	workerConfig := config.Conf.Worker
	opts := []app.WorkerOption{}
	if workerConfig.PollIntervalMS > 0 {
		opts = append(opts, app.WithPollInterval(time.Duration(workerConfig.PollIntervalMS)*time.Millisecond))
	}
	if workerConfig.BatchSize > 0 {
		opts = append(opts, app.WithBatchSize(workerConfig.BatchSize))
	}

	var metricsServer *nethttp.Server
	if workerConfig.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, app.WithMetrics(metrics.NewWorkerMetrics(reg)))

		mux := nethttp.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		metricsServer = &nethttp.Server{Addr: workerConfig.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				logs.Error("metrics server exited", zap.Error(err))
			}
		}()
	}

	worker := app.NewWorker(provider, app.DefaultRegistry(), gameCfg, opts...)
	if err := worker.Run(ctx); err != nil {
		logs.Error("worker exited", zap.Error(err))
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
}

// seedMapIfEmpty 开服首启生成整张地图。种子固定，同一配置可复现。
func seedMapIfEmpty(ctx context.Context, provider app.UnitOfWorkProvider, cfg app.Config) error {
	uow, err := provider.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = uow.Rollback() }()

	count, err := uow.Map().CountFields(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(config.Conf.Game.MapSeed))
	fields := domain.GenerateMap(cfg.WorldSize, rng)
	logs.Info("generating world map", zap.Int("fields", len(fields)))
	if err := uow.Map().BulkSaveFields(ctx, fields); err != nil {
		return err
	}
	return uow.Commit()
}
