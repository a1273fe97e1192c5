package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"parabellum/internal/game/app"
	"parabellum/internal/game/infra/persistence/mongodb"
	"parabellum/internal/game/infra/persistence/mysql"
	"parabellum/internal/game/interfaces/handler"
	"parabellum/internal/shared/config"
	"parabellum/internal/shared/infrastructure/db"
	"parabellum/internal/shared/infrastructure/mongo"
	"parabellum/internal/shared/logs"
	transporthttp "parabellum/internal/shared/transport/http"
)

func main() {
	config.Load("")
	if err := logs.Init("api", config.Conf.Log); err != nil {
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
	gameApp := app.New(provider, app.NewConfig(config.Conf.Game.WorldSize, config.Conf.Game.Speed))

	serverConfig := config.Conf.HTTPServer
	host := serverConfig.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverConfig.Port)

	httpServer := transporthttp.NewHttpServer(addr, nil)
	handler.NewHttpHandler(gameApp).RegisterRoutes(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("api server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
