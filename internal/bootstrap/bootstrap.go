package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medical-records-api/internal/core/config"
	"medical-records-api/internal/core/database"
	"medical-records-api/internal/core/redisx"
	"medical-records-api/internal/seed"
	"medical-records-api/internal/service"
	"medical-records-api/internal/store"
)

// App 两个进程（api / admin）共用的依赖
type App struct {
	Store   *store.Store
	Service *service.RecordService

	closers []func()
}

// New 打开存储后端 → 初始化集合 → （可选）种子数据 → Reconcile
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{}
	b, err := a.openBackend(ctx, cfg, l)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store.New(b, l.Named("store"))

	if err := a.Store.Init(ctx, store.All...); err != nil {
		a.Close()
		return nil, fmt.Errorf("init collections: %w", err)
	}

	gen := seed.NewGenerator(nil, nil)
	if cfg.Seed.Enabled {
		// 读不出来的集合不会被覆盖，种子失败只记日志，服务照常启动
		res, err := seed.Run(ctx, a.Store, gen, seed.Options{Patients: cfg.Seed.Patients}, l.Named("seed"))
		if err != nil {
			l.Error("seed failed", zap.Error(err))
		} else {
			l.Info("seed done",
				zap.Int("patients", res.Patients),
				zap.Int("doctors", res.Doctors),
				zap.Int("reports", res.Reports),
			)
		}
	}

	a.Service = service.NewRecordService(service.Deps{
		Store: a.Store,
		Age:   gen.Age,
		Log:   l.Named("service"),
	})

	// 上次进程里注册时第二次写失败的用户在这里补齐
	rep, err := a.Service.Reconcile(ctx)
	if err != nil {
		l.Warn("startup reconcile failed", zap.Error(err))
	} else if len(rep.LinkedPatients) > 0 || rep.FailedLinks > 0 {
		l.Info("startup reconcile",
			zap.Strings("linked", rep.LinkedPatients),
			zap.Int("failed", rep.FailedLinks),
		)
	}
	return a, nil
}

func (a *App) openBackend(ctx context.Context, cfg *config.Config, l *zap.Logger) (store.Backend, error) {
	switch cfg.Storage.Driver {
	case "redis":
		rdb, err := redisx.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		l.Info("storage: redis", zap.String("addr", cfg.Redis.Addr), zap.String("prefix", cfg.Storage.RedisPrefix))
		return store.NewRedisBackend(rdb, cfg.Storage.RedisPrefix), nil
	case "sql":
		db, err := database.NewGorm(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		l.Info("storage: sql", zap.String("driver", cfg.DB.Driver))
		return store.NewGormBackend(db)
	default:
		l.Info("storage: file", zap.String("dir", cfg.Storage.Dir))
		return store.NewFileBackend(cfg.Storage.Dir)
	}
}

// Close 释放后端连接，可重复调用
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
