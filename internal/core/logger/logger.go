package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"medical-records-api/internal/core/config"
)

type Options struct {
	Level       string // debug / info / warn / error
	JSON        bool   // 生产环境用 JSON，本地用彩色控制台
	AddCaller   bool
	Development bool
	File        config.LogFile // 可选：lumberjack 文件切割
}

// FromConfig 控制台格式默认开启开发模式
func FromConfig(c config.Log) Options {
	return Options{
		Level:       c.Level,
		JSON:        c.JSON,
		AddCaller:   true,
		Development: !c.JSON,
		File:        c.File,
	}
}

// New 返回 logger 以及退出前需要调用的 flush 函数
func New(opt Options) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder(opt.JSON, true), zapcore.AddSync(os.Stdout), lvl)}

	var rotator *lumberjack.Logger
	if opt.File.Enable && opt.File.Filename != "" {
		rotator = &lumberjack.Logger{
			Filename:   opt.File.Filename,
			MaxSize:    max(1, opt.File.MaxSizeMB),
			MaxBackups: max(0, opt.File.MaxBackups),
			MaxAge:     max(0, opt.File.MaxAgeDays),
			Compress:   opt.File.Compress,
		}
		// 文件里不要颜色控制符
		cores = append(cores, zapcore.NewCore(encoder(opt.JSON, false), zapcore.AddSync(rotator), lvl))
	}

	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	var zopts []zap.Option
	if opt.AddCaller {
		zopts = append(zopts, zap.AddCaller())
	}
	if opt.Development {
		zopts = append(zopts, zap.Development())
	}
	l := zap.New(core, zopts...)

	cleanup := func() {
		_ = l.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return l, cleanup
}

func encoder(json, color bool) zapcore.Encoder {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// RedirectStdLog 把标准库 log（gorm 默认 logger 等）转到 zap
func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, err := zap.RedirectStdLogAt(l, level)
	if err != nil {
		return func() {}
	}
	return undo
}
