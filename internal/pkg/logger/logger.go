package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pcs-crm/internal/pkg/config"
)

// Log 供需要注入 *zap.Logger 的组件使用；log 多跳过一层，给包级函数用
var (
	Log = zap.NewNop()
	log = zap.NewNop()
)

const timeLayout = "2006-01-02 15:04:05.000"

var (
	moduleRoot     string
	moduleRootOnce sync.Once
)

// Init 按配置重建全局 logger，可重复调用
func Init(cfg *config.LogConfig) error {
	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, parseLevel(cfg.Level))
	Log = zap.New(core, zap.AddCaller())
	log = Log.WithOptions(zap.AddCallerSkip(1))
	return nil
}

// parseLevel 无法识别时退回 info
func parseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil || s == "" {
		return zapcore.InfoLevel
	}
	return level
}

func newEncoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeCaller:     encodeCaller,
		ConsoleSeparator: " ",
	}
	if format == "json" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// newSink output: stdout / file / both，文件按大小滚动
func newSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	stdout := zapcore.Lock(os.Stdout)
	if cfg.FilePath == "" || (cfg.Output != "file" && cfg.Output != "both") {
		return stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, err
	}
	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
	if cfg.Output == "both" {
		return zapcore.NewMultiWriteSyncer(stdout, file), nil
	}
	return file, nil
}

// encodeCaller 输出相对 go.mod 目录的路径，IDE 可直接跳转
func encodeCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	if !caller.Defined {
		enc.AppendString("undefined")
		return
	}
	if root := findModuleRoot(); root != "" {
		if rel, err := filepath.Rel(root, caller.File); err == nil {
			enc.AppendString(filepath.ToSlash(rel) + ":" + strconv.Itoa(caller.Line))
			return
		}
	}
	enc.AppendString(caller.TrimmedPath())
}

func findModuleRoot() string {
	moduleRootOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			return
		}
		for {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				moduleRoot = dir
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	})
	return moduleRoot
}

// Sugar 返回 SugaredLogger
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Close 刷新缓冲，stdout 不支持 Sync 时的错误忽略
func Close() error {
	err := Log.Sync()
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && pathErr.Path == os.Stdout.Name() {
		return nil
	}
	return err
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }
