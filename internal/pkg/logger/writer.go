package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// GormWriter 将 GORM 日志转发到 zap
type GormWriter struct {
	component string
}

func (w *GormWriter) Printf(format string, args ...interface{}) {
	log.Info(fmt.Sprintf(format, args...), zap.String("component", w.component))
}

// GetWriter 供 gorm logger.New 使用
func GetWriter() *GormWriter {
	return &GormWriter{component: "gorm"}
}
