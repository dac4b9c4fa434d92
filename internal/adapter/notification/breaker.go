package notification

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerNotifier 熔断包装，连续失败后短时间内直接拒绝发送
type BreakerNotifier struct {
	next    Notifier
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerNotifier 创建带熔断的通知器
func NewBreakerNotifier(next Notifier, logger *zap.Logger) *BreakerNotifier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "lark-notifier",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("通知熔断器状态变更",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &BreakerNotifier{next: next, breaker: cb}
}

// Send 经熔断器发送
func (b *BreakerNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, msg)
	})
	return err
}

// State 当前熔断状态
func (b *BreakerNotifier) State() gobreaker.State {
	return b.breaker.State()
}
