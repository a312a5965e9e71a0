package services

import (
	"context"
	"encoding/json"
	"time"

	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced     = "order_placed"
	EventCouponActivated = "coupon_activated"
)

// notifier publishes domain events and business metrics. Both are best
// effort: failures are logged and never reach the caller.
type notifier struct {
	sns      aws_pkg.SNSPublisher
	topicArn string
	metrics  aws_pkg.MetricsRecorder
	logger   *zap.Logger
}

func (n notifier) publish(ctx context.Context, eventType string, event any) {
	if n.sns == nil || n.topicArn == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("Failed to marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := n.sns.Publish(ctx, n.topicArn, body); err != nil {
		n.logger.Warn("Failed to publish event", zap.String("event_type", eventType), zap.Error(err))
	}
}

func (n notifier) count(ctx context.Context, metric string) {
	if n.metrics == nil || !n.metrics.IsEnabled() {
		return
	}
	go func() {
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := n.metrics.RecordCount(mctx, metric, map[string]string{"Service": "shop-api"}); err != nil {
			n.logger.Debug("Failed to record metric", zap.String("metric", metric), zap.Error(err))
		}
	}()
}
