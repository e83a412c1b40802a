package port

import (
	"context"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

//go:generate mockgen -source=events.go -destination=mock/events.go -package=mock
type EventPublisher interface {
	PublishOrderSettled(ctx context.Context, event domain.OrderSettled) error
}

type SettlementMetrics interface {
	ObserveSettlement(source domain.SettlementSource, outcome string)
	ObserveNotification(outcome string)
}
