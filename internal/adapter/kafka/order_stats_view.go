package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderStatsReader = (*OrderStatsView)(nil)

// An OrderStatsView reads the per-owner aggregate from the stats
// group table.
type OrderStatsView struct {
	gv *goka.View
}

func NewOrderStatsView(
	seedBrokers []string, groupTable string,
) (*OrderStatsView, error) {
	const op = "NewOrderStatsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		statsValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &OrderStatsView{gv}, nil
}

func (v *OrderStatsView) Run(ctx context.Context) {
	const op = "OrderStatsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// OrderStats returns the zero aggregate for owners without any
// placed orders.
func (v *OrderStatsView) OrderStats(
	ownerKey string,
) (domain.OrderStats, error) {
	const op = "OrderStatsView.OrderStats"

	stats := domain.OrderStats{OwnerKey: ownerKey}

	value, err := v.gv.Get(ownerKey)
	if err != nil {
		return domain.OrderStats{}, opErr(err, op)
	}

	if value == nil {
		return stats, nil
	}

	sv, ok := value.(statsValue)
	if !ok {
		return domain.OrderStats{}, opErr(ErrInvalidValueType, op)
	}

	stats.Orders = sv.Orders
	stats.Revenue = sv.Revenue
	return stats, nil
}
