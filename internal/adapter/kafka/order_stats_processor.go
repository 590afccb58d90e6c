package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderPlacedV1]
type orderEventCodec struct {
	serde Serde
}

func newOrderEventCodec(s Serde) orderEventCodec {
	return orderEventCodec{s}
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderPlacedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderPlacedV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A statsValue is the per-owner running aggregate kept in the
// group table.
type statsValue struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// A statsValueCodec used for serde [statsValue]
type statsValueCodec struct{}

func (statsValueCodec) Encode(v any) ([]byte, error) {
	const op = "statsValueCodec.Encode"
	sv, ok := v.(statsValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data, err := json.Marshal(sv)
	if err != nil {
		return nil, opErr(err, op)
	}
	return data, nil
}

func (statsValueCodec) Decode(data []byte) (any, error) {
	const op = "statsValueCodec.Decode"
	var sv statsValue
	if err := json.Unmarshal(data, &sv); err != nil {
		return nil, opErr(err, op)
	}
	return sv, nil
}

// An OrderStatsProcessor accumulates order events
// from stream topic to group table.
type OrderStatsProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrderStatsProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	orderPlacedSerde Serde,
) (*OrderStatsProcessor, error) {
	const op = "NewOrderStatsProc"

	var p OrderStatsProcessor
	p.opPrefix = "OrderStatsProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newOrderEventCodec(orderPlacedSerde),
			p.processFn,
		),
		goka.Persist(statsValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *OrderStatsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *OrderStatsProcessor) Close() {
	p.proc.close()
}

func (p *OrderStatsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.OrderPlacedV1)

	var sv statsValue
	if cur, ok := ctx.Value().(statsValue); ok {
		sv = cur
	}
	sv.Orders++
	sv.Revenue += event.Total
	ctx.SetValue(sv)

	log.Info(
		"accumulated order",
		"ownerKey", event.OwnerKey,
		"orders", sv.Orders,
		"revenue", sv.Revenue,
	)
}
