package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

var _ port.OrderPlacedProducer = (*OrderPlacedProducer)(nil)

// An OrderPlacedProducer used for produce [domain.OrderPlaced]
type OrderPlacedProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrderPlacedProducer(
	opts ...ProducerOpt,
) (OrderPlacedProducer, error) {
	const op = "NewOrderPlacedProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderPlacedProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrderPlacedProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrderPlacedProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrderPlacedProducer) Close() {
	p.producer.close()
}

func (p OrderPlacedProducer) ProduceOrderPlaced(
	ctx context.Context, evt domain.OrderPlaced,
) error {
	const op = "ProduceOrderPlaced"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

// Records are keyed by owner so the stats group table partitions
// per customer.
func (p OrderPlacedProducer) createRecord(
	evt domain.OrderPlaced,
) (r kgo.Record, err error) {
	const op = "createRecord"

	s := p.toSchema(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.OwnerKey)
	r = kgo.Record{Key: msgKey, Value: b}

	return r, nil
}

func (OrderPlacedProducer) toSchema(
	v domain.OrderPlaced,
) schema.OrderPlacedV1 {
	return orderPlacedToSchemaV1(v)
}
