package schema

import "github.com/hamba/avro/v2"

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_placed",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "order_token", "type": "string"},
		{"name": "owner_key", "type": "string"},
		{"name": "total", "type": "double"},
		{"name": "line_count", "type": "int"},
		{"name": "placed_at", "type": "long"}
	]
}`

// An OrderPlacedV1 is the wire form of a completed checkout.
// PlacedAt is unix milliseconds.
type OrderPlacedV1 struct {
	EventID    string  `avro:"event_id"`
	OrderToken string  `avro:"order_token"`
	OwnerKey   string  `avro:"owner_key"`
	Total      float64 `avro:"total"`
	LineCount  int     `avro:"line_count"`
	PlacedAt   int64   `avro:"placed_at"`
}

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
