package domain

import "time"

// An OrderLine joins a cart line with catalog data at checkout time.
// Name and price are snapshotted at submission, not re-validated here.
type OrderLine struct {
	ProductID int
	Name      string
	Price     float64
	Quantity  int
}

type Shipping struct {
	Address string
	City    string
	Zip     string
}

// An OrderDraft is the submission payload for the order-creation
// collaborator. Exactly one of UserID and GuestEmail is set.
type OrderDraft struct {
	UserID       string
	GuestEmail   string
	GuestName    string
	Shipping     *Shipping
	Status       string
	Total        float64
	Lines        []OrderLine
	CaptchaToken string
}

// An Order is created by the order-creation collaborator and only
// ever read back by this service.
type Order struct {
	ID         int64
	UserID     string
	GuestEmail string
	GuestName  string
	Shipping   *Shipping
	Status     string
	Total      float64
	Lines      []OrderLine
	OrderToken string
	CreatedAt  time.Time
}

// An OrderPlaced event is emitted after a successful checkout.
type OrderPlaced struct {
	EventID    string
	OrderToken string
	OwnerKey   string
	Total      float64
	LineCount  int
	PlacedAt   time.Time
}

// OrderStats is a per-owner running aggregate over placed orders.
type OrderStats struct {
	OwnerKey string
	Orders   int64
	Revenue  float64
}
