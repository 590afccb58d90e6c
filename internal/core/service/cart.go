package service

import (
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Cart holds the in-process cart lines and writes every mutation
// through to the underlying snapshot storage. The mutex serializes
// concurrent mutations; a storage write failure keeps the in-memory
// state and is only logged.
type Cart struct {
	mu      sync.Mutex
	storage port.CartStorage
	lines   []domain.CartLine
}

func NewCart(storage port.CartStorage) *Cart {
	c := storage.ReadCart()
	return &Cart{
		storage: storage,
		lines:   domain.NormalizeLines(c.Lines),
	}
}

// AddItem accumulates qty onto an existing line or appends a new one.
// Non-positive qty falls back to 1.
func (c *Cart) AddItem(productID, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines[i].Quantity += qty
			c.persist()
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{ProductID: productID, Quantity: qty})
	c.persist()
}

func (c *Cart) Increment(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines[i].Quantity++
			c.persist()
			return
		}
	}
}

// Decrement lowers the line quantity by one; a quantity-1 line is
// removed so no zero-quantity line ever persists.
func (c *Cart) Decrement(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID != productID {
			continue
		}
		if l.Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		c.persist()
		return
	}
}

func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persist()
}

// ReplaceAll substitutes the whole cart with a normalized copy of ls.
func (c *Cart) ReplaceAll(ls []domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = domain.NormalizeLines(ls)
	c.persist()
}

// Lines returns a copy of the current cart snapshot.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	ls := make([]domain.CartLine, len(c.lines))
	copy(ls, c.lines)
	return ls
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.Cart{Lines: c.lines}.Count()
}

func (c *Cart) persist() {
	const op = "Cart.persist"

	err := c.storage.WriteCart(domain.Cart{Lines: c.lines})
	if err != nil {
		slog.Warn("failed to persist cart snapshot", "op", op, "err", err)
	}
}
