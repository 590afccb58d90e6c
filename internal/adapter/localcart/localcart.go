package localcart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartStorage = (*FileStorage)(nil)

type cartLine struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

// A FileStorage keeps the anonymous cart snapshot as a JSON array of
// {id, qty} in a single file, so the cart survives restarts. Absent or
// malformed data reads as an empty cart: there is no schema versioning.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) FileStorage {
	return FileStorage{path}
}

func (s FileStorage) ReadCart() domain.Cart {
	const op = "FileStorage.ReadCart"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read cart snapshot", "op", op, "err", err)
		}
		return domain.Cart{}
	}

	var ls []cartLine
	if err := json.Unmarshal(data, &ls); err != nil {
		slog.Warn("malformed cart snapshot, starting empty", "op", op, "err", err)
		return domain.Cart{}
	}

	c := domain.Cart{Lines: make([]domain.CartLine, 0, len(ls))}
	for _, l := range ls {
		c.Lines = append(c.Lines, domain.CartLine{
			ProductID: l.ID,
			Quantity:  l.Qty,
		})
	}
	return c
}

func (s FileStorage) WriteCart(c domain.Cart) error {
	const op = "FileStorage.WriteCart"

	ls := make([]cartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		ls = append(ls, cartLine{ID: l.ProductID, Qty: l.Quantity})
	}

	data, err := json.Marshal(ls)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
