package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

var _ port.CatalogProvider = (*HTTPProvider)(nil)

type product struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
	Slug     string   `json:"slug"`
}

// An HTTPProvider fetches the product list from the catalog endpoint.
// The catalog is read-only to this service.
type HTTPProvider struct {
	url string
	cl  *http.Client
}

func NewHTTPProvider(url string) HTTPProvider {
	return HTTPProvider{
		url: url,
		cl:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p HTTPProvider) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "HTTPProvider.ListProducts"

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(200 * time.Millisecond),
	}

	ps, err := retry.DoWithResult(ctx, retryCfg, func() ([]product, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	domainPs := make([]domain.Product, 0, len(ps))
	for _, v := range ps {
		domainPs = append(domainPs, domain.Product{
			ProductID: v.ID,
			Name:      v.Name,
			Price:     v.Price,
			Category:  v.Category,
			Image:     v.Image,
			Tags:      v.Tags,
			Slug:      v.Slug,
		})
	}
	return domainPs, nil
}

func (p HTTPProvider) fetch(ctx context.Context) ([]product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}

	var ps []product
	if err := json.NewDecoder(res.Body).Decode(&ps); err != nil {
		return nil, err
	}
	return ps, nil
}
