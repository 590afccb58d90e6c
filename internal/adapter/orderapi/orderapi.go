package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrderPlacer = (*HTTPClient)(nil)

type (
	orderLine struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	}

	shipping struct {
		Address string `json:"address"`
		City    string `json:"city"`
		Zip     string `json:"zip"`
	}

	checkoutPayload struct {
		UserID     *string     `json:"user_id"`
		GuestEmail *string     `json:"guest_email"`
		GuestName  *string     `json:"guest_name"`
		Shipping   *shipping   `json:"shipping"`
		Status     string      `json:"status"`
		Total      float64     `json:"total"`
		Lines      []orderLine `json:"lines"`
		Token      string      `json:"token"`
	}

	checkoutResponse struct {
		OK         bool   `json:"ok"`
		OrderToken string `json:"order_token"`
		Error      string `json:"error"`
	}
)

// An HTTPClient submits assembled order drafts to the order-creation
// collaborator, which verifies the captcha token and persists the
// order atomically. A response without an order token is a failure
// even when the call itself succeeded.
type HTTPClient struct {
	url string
	cl  *http.Client
}

func NewHTTPClient(url string) HTTPClient {
	return HTTPClient{
		url: url,
		cl:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c HTTPClient) PlaceOrder(
	ctx context.Context, draft domain.OrderDraft,
) (string, error) {
	const op = "HTTPClient.PlaceOrder"

	body, err := json.Marshal(c.toPayload(draft))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url, bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.cl.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	var cr checkoutResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if res.StatusCode != http.StatusOK {
		if cr.Error != "" {
			return "", fmt.Errorf("%s: %s", op, cr.Error)
		}
		return "", fmt.Errorf("%s: unexpected status: %s", op, res.Status)
	}

	return cr.OrderToken, nil
}

func (c HTTPClient) toPayload(d domain.OrderDraft) checkoutPayload {
	p := checkoutPayload{
		Status: d.Status,
		Total:  d.Total,
		Token:  d.CaptchaToken,
	}

	if d.UserID != "" {
		p.UserID = &d.UserID
	} else {
		p.GuestEmail = &d.GuestEmail
		if d.GuestName != "" {
			p.GuestName = &d.GuestName
		}
		if d.Shipping != nil {
			p.Shipping = &shipping{
				Address: d.Shipping.Address,
				City:    d.Shipping.City,
				Zip:     d.Shipping.Zip,
			}
		}
	}

	p.Lines = make([]orderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		p.Lines = append(p.Lines, orderLine{
			ID:    l.ProductID,
			Name:  l.Name,
			Price: l.Price,
			Qty:   l.Quantity,
		})
	}
	return p
}
