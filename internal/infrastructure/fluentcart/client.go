package fluentcart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shipment-tracker/internal/config"
	"shipment-tracker/internal/domain/order"
	"shipment-tracker/internal/domain/shipment"
)

// Client is the HTTP adapter for the commerce system's REST API. It satisfies
// order.Gateway; the rest of the service only ever sees the narrow port.
type Client struct {
	baseURL string
	apiKey  string
	source  string
	http    *http.Client
}

func NewClient(cfg *config.FluentCartConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		source:  cfg.Source,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Source returns the order-source tag this gateway serves.
func (c *Client) Source() string {
	return c.source
}

// Available reports whether the integration is configured. Every entry point
// that touches the commerce system must check this first so a missing
// integration surfaces as a clear result instead of a request fault.
func (c *Client) Available() bool {
	return c.baseURL != ""
}

type orderPayload struct {
	ID              int64            `json:"id"`
	FulfillmentType string           `json:"fulfillment_type"`
	PaymentStatus   string           `json:"payment_status"`
	Status          string           `json:"status"`
	ShippingStatus  string           `json:"shipping_status"`
	ShippingAddress *addressPayload  `json:"shipping_address"`
	CustomerID      int64            `json:"customer_id"`
	CustomerEmail   string           `json:"customer_email"`
	ShippingTotal   int64            `json:"shipping_total"`
	Currency        string           `json:"currency"`
	Note            string           `json:"note"`
	OrderItems      []orderItemEntry `json:"order_items"`
}

type addressPayload struct {
	Name       string `json:"name"`
	Address1   string `json:"address_1"`
	Address2   string `json:"address_2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postcode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type orderItemEntry struct {
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	if !c.Available() {
		return nil, order.ErrGatewayDown
	}

	var payload orderPayload
	status, err := c.get(ctx, fmt.Sprintf("/orders/%d", orderID), &payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, order.ErrOrderNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching order %d", status, orderID)
	}

	return toOrder(&payload), nil
}

func (c *Client) ListImportable(ctx context.Context, limit int) ([]*order.Order, error) {
	if !c.Available() {
		return nil, order.ErrGatewayDown
	}
	if limit <= 0 {
		limit = 50
	}

	var payload struct {
		Orders []orderPayload `json:"orders"`
	}
	path := fmt.Sprintf("/orders?fulfillment_type=physical&payment_status=paid,partially_paid&per_page=%d", limit)
	status, err := c.get(ctx, path, &payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing orders", status)
	}

	orders := make([]*order.Order, len(payload.Orders))
	for i := range payload.Orders {
		orders[i] = toOrder(&payload.Orders[i])
	}

	return orders, nil
}

func (c *Client) UpdateShippingStatus(ctx context.Context, orderID int64, shippingStatus string) error {
	if !c.Available() {
		return order.ErrGatewayDown
	}

	body, err := json.Marshal(map[string]string{"shipping_status": shippingStatus})
	if err != nil {
		return fmt.Errorf("failed to encode shipping status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+fmt.Sprintf("/orders/%d", orderID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return order.ErrOrderNotFound
	default:
		return fmt.Errorf("unexpected status %d updating order %d", resp.StatusCode, orderID)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("commerce api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode commerce api response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func toOrder(p *orderPayload) *order.Order {
	o := &order.Order{
		ID:              p.ID,
		FulfillmentType: p.FulfillmentType,
		PaymentStatus:   p.PaymentStatus,
		Status:          p.Status,
		ShippingStatus:  p.ShippingStatus,
		CustomerID:      p.CustomerID,
		CustomerEmail:   p.CustomerEmail,
		ShippingTotal:   p.ShippingTotal,
		Currency:        p.Currency,
		Note:            p.Note,
	}

	if p.ShippingAddress != nil {
		o.ShippingAddress = &shipment.Address{
			Name:       p.ShippingAddress.Name,
			Line1:      p.ShippingAddress.Address1,
			Line2:      p.ShippingAddress.Address2,
			City:       p.ShippingAddress.City,
			State:      p.ShippingAddress.State,
			PostalCode: p.ShippingAddress.PostalCode,
			Country:    p.ShippingAddress.Country,
			Phone:      p.ShippingAddress.Phone,
		}
	}

	for _, item := range p.OrderItems {
		o.Items = append(o.Items, order.Item{
			Name:     item.Title,
			Quantity: item.Quantity,
			Weight:   item.Weight,
		})
	}

	return o
}
