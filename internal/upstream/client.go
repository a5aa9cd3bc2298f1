package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to one external reservation service over HTTP. The product
// and partner services share the same contract and differ only in base URL
// and the name of the id field returned by /book, so both are instances of
// this type.
type Client struct {
	name    string
	baseURL string
	idField string
	client  *http.Client
}

func NewClient(name, baseURL, idField string, timeout time.Duration) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		idField: idField,
		client:  &http.Client{Timeout: timeout},
	}
}

type reserveRequest struct {
	ProductName string `json:"product_name"`
}

// Reserve places a provisional hold. Any transport failure or non-2xx
// status is reported as an error; no retry is attempted.
func (c *Client) Reserve(ctx context.Context, productName string) error {
	_, err := c.post(ctx, "/reserve", productName)
	return err
}

// Book converts the reservation into a confirmed allocation and returns the
// identifier the service assigned to it.
func (c *Client) Book(ctx context.Context, productName string) (int64, error) {
	body, err := c.post(ctx, "/book", productName)
	if err != nil {
		return 0, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%s service: malformed response: %w", c.name, err)
	}
	raw, ok := payload[c.idField]
	if !ok {
		return 0, fmt.Errorf("%s service: response missing %q", c.name, c.idField)
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("%s service: %q is not an integer: %w", c.name, c.idField, err)
	}
	return id, nil
}

func (c *Client) post(ctx context.Context, path, productName string) ([]byte, error) {
	payload, err := json.Marshal(reserveRequest{ProductName: productName})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s service: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s service: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s service: read response: %w", c.name, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s service: POST %s returned %s", c.name, path, resp.Status)
	}
	return body, nil
}
