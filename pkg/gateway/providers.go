package gateway

import (
	"context"
	"fmt"
)

// ProviderRequest creates or updates an upstream provider.
type ProviderRequest struct {
	Name    string `json:"name,omitempty"`
	URLBase string `json:"urlBase,omitempty"`
}

// ListProviders returns a page of upstream providers. Model admin or root
// admin.
func (c *Client) ListProviders(ctx context.Context, page PageQuery) (PageResult[Provider], error) {
	return Get[PageResult[Provider]](ctx, c, "/providers", WithParams(page.params()))
}

// CreateProvider registers an upstream provider.
func (c *Client) CreateProvider(ctx context.Context, req ProviderRequest) (Provider, error) {
	return Post[Provider](ctx, c, "/providers", req)
}

// UpdateProvider updates an upstream provider.
func (c *Client) UpdateProvider(ctx context.Context, id int64, req ProviderRequest) (Provider, error) {
	return Put[Provider](ctx, c, fmt.Sprintf("/providers/%d", id), req)
}

// DeleteProvider removes an upstream provider.
func (c *Client) DeleteProvider(ctx context.Context, id int64) error {
	_, err := Delete[bool](ctx, c, fmt.Sprintf("/providers/%d", id))
	return err
}
