package gateway

import (
	"context"
	"fmt"
	"strconv"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// ListModelsQuery filters the model catalog listing.
type ListModelsQuery struct {
	Page       PageQuery
	Status     string
	Capability ModelCapability
	SortBy     string // priority, name, createdAt
	SortOrder  string // asc, desc
}

// ListModels returns a page of the model catalog.
func (c *Client) ListModels(ctx context.Context, q ListModelsQuery) (PageResult[Model], error) {
	params := q.Page.params()
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.Capability != "" {
		params["capability"] = string(q.Capability)
	}
	if q.SortBy != "" {
		params["sortBy"] = q.SortBy
	}
	if q.SortOrder != "" {
		params["sortOrder"] = q.SortOrder
	}
	return Get[PageResult[Model]](ctx, c, "/models", WithParams(params))
}

// CreateModel adds a catalog entry. Model admin or root admin.
func (c *Client) CreateModel(ctx context.Context, m Model) (Model, error) {
	return Post[Model](ctx, c, "/models", m)
}

// UpdateModel updates a catalog entry.
func (c *Client) UpdateModel(ctx context.Context, id int64, m Model) (Model, error) {
	return Put[Model](ctx, c, fmt.Sprintf("/models/%d", id), m)
}

// DeleteModel removes a catalog entry.
func (c *Client) DeleteModel(ctx context.Context, id int64) error {
	_, err := Delete[bool](ctx, c, fmt.Sprintf("/models/%d", id))
	return err
}

// SetModelStatus takes a model online (1) or offline (0).
func (c *Client) SetModelStatus(ctx context.Context, id int64, status int) (Model, error) {
	body := map[string]int{"status": status}
	return Post[Model](ctx, c, fmt.Sprintf("/models/%d/status", id), body)
}
