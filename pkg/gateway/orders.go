package gateway

import "context"

// PageQuery selects a page of a listing.
type PageQuery struct {
	PageNum  int
	PageSize int
}

func (q PageQuery) params() map[string]string {
	p := map[string]string{}
	if q.PageNum > 0 {
		p["pageNum"] = itoa(q.PageNum)
	}
	if q.PageSize > 0 {
		p["pageSize"] = itoa(q.PageSize)
	}
	return p
}

// ListMyOrders returns the current user's orders, optionally filtered by
// status.
func (c *Client) ListMyOrders(ctx context.Context, page PageQuery, status OrderStatus) (PageResult[Order], error) {
	params := page.params()
	if status != "" {
		params["status"] = string(status)
	}
	return Get[PageResult[Order]](ctx, c, "/orders/my", WithParams(params))
}

// ListOrders returns all orders. Root admin only.
func (c *Client) ListOrders(ctx context.Context, page PageQuery, status OrderStatus) (PageResult[Order], error) {
	params := page.params()
	if status != "" {
		params["status"] = string(status)
	}
	return Get[PageResult[Order]](ctx, c, "/orders", WithParams(params))
}

// CreateOrder places a top-up order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	return Post[Order](ctx, c, "/orders", req)
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, req CancelOrderRequest) (Order, error) {
	return Post[Order](ctx, c, "/orders/cancel", req)
}
