package gateway

import "context"

// ListUsers returns a page of user accounts. Root admin only.
func (c *Client) ListUsers(ctx context.Context, page PageQuery) (PageResult[User], error) {
	return Get[PageResult[User]](ctx, c, "/users", WithParams(page.params()))
}
