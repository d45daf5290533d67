package gateway

import (
	"context"
	"fmt"
)

// ListAccessKeys returns the current user's access keys. Key values are
// masked; only creation returns the plaintext.
func (c *Client) ListAccessKeys(ctx context.Context) ([]AccessKeyItem, error) {
	return Get[[]AccessKeyItem](ctx, c, "/access-keys")
}

// CreateAccessKey mints a new access key and returns its one-time
// plaintext value.
func (c *Client) CreateAccessKey(ctx context.Context) (CreateAccessKeyResponse, error) {
	return Post[CreateAccessKeyResponse](ctx, c, "/access-keys", nil)
}

// DeleteAccessKey revokes an access key by id.
func (c *Client) DeleteAccessKey(ctx context.Context, id int64) error {
	_, err := Delete[bool](ctx, c, fmt.Sprintf("/access-keys/%d", id))
	return err
}
