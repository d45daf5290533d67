package gateway

import "context"

// ConversationMessagesQuery pages backwards through a conversation.
type ConversationMessagesQuery struct {
	Limit  int
	Before string
}

// RecentConversations lists the conversations recorded for the session
// access key. The key, not the bearer token, scopes the history, so these
// calls carry the access-key header.
func (c *Client) RecentConversations(ctx context.Context, limit int) ([]ConversationSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	return Get[[]ConversationSummary](ctx, c, "/conversations/recent",
		WithParam("limit", itoa(limit)), WithAccessKey())
}

// ConversationMessages returns the stored messages of one conversation.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string, q ConversationMessagesQuery) ([]ConversationMessage, error) {
	opts := []RequestOption{WithAccessKey()}
	if q.Limit > 0 {
		opts = append(opts, WithParam("limit", itoa(q.Limit)))
	}
	if q.Before != "" {
		opts = append(opts, WithParam("before", q.Before))
	}
	return Get[[]ConversationMessage](ctx, c, "/conversations/"+conversationID+"/messages", opts...)
}
