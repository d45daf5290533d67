package gateway

import "encoding/json"

// Role identifies a user's permission scope on the gateway.
type Role string

const (
	RoleRootAdmin  Role = "ROLE_ROOT_ADMIN"
	RoleModelAdmin Role = "ROLE_MODEL_ADMIN"
	RoleUser       Role = "ROLE_USER"
)

// LoginRequest carries the credentials for a token exchange.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the result of a successful token exchange.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// RegisterRequest creates a new account. Registration does not log in.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// ChangePasswordRequest rotates the current user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AssignRoleRequest changes a user's role (root admin only).
type AssignRoleRequest struct {
	UserID int64 `json:"userId"`
	Role   Role  `json:"role"`
}

// UserProfile is the authenticated user's own record.
type UserProfile struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Role      Role    `json:"role"`
	Email     string  `json:"email,omitempty"`
	Balance   float64 `json:"balance,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// User is an account record as seen by administrators.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email,omitempty"`
	Role      Role    `json:"role"`
	Balance   float64 `json:"balance"`
	CreatedAt string  `json:"createdAt"`
}

// PageResult is the gateway's paged list wrapper.
type PageResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	PageNum  int   `json:"pageNum"`
	PageSize int   `json:"pageSize"`
}

// AccessKeyItem is a proxy access key owned by the current user. The full
// key value is only returned at creation time; listings carry a mask.
type AccessKeyItem struct {
	ID             int64  `json:"id"`
	KeyValue       string `json:"keyValue,omitempty"`
	MaskedKeyValue string `json:"maskedKeyValue,omitempty"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
}

// CreateAccessKeyResponse carries the one-time plaintext key value.
type CreateAccessKeyResponse struct {
	ID       int64  `json:"id"`
	KeyValue string `json:"keyValue"`
}

// OrderStatus is the lifecycle state of a billing order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderFailed    OrderStatus = "FAILED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a billing order.
type Order struct {
	ID        int64       `json:"id"`
	OrderNo   string      `json:"orderNo"`
	UserID    int64       `json:"userId"`
	Amount    float64     `json:"amount"`
	Status    OrderStatus `json:"status"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// CreateOrderRequest places a top-up order.
type CreateOrderRequest struct {
	UserID int64   `json:"userId"`
	Amount float64 `json:"amount"`
}

// CancelOrderRequest cancels a pending order by number.
type CancelOrderRequest struct {
	OrderNo string `json:"orderNo"`
}

// ModelCapability describes an inference modality a model supports.
type ModelCapability string

const (
	CapTextToText   ModelCapability = "text-to-text"
	CapTextToImage  ModelCapability = "text-to-image"
	CapImageToText  ModelCapability = "image-to-text"
	CapImageToImage ModelCapability = "image-to-image"
)

// Model statuses.
const (
	ModelOffline = 0
	ModelOnline  = 1
)

// Model is a catalog entry routable through the proxy.
type Model struct {
	ID              int64             `json:"id"`
	DisplayName     string            `json:"displayName"`
	ModelIdentifier string            `json:"modelIdentifier"`
	Capabilities    []ModelCapability `json:"capabilities"`
	Pricing         json.RawMessage   `json:"pricing,omitempty"`
	Priority        int               `json:"priority"`
	Status          int               `json:"status"`
	ProviderID      string            `json:"providerId"`
	ProviderName    string            `json:"providerName"`
	URLBase         string            `json:"urlBase"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// Provider is an upstream LLM provider.
type Provider struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	URLBase   string `json:"urlBase"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ModelStatisticsQuery filters per-model request statistics.
type ModelStatisticsQuery struct {
	ModelID         int64  `json:"modelId,omitempty"`
	ModelIdentifier string `json:"modelIdentifier,omitempty"`
	Date            string `json:"date,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
}

// ModelStatisticsItem is one day of request counts for a model.
type ModelStatisticsItem struct {
	ModelID         int64  `json:"modelId,omitempty"`
	ModelIdentifier string `json:"modelIdentifier,omitempty"`
	StatDate        string `json:"statDate"`
	TotalRequests   int64  `json:"totalRequests"`
	SuccessCount    int64  `json:"successCount"`
	FailureCount    int64  `json:"failureCount"`
}

// UsageLogQuery filters proxy usage logs.
type UsageLogQuery struct {
	UserID      int64  `json:"userId,omitempty"`
	AccessKeyID int64  `json:"accessKeyId,omitempty"`
	ModelID     int64  `json:"modelId,omitempty"`
	IsSuccess   *bool  `json:"isSuccess,omitempty"`
	IsAsync     *bool  `json:"isAsync,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	SortDesc    bool   `json:"sortDesc,omitempty"`
}

// UsageLogItem is one proxied call's billing record.
type UsageLogItem struct {
	ID               string  `json:"id,omitempty"`
	UserID           int64   `json:"userId,omitempty"`
	AccessKeyID      int64   `json:"accessKeyId,omitempty"`
	ModelID          int64   `json:"modelId,omitempty"`
	ModelIdentifier  string  `json:"modelIdentifier,omitempty"`
	PromptTokens     int64   `json:"promptTokens,omitempty"`
	CompletionTokens int64   `json:"completionTokens,omitempty"`
	ImageCount       int     `json:"imageCount,omitempty"`
	Cost             float64 `json:"cost,omitempty"`
	IsAsync          bool    `json:"isAsync"`
	IsSuccess        bool    `json:"isSuccess"`
	CreateTime       string  `json:"createTime"`
}

// ConversationSummary is a stored chat conversation header.
type ConversationSummary struct {
	ConversationID      string `json:"conversationId"`
	Title               string `json:"title"`
	Pinned              bool   `json:"pinned"`
	LastModelIdentifier string `json:"lastModelIdentifier,omitempty"`
	LastMessageSummary  string `json:"lastMessageSummary,omitempty"`
	MessageCount        int    `json:"messageCount"`
	LastActiveAt        string `json:"lastActiveAt"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// ConversationMessage is one stored message of a conversation.
type ConversationMessage struct {
	MessageID        string   `json:"messageId"`
	ConversationID   string   `json:"conversationId"`
	Role             string   `json:"role"`
	Content          string   `json:"content"`
	ImageURLs        []string `json:"imageUrls,omitempty"`
	ModelIdentifier  string   `json:"modelIdentifier,omitempty"`
	PromptTokens     int64    `json:"promptTokens,omitempty"`
	CompletionTokens int64    `json:"completionTokens,omitempty"`
	Cost             float64  `json:"cost,omitempty"`
	CreatedAt        string   `json:"createdAt"`
}

// ChatMessage is an OpenAI-compatible chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the OpenAI-compatible completion request body
// accepted by the raw chat endpoint.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

// ChatUsage is the token accounting block of a chat response.
type ChatUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ChatChoice is one completion alternative.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionResponse is the un-enveloped OpenAI-compatible payload the
// raw chat endpoint returns.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// ImageGenerationRequest asks the proxy to generate images from a prompt.
type ImageGenerationRequest struct {
	Prompt          string         `json:"prompt"`
	ModelIdentifier string         `json:"modelIdentifier,omitempty"`
	Options         map[string]any `json:"options,omitempty"`
}

// ImageGenerationResponse carries the generated image locations.
type ImageGenerationResponse struct {
	ImageURLs           []string `json:"imageUrls"`
	ActualPrompt        string   `json:"actualPrompt"`
	UsedModelIdentifier string   `json:"usedModelIdentifier"`
}
