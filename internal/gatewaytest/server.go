// Package gatewaytest provides an in-process fake of the proxy gateway for
// tests: the envelope protocol, token auth, access-key checks, and the
// un-enveloped raw chat endpoint.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/me/llmctl/pkg/gateway"
)

// Account is a seeded user of the fake gateway.
type Account struct {
	ID       int64
	Username string
	Password string
	Role     gateway.Role
	Balance  float64
}

// Server is a fake gateway. Seed accounts and access keys, then mount
// Handler() on an httptest.Server.
type Server struct {
	mu         sync.Mutex
	accounts   map[string]*Account        // by username
	tokens     map[string]string          // token -> username
	accessKeys map[string]int64           // key value -> id
	keySeq     int64
	orders     []gateway.Order
	orderSeq   int64
}

// New creates an empty fake gateway.
func New() *Server {
	return &Server{
		accounts:   map[string]*Account{},
		tokens:     map[string]string{},
		accessKeys: map[string]int64{},
	}
}

// AddAccount seeds an account and returns it.
func (s *Server) AddAccount(username, password string, role gateway.Role) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := &Account{
		ID:       int64(len(s.accounts) + 1),
		Username: username,
		Password: password,
		Role:     role,
		Balance:  42.5,
	}
	s.accounts[username] = acct
	return acct
}

// AddAccessKey seeds a valid access key and returns its id.
func (s *Server) AddAccessKey(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keySeq++
	s.accessKeys[key] = s.keySeq
	return s.keySeq
}

// RevokeToken makes an issued token invalid, so the next authenticated
// request fails with a 401 envelope.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Handler returns the fake gateway's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)
	r.Get("/auth/me", s.handleProfile)
	r.Post("/auth/change-password", s.handleChangePassword)

	r.Get("/access-keys", s.handleListKeys)
	r.Post("/access-keys", s.handleCreateKey)
	r.Delete("/access-keys/{id}", s.handleDeleteKey)

	r.Get("/models", s.handleListModels)

	r.Get("/orders/my", s.handleMyOrders)
	r.Get("/orders", s.handleAllOrders)
	r.Post("/orders", s.handleCreateOrder)
	r.Post("/orders/cancel", s.handleCancelOrder)

	r.Get("/users", s.handleListUsers)

	r.Get("/statistics/logs/me", s.handleMyLogs)
	r.Post("/statistics/models", s.handleModelStats)

	r.Get("/conversations/recent", s.handleRecentConversations)

	r.Post("/v2/chat", s.handleRawChat)
	r.Post("/generate-image", s.handleGenerateImage)

	return r
}

// respond writes the standard envelope with HTTP 200. Application-level
// failures live in the envelope code, like the real gateway.
func respond(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func respondOK(w http.ResponseWriter, data any) {
	respond(w, 200, "", data)
}

// authed resolves the bearer token to an account, or writes a 401 envelope.
func (s *Server) authed(w http.ResponseWriter, r *http.Request) *Account {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		respond(w, 401, "authentication required", nil)
		return nil
	}

	s.mu.Lock()
	username, ok := s.tokens[token]
	acct := s.accounts[username]
	s.mu.Unlock()

	if !ok || acct == nil {
		respond(w, 401, "token expired", nil)
		return nil
	}
	return acct
}

// keyed checks the access-key header, or writes a 401 envelope.
func (s *Server) keyed(w http.ResponseWriter, r *http.Request) bool {
	key := r.Header.Get("ACCESS-KEY")
	s.mu.Lock()
	_, ok := s.accessKeys[key]
	s.mu.Unlock()
	if key == "" || !ok {
		respond(w, 401, "invalid access key", nil)
		return false
	}
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req gateway.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || acct.Password != req.Password {
		respond(w, 400, "invalid username or password", nil)
		return
	}

	token := "tok_" + uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = acct.Username
	s.mu.Unlock()

	respondOK(w, gateway.LoginResponse{
		Token:    token,
		Username: acct.Username,
		Role:     acct.Role,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req gateway.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}
	s.mu.Lock()
	_, exists := s.accounts[req.Username]
	s.mu.Unlock()
	if exists {
		respond(w, 400, "username taken", nil)
		return
	}
	s.AddAccount(req.Username, req.Password, gateway.RoleUser)
	respondOK(w, "registered")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	respondOK(w, gateway.UserProfile{
		ID:        acct.ID,
		Username:  acct.Username,
		Role:      acct.Role,
		Balance:   acct.Balance,
		CreatedAt: "2026-01-01T00:00:00Z",
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var req gateway.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct.Password != req.OldPassword {
		respond(w, 400, "wrong password", nil)
		return
	}
	acct.Password = req.NewPassword
	respondOK(w, true)
}

func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	s.mu.Lock()
	items := make([]gateway.AccessKeyItem, 0, len(s.accessKeys))
	for key, id := range s.accessKeys {
		items = append(items, gateway.AccessKeyItem{
			ID:             id,
			MaskedKeyValue: mask(key),
			IsActive:       true,
			CreatedAt:      "2026-01-02T00:00:00Z",
		})
	}
	s.mu.Unlock()
	respondOK(w, items)
}

func (s *Server) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	key := "ak_" + uuid.New().String()
	id := s.AddAccessKey(key)
	respondOK(w, gateway.CreateAccessKeyResponse{ID: id, KeyValue: key})
}

func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	for key, keyID := range s.accessKeys {
		if fmt.Sprint(keyID) == id {
			delete(s.accessKeys, key)
		}
	}
	s.mu.Unlock()
	respondOK(w, true)
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	models := []gateway.Model{
		{
			ID: 1, DisplayName: "Test Chat", ModelIdentifier: "test-chat-1",
			Capabilities: []gateway.ModelCapability{gateway.CapTextToText},
			Priority:     10, Status: gateway.ModelOnline, ProviderName: "testprov",
		},
		{
			ID: 2, DisplayName: "Test Image", ModelIdentifier: "test-image-1",
			Capabilities: []gateway.ModelCapability{gateway.CapTextToImage},
			Priority:     5, Status: gateway.ModelOnline, ProviderName: "testprov",
		},
	}
	respondOK(w, gateway.PageResult[gateway.Model]{
		Items: models, Total: int64(len(models)), PageNum: 1, PageSize: 20,
	})
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	items := []gateway.Order{}
	for _, o := range s.orders {
		if o.UserID == acct.ID {
			items = append(items, o)
		}
	}
	s.mu.Unlock()
	respondOK(w, gateway.PageResult[gateway.Order]{
		Items: items, Total: int64(len(items)), PageNum: 1, PageSize: 20,
	})
}

func (s *Server) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	if acct.Role != gateway.RoleRootAdmin {
		respond(w, 403, "forbidden", nil)
		return
	}
	s.mu.Lock()
	items := append([]gateway.Order{}, s.orders...)
	s.mu.Unlock()
	respondOK(w, gateway.PageResult[gateway.Order]{
		Items: items, Total: int64(len(items)), PageNum: 1, PageSize: 20,
	})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var req gateway.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}
	s.mu.Lock()
	s.orderSeq++
	order := gateway.Order{
		ID:        s.orderSeq,
		OrderNo:   fmt.Sprintf("ORD-%06d", s.orderSeq),
		UserID:    acct.ID,
		Amount:    req.Amount,
		Status:    gateway.OrderPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.orders = append(s.orders, order)
	s.mu.Unlock()
	respondOK(w, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	var req gateway.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.OrderNo == req.OrderNo {
			if o.Status != gateway.OrderPending {
				respond(w, 400, "order not cancellable", nil)
				return
			}
			s.orders[i].Status = gateway.OrderCancelled
			respondOK(w, s.orders[i])
			return
		}
	}
	respond(w, 404, "order not found", nil)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	if acct.Role != gateway.RoleRootAdmin {
		respond(w, 403, "forbidden", nil)
		return
	}
	s.mu.Lock()
	items := make([]gateway.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		items = append(items, gateway.User{
			ID: a.ID, Username: a.Username, Role: a.Role, Balance: a.Balance,
			CreatedAt: "2026-01-01T00:00:00Z",
		})
	}
	s.mu.Unlock()
	respondOK(w, gateway.PageResult[gateway.User]{
		Items: items, Total: int64(len(items)), PageNum: 1, PageSize: 20,
	})
}

func (s *Server) handleMyLogs(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	respondOK(w, []gateway.UsageLogItem{
		{ID: "log-1", ModelIdentifier: "test-chat-1", PromptTokens: 12, CompletionTokens: 30,
			Cost: 0.0042, IsSuccess: true, CreateTime: "2026-02-01T10:00:00Z"},
	})
}

func (s *Server) handleModelStats(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	respondOK(w, []gateway.ModelStatisticsItem{
		{ModelIdentifier: "test-chat-1", StatDate: "2026-02-01", TotalRequests: 100,
			SuccessCount: 98, FailureCount: 2},
	})
}

func (s *Server) handleRecentConversations(w http.ResponseWriter, r *http.Request) {
	if s.authed(w, r) == nil {
		return
	}
	if !s.keyed(w, r) {
		return
	}
	respondOK(w, []gateway.ConversationSummary{
		{ConversationID: "conv-1", Title: "hello", MessageCount: 4,
			LastActiveAt: "2026-02-01T10:00:00Z"},
	})
}

// handleRawChat is the standing un-enveloped endpoint: the body is an
// OpenAI-compatible payload, errors are plain HTTP statuses.
func (s *Server) handleRawChat(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("ACCESS-KEY")
	s.mu.Lock()
	_, ok := s.accessKeys[key]
	s.mu.Unlock()
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid access key"})
		return
	}

	var req gateway.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gateway.ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.New().String()[:8],
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []gateway.ChatChoice{
			{Message: gateway.ChatMessage{Role: "assistant", Content: "pong"}, FinishReason: "stop"},
		},
		Usage: gateway.ChatUsage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4},
	})
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if !s.keyed(w, r) {
		return
	}
	var req gateway.ImageGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, 400, "malformed request", nil)
		return
	}
	respondOK(w, gateway.ImageGenerationResponse{
		ImageURLs:           []string{"https://img.example/1.png"},
		ActualPrompt:        req.Prompt,
		UsedModelIdentifier: "test-image-1",
	})
}

func mask(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
