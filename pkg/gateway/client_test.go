package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testCreds is a fixed credential source.
type testCreds struct {
	token     string
	accessKey string
}

func (c *testCreds) Token() string            { return c.token }
func (c *testCreds) SessionAccessKey() string { return c.accessKey }

// testNotifier counts error notifications.
type testNotifier struct {
	messages []string
}

func (n *testNotifier) Error(msg string) {
	n.messages = append(n.messages, msg)
}

func envelopeBody(code int, message string, data any) string {
	raw, _ := json.Marshal(map[string]any{"code": code, "message": message, "data": data})
	return string(raw)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, creds CredentialSource, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(DefaultConfig().WithBaseURL(srv.URL), creds, nil, opts...)
}

func TestClient_CredentialAttachment(t *testing.T) {
	tests := []struct {
		name       string
		creds      *testCreds
		opts       []RequestOption
		wantAuth   string
		wantKey    string
		wantNoAuth bool
		wantNoKey  bool
	}{
		{
			name:      "token attached as bearer",
			creds:     &testCreds{token: "tok-1"},
			wantAuth:  "Bearer tok-1",
			wantNoKey: true,
		},
		{
			name:       "no token means no authorization header",
			creds:      &testCreds{},
			wantNoAuth: true,
			wantNoKey:  true,
		},
		{
			name:      "access key only when marked",
			creds:     &testCreds{token: "tok-1", accessKey: "ak-1"},
			wantAuth:  "Bearer tok-1",
			wantNoKey: true,
		},
		{
			name:     "marked request carries access key",
			creds:    &testCreds{token: "tok-1", accessKey: "ak-1"},
			opts:     []RequestOption{WithAccessKey()},
			wantAuth: "Bearer tok-1",
			wantKey:  "ak-1",
		},
		{
			name:      "marked request without key omits header",
			creds:     &testCreds{token: "tok-1"},
			opts:      []RequestOption{WithAccessKey()},
			wantAuth:  "Bearer tok-1",
			wantNoKey: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.Write([]byte(envelopeBody(200, "", true)))
			}, tt.creds)

			if _, err := c.Do(context.Background(), http.MethodGet, "/ping", nil, tt.opts...); err != nil {
				t.Fatalf("Do() error = %v", err)
			}

			if tt.wantNoAuth && got.Get("Authorization") != "" {
				t.Errorf("Authorization = %q, want none", got.Get("Authorization"))
			}
			if tt.wantAuth != "" && got.Get("Authorization") != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", got.Get("Authorization"), tt.wantAuth)
			}
			if tt.wantNoKey && got.Get(DefaultAccessKeyHeader) != "" {
				t.Errorf("%s = %q, want none", DefaultAccessKeyHeader, got.Get(DefaultAccessKeyHeader))
			}
			if tt.wantKey != "" && got.Get(DefaultAccessKeyHeader) != tt.wantKey {
				t.Errorf("%s = %q, want %q", DefaultAccessKeyHeader, got.Get(DefaultAccessKeyHeader), tt.wantKey)
			}

			// The marker is a client-side concept and must never reach the
			// wire under any header name.
			for name := range got {
				if strings.Contains(strings.ToLower(name), "use-access-key") {
					t.Errorf("marker header %q leaked onto the wire", name)
				}
			}
		})
	}
}

func TestClient_RequestID(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Write([]byte(envelopeBody(200, "", nil)))
	}, nil)

	if _, err := c.Do(context.Background(), http.MethodGet, "/ping", nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !strings.HasPrefix(got, "req_") || len(got) != len("req_")+8 {
		t.Errorf("X-Request-ID = %q, want req_ prefix with 8 hex chars", got)
	}
}

func TestClient_EnvelopeSuccess(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(envelopeBody(200, "", payload{Name: "x", Count: 3})))
	}, nil)

	got, err := Get[payload](context.Background(), c, "/thing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "x" || got.Count != 3 {
		t.Errorf("Get() = %+v, want {x 3}", got)
	}
}

func TestClient_NullDataDecodesToZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"message":"","data":null}`))
	}, nil)

	got, err := Get[bool](context.Background(), c, "/void")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got {
		t.Errorf("Get() = %v, want zero value", got)
	}
}

func TestClient_EnvelopeFailure(t *testing.T) {
	notifier := &testNotifier{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(envelopeBody(400, "username taken", nil)))
	}, nil, WithNotifier(notifier))

	_, err := c.Do(context.Background(), http.MethodPost, "/auth/register", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want failure")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("Do() error type = %T, want *Error", err)
	}
	if gerr.Code != 400 || gerr.Message != "username taken" {
		t.Errorf("error = code %d message %q, want 400 %q", gerr.Code, gerr.Message, "username taken")
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != "username taken" {
		t.Errorf("notifications = %v, want exactly one %q", notifier.messages, "username taken")
	}
}

func TestClient_AuthFailureSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "envelope 401 under http 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(envelopeBody(401, "token expired", nil)))
			},
		},
		{
			name: "http 401 with envelope body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(envelopeBody(401, "token expired", nil)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &testNotifier{}
			authFailures := 0
			c := newTestClient(t, tt.handler, nil,
				WithNotifier(notifier),
				WithAuthFailureHandler(func() { authFailures++ }),
			)

			_, err := c.Do(context.Background(), http.MethodGet, "/auth/me", nil)
			if !IsAuthError(err) {
				t.Fatalf("IsAuthError(%v) = false, want true", err)
			}
			if authFailures != 1 {
				t.Errorf("auth failure handler called %d times, want 1", authFailures)
			}
			if len(notifier.messages) != 1 {
				t.Errorf("notifications = %v, want exactly one", notifier.messages)
			}
		})
	}
}

func TestClient_TransportStatusWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream unavailable"}`))
	}, nil)

	_, err := c.Do(context.Background(), http.MethodGet, "/models", nil)
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("Do() error type = %T, want *Error", err)
	}
	if gerr.Code != http.StatusBadGateway {
		t.Errorf("code = %d, want %d", gerr.Code, http.StatusBadGateway)
	}
	if gerr.Message != "upstream unavailable" {
		t.Errorf("message = %q, want embedded body message", gerr.Message)
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	notifier := &testNotifier{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[1,2,3]}`))
	}, nil, WithNotifier(notifier))

	_, err := c.Do(context.Background(), http.MethodGet, "/models", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want envelope failure")
	}
	if !errors.Is(err, ErrEmptyEnvelope) {
		t.Errorf("Do() error = %v, want wrapped ErrEmptyEnvelope", err)
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notifications = %v, want exactly one", notifier.messages)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	notifier := &testNotifier{}
	authFailures := 0
	c := NewClient(DefaultConfig().WithBaseURL("http://127.0.0.1:1"), nil, nil,
		WithNotifier(notifier),
		WithAuthFailureHandler(func() { authFailures++ }),
	)

	_, err := c.Do(context.Background(), http.MethodGet, "/ping", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want network failure")
	}
	if ErrorCode(err) != 0 {
		t.Errorf("ErrorCode = %d, want 0 for transport failure", ErrorCode(err))
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notifications = %v, want exactly one", notifier.messages)
	}
	if authFailures != 0 {
		t.Errorf("auth failure handler called %d times, want 0", authFailures)
	}
}

func TestClient_QueryParams(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(envelopeBody(200, "", nil)))
	}, nil)

	_, err := c.Do(context.Background(), http.MethodGet, "/models", nil,
		WithParam("pageNum", "2"), WithParam("pageSize", "50"))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !strings.Contains(got, "pageNum=2") || !strings.Contains(got, "pageSize=50") {
		t.Errorf("query = %q, want pageNum and pageSize", got)
	}
}

func TestChatCompletion(t *testing.T) {
	var gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(DefaultAccessKeyHeader)
		gotAuth = r.Header.Get("Authorization")
		// Raw OpenAI-compatible payload, no envelope.
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "test-chat-1",
			Choices: []ChatChoice{
				{Message: ChatMessage{Role: "assistant", Content: "pong"}, FinishReason: "stop"},
			},
		})
	}))
	defer srv.Close()

	notifier := &testNotifier{}
	c := NewClient(DefaultConfig().WithBaseURL(srv.URL), &testCreds{token: "tok-1"}, nil, WithNotifier(notifier))

	resp, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "test-chat-1",
		Messages: []ChatMessage{{Role: "user", Content: "ping"}},
	}, "ak-1")
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}
	if resp.Choices[0].Message.Content != "pong" {
		t.Errorf("content = %q, want pong", resp.Choices[0].Message.Content)
	}
	if gotKey != "ak-1" {
		t.Errorf("access key header = %q, want ak-1", gotKey)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(notifier.messages) != 0 {
		t.Errorf("notifications = %v, want none on the raw path", notifier.messages)
	}
}

func TestChatCompletion_RequiresAccessKey(t *testing.T) {
	c := NewClient(DefaultConfig(), nil, nil)
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"}, "")
	if !errors.Is(err, ErrNoAccessKey) {
		t.Errorf("ChatCompletion() error = %v, want ErrNoAccessKey", err)
	}
}

func TestChatCompletion_ErrorHasNoSideEffects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid access key"}`))
	}))
	defer srv.Close()

	notifier := &testNotifier{}
	authFailures := 0
	c := NewClient(DefaultConfig().WithBaseURL(srv.URL), nil, nil,
		WithNotifier(notifier),
		WithAuthFailureHandler(func() { authFailures++ }),
	)

	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"}, "bad-key")
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("ChatCompletion() error type = %T, want *Error", err)
	}
	if gerr.Code != http.StatusUnauthorized || gerr.Message != "invalid access key" {
		t.Errorf("error = code %d message %q, want 401 with server message", gerr.Code, gerr.Message)
	}
	if len(notifier.messages) != 0 || authFailures != 0 {
		t.Errorf("raw path triggered pipeline side effects: notifications=%v authFailures=%d", notifier.messages, authFailures)
	}
}

func TestGenerateImage_RequiresAccessKey(t *testing.T) {
	c := NewClient(DefaultConfig(), nil, nil)
	_, err := c.GenerateImage(context.Background(), ImageGenerationRequest{Prompt: "a cat"}, "")
	if !errors.Is(err, ErrNoAccessKey) {
		t.Errorf("GenerateImage() error = %v, want ErrNoAccessKey", err)
	}
}

func TestGenerateImage_AttachesKeyUnconditionally(t *testing.T) {
	var gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(DefaultAccessKeyHeader)
		w.Write([]byte(envelopeBody(200, "", ImageGenerationResponse{ImageURLs: []string{"u"}})))
	}, &testCreds{})

	resp, err := c.GenerateImage(context.Background(), ImageGenerationRequest{Prompt: "a cat"}, "ak-1")
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if gotKey != "ak-1" {
		t.Errorf("access key header = %q, want ak-1 without a session marker", gotKey)
	}
	if len(resp.ImageURLs) != 1 {
		t.Errorf("image urls = %v, want one", resp.ImageURLs)
	}
}
