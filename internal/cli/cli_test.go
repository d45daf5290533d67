package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/llmctl/internal/gatewaytest"
	"github.com/me/llmctl/internal/store"
	"github.com/me/llmctl/pkg/gateway"
)

// testEnv points the CLI at a fake gateway and a throwaway state database.
// Each runCLI call is a full process-equivalent invocation, so session state
// only survives between calls through the state database.
type testEnv struct {
	gw      *gatewaytest.Server
	stateDB string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gw := gatewaytest.New()
	srv := httptest.NewServer(gw.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	stateDB := filepath.Join(dir, "state.db")

	t.Setenv("HOME", dir)
	t.Setenv("LLMCTL_SERVER", srv.URL)
	t.Setenv("LLMCTL_STATE_DB", stateDB)
	t.Setenv("LLMCTL_ACCESS_KEY", "")

	return &testEnv{gw: gw, stateDB: stateDB}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// storedToken reads the persisted token the way the next invocation would.
func (e *testEnv) storedToken(t *testing.T) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	db, err := store.NewSQLiteStore(e.stateDB, logger)
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer db.Close()
	token, err := db.Get(context.Background(), store.KeyToken)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	return token
}

func TestLoginThenWhoami(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	stdout, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(stdout, "Logged in as alice") {
		t.Errorf("login stdout = %q", stdout)
	}

	// Separate invocation: the session must survive via the state database.
	stdout, stderr, err := runCLI(t, "", "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(stdout, "Username: alice") {
		t.Errorf("whoami stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "Overview - LLM Proxy Console") {
		t.Errorf("whoami stderr = %q, want the page title", stderr)
	}
}

func TestLoginPrompts(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	stdout, _, err := runCLI(t, "alice\npw\n", "login")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(stdout, "Logged in as alice") {
		t.Errorf("login stdout = %q", stdout)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	_, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "wrong")
	if err == nil {
		t.Fatal("login error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "invalid username or password") {
		t.Errorf("login error = %v", err)
	}
	if env.storedToken(t) != "" {
		t.Error("token persisted after failed login")
	}
}

func TestWhoamiRequiresLogin(t *testing.T) {
	newTestEnv(t)

	_, _, err := runCLI(t, "", "whoami")
	if err == nil {
		t.Fatal("whoami error = nil, want guard redirect")
	}
	if !strings.Contains(err.Error(), "authentication required") {
		t.Errorf("whoami error = %v", err)
	}
	if !strings.Contains(err.Error(), "redirect=/dashboard") {
		t.Errorf("whoami error = %v, want the intended path", err)
	}
}

func TestLoginIsGuestOnly(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	_, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw")
	if err == nil {
		t.Fatal("second login error = nil, want guard redirect")
	}
	if !strings.Contains(err.Error(), "already logged in as alice") {
		t.Errorf("second login error = %v", err)
	}

	_, _, err = runCLI(t, "", "register", "-u", "bob", "-p", "pw")
	if err == nil || !strings.Contains(err.Error(), "already logged in") {
		t.Errorf("register while logged in error = %v, want guard redirect", err)
	}
}

func TestRoleRestrictedCommands(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)
	env.gw.AddAccount("root", "pw", gateway.RoleRootAdmin)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	_, _, err := runCLI(t, "", "admin", "users")
	if err == nil || !strings.Contains(err.Error(), "forbidden") {
		t.Errorf("admin users as regular user error = %v, want forbidden", err)
	}

	if _, _, err := runCLI(t, "", "logout"); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if _, _, err := runCLI(t, "", "login", "-u", "root", "-p", "pw"); err != nil {
		t.Fatalf("root login error = %v", err)
	}

	stdout, _, err := runCLI(t, "", "admin", "users")
	if err != nil {
		t.Fatalf("admin users as root error = %v", err)
	}
	if !strings.Contains(stdout, "alice") || !strings.Contains(stdout, "root") {
		t.Errorf("admin users stdout = %q", stdout)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	for i := 0; i < 3; i++ {
		stdout, _, err := runCLI(t, "", "logout")
		if err != nil {
			t.Fatalf("logout #%d error = %v", i+1, err)
		}
		if !strings.Contains(stdout, "Logged out.") {
			t.Errorf("logout stdout = %q", stdout)
		}
	}
	if env.storedToken(t) != "" {
		t.Error("token persisted after logout")
	}
}

func TestExpiredTokenInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	env.gw.RevokeToken(env.storedToken(t))

	_, stderr, err := runCLI(t, "", "whoami", "--refresh")
	if err == nil {
		t.Fatal("whoami error = nil with a revoked token")
	}
	if !strings.Contains(stderr, "session expired") {
		t.Errorf("whoami stderr = %q, want the session-expired notice", stderr)
	}
	if env.storedToken(t) != "" {
		t.Error("revoked token still persisted; the auth-failure handler must invalidate")
	}

	// The next invocation starts unauthenticated and hits the guard.
	_, _, err = runCLI(t, "", "keys", "list")
	if err == nil || !strings.Contains(err.Error(), "authentication required") {
		t.Errorf("keys list error = %v, want guard redirect", err)
	}
}

func TestKeysCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	stdout, _, err := runCLI(t, "", "keys", "create")
	if err != nil {
		t.Fatalf("keys create error = %v", err)
	}
	if !strings.Contains(stdout, "Created key") || !strings.Contains(stdout, "ak_") {
		t.Errorf("keys create stdout = %q, want the plaintext key", stdout)
	}

	stdout, _, err = runCLI(t, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list error = %v", err)
	}
	if strings.Contains(stdout, "ak_") && !strings.Contains(stdout, "****") {
		t.Errorf("keys list stdout = %q, want masked keys only", stdout)
	}
}

func TestChat(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)
	env.gw.AddAccessKey("ak-test")

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	stdout, stderr, err := runCLI(t, "", "chat", "--access-key", "ak-test", "-m", "test-chat-1", "ping")
	if err != nil {
		t.Fatalf("chat error = %v", err)
	}
	if strings.TrimSpace(stdout) != "pong" {
		t.Errorf("chat stdout = %q, want pong", stdout)
	}
	if !strings.Contains(stderr, "test-chat-1") {
		t.Errorf("chat stderr = %q, want model and token usage", stderr)
	}
}

func TestChatWithoutAccessKey(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	_, _, err := runCLI(t, "", "chat", "-m", "test-chat-1", "ping")
	if err == nil {
		t.Fatal("chat error = nil without an access key")
	}
	if !strings.Contains(err.Error(), "access") {
		t.Errorf("chat error = %v, want access-key guidance", err)
	}
}

func TestOrders(t *testing.T) {
	env := newTestEnv(t)
	env.gw.AddAccount("alice", "pw", gateway.RoleUser)

	if _, _, err := runCLI(t, "", "login", "-u", "alice", "-p", "pw"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	stdout, _, err := runCLI(t, "", "orders", "create", "10.5")
	if err != nil {
		t.Fatalf("orders create error = %v", err)
	}
	if !strings.Contains(stdout, "ORD-") {
		t.Errorf("orders create stdout = %q, want an order number", stdout)
	}

	stdout, _, err = runCLI(t, "", "orders", "list")
	if err != nil {
		t.Fatalf("orders list error = %v", err)
	}
	if !strings.Contains(stdout, "ORD-") || !strings.Contains(stdout, "PENDING") {
		t.Errorf("orders list stdout = %q", stdout)
	}
}
