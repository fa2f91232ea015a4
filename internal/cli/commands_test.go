package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/doula/internal/models"
)

var cliNow = time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)

type fakeServer struct {
	mu       sync.Mutex
	chats    []models.ChatRequest
	onboards []map[string]any
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fake := &fakeServer{}
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/onboarding", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		fake.mu.Lock()
		fake.onboards = append(fake.onboards, body)
		fake.mu.Unlock()
		_, _ = w.Write([]byte(`{"user_id":7,"due_date":"2026-10-07","current_week":20,"current_day":0,"message":"Profile created"}`))
	}).Methods(http.MethodPost)
	router.HandleFunc("/timeline/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] != "7" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id":3,"title":"Anatomy Scan","description":"Detailed ultrasound.","week_start":18,"week_end":22,"is_completed":false,"category":"Medical"},
			{"id":1,"title":"NIPT","description":"Blood screening.","week_start":10,"week_end":14,"is_completed":true,"category":"Test"},
			{"id":8,"title":"Tdap Vaccine","description":"Whooping cough.","week_start":27,"week_end":36,"is_completed":false,"category":"Vaccine"}
		]`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		fake.mu.Lock()
		fake.chats = append(fake.chats, req)
		fake.mu.Unlock()
		_, _ = w.Write([]byte(`{"response":"Some swelling is normal."}`))
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return fake, srv
}

type cliEnv struct {
	fake *fakeServer
	srv  *httptest.Server
	dir  string
	tui  int
	last *app
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	fake, srv := newFakeServer(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("DOULA_GLOBAL_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("DOULA_GLOBAL_CONFIG_DIR", filepath.Join(dir, "config", "doula"))
	t.Setenv("DOULA_DATABASE_PATH", "")
	t.Setenv("DOULA_API_BASE_URL", srv.URL)
	t.Setenv("DOULA_LOGGING_LEVEL", "error")
	t.Setenv("DOULA_LOGGING_FILE", "")
	return &cliEnv{fake: fake, srv: srv, dir: dir}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	e.last = a
	a.now = func() time.Time { return cliNow }
	a.isTTY = func() bool { return false }
	a.runTUI = func(ctx context.Context, a *app) error {
		e.tui++
		return launchTUI(ctx, a)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(a, "test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		// cobra falls back to os.Args when args is nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := a.execute(context.Background(), cmd)
	return out.String(), err
}

func (e *cliEnv) onboard(t *testing.T) {
	t.Helper()
	_, err := e.run(t, "onboard", "--name", "Dana", "--lmp", "2025-12-31")
	require.NoError(t, err)
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	require.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd(newApp(), "dev")
	for _, name := range []string{"tui", "onboard", "timeline", "chat", "week", "gobag", "health"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, found.Name())
	}

	found, _, err := root.Find([]string{"bag", "check"})
	require.NoError(t, err)
	require.Equal(t, "check", found.Name())
}

func TestRootWithoutTTYRefusesTUI(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t)
	exitErr := requireExitCode(t, err, ExitCodeUsage)
	require.Contains(t, exitErr.Error(), "interactive terminal")
	require.Equal(t, 1, env.tui)

	_, err = env.run(t, "tui")
	requireExitCode(t, err, ExitCodeUsage)
	require.Equal(t, 2, env.tui)
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv("DOULA_API_BASE_URL", "ftp://example.com")

	_, err := env.run(t, "health")
	exitErr := requireExitCode(t, err, ExitCodeUsage)
	require.Contains(t, exitErr.Error(), "api.base_url must use http or https")
}

func TestLogFileClosedAfterRun(t *testing.T) {
	env := newCLIEnv(t)
	logPath := filepath.Join(env.dir, "logs", "doula.log")
	t.Setenv("DOULA_LOGGING_FILE", logPath)
	t.Setenv("DOULA_LOGGING_LEVEL", "debug")

	_, err := env.run(t, "health")
	require.NoError(t, err)
	require.NotNil(t, env.last.logFile)
	_, err = env.last.logFile.WriteString("late\n")
	require.ErrorIs(t, err, os.ErrClosed)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "config loaded")

	// Failing commands skip post-run hooks; the file is still released.
	_, err = env.run(t, "timeline")
	requireExitCode(t, err, ExitCodeUsage)
	require.NotNil(t, env.last.logFile)
	_, err = env.last.logFile.WriteString("late\n")
	require.ErrorIs(t, err, os.ErrClosed)
}

func TestOnboardStoresProfile(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "onboard", "--name", "Dana", "--lmp", "2025-12-31", "--risks", "twins")
	require.NoError(t, err)
	require.Contains(t, out, "Profile created")
	require.Contains(t, out, "Welcome, Dana! You are in week 20 (trimester 2).")
	require.Contains(t, out, "Due date: 2026-10-07")

	require.Len(t, env.fake.onboards, 1)
	body := env.fake.onboards[0]
	require.Equal(t, "Dana", body["name"])
	require.Equal(t, "2025-12-31", body["last_menstrual_period"])
	require.Equal(t, "twins", body["high_risk_factors"])
	require.NotContains(t, body, "due_date")

	out, err = env.run(t, "week")
	require.NoError(t, err)
	require.Contains(t, out, "Week 20, day 0 (trimester 2)")
}

func TestOnboardValidatesLocally(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "onboard", "--lmp", "2025-12-31")
	requireExitCode(t, err, ExitCodeUsage)

	_, err = env.run(t, "onboard", "--name", "Dana", "--lmp", "2026-06-01")
	exitErr := requireExitCode(t, err, ExitCodeUsage)
	require.Contains(t, exitErr.Error(), "last period cannot be in the future")

	_, err = env.run(t, "onboard", "--name", "Dana", "--due", "07/10/2026")
	requireExitCode(t, err, ExitCodeUsage)
	require.Empty(t, env.fake.onboards)
}

func TestTimelineRequiresProfile(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "timeline")
	exitErr := requireExitCode(t, err, ExitCodeUsage)
	require.Contains(t, exitErr.Error(), "doula onboard")
}

func TestTimelineTableKeepsServerOrder(t *testing.T) {
	env := newCLIEnv(t)
	env.onboard(t)

	out, err := env.run(t, "timeline")
	require.NoError(t, err)
	out = stripANSI(out)
	require.Contains(t, out, "Week 20")
	require.Contains(t, out, "HAPPENING NOW")

	anatomy := strings.Index(out, "Anatomy Scan")
	nipt := strings.Index(out, "NIPT")
	tdap := strings.Index(out, "Tdap Vaccine")
	require.True(t, anatomy >= 0 && anatomy < nipt && nipt < tdap, out)
}

func TestTimelineJSONClassifiesAgainstWeek(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "timeline", "--user", "7", "--week", "30", "--json")
	require.NoError(t, err)

	var rows []struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Equal(t, []int{3, 1, 8}, []int{rows[0].ID, rows[1].ID, rows[2].ID})
	require.Equal(t, "past", rows[0].Status)
	require.Equal(t, "past", rows[1].Status)
	require.Equal(t, "current", rows[2].Status)
}

func TestTimelineBackendErrorExitCode(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "timeline", "--user", "9", "--week", "20")
	exitErr := requireExitCode(t, err, ExitCodeBackend)
	require.Contains(t, exitErr.Error(), "Server Error: 500")
}

func TestWeekFromFlags(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "week", "--due", "2026-10-07")
	require.NoError(t, err)
	require.Contains(t, out, "Week 20, day 0 (trimester 2)")
	require.Contains(t, out, "size of a Banana")
	require.Contains(t, out, "Stay hydrated!")

	out, err = env.run(t, "week", "--lmp", "2025-12-31", "--json")
	require.NoError(t, err)
	var summary weekSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Equal(t, "2026-10-07", summary.DueDate)
	require.Equal(t, 20, summary.Weeks)
	require.Equal(t, 2, summary.Trimester)

	_, err = env.run(t, "week", "--due", "2026-10-07", "--lmp", "2025-12-31")
	require.Error(t, err)
}

func TestGoBagCheckAndUncheck(t *testing.T) {
	env := newCLIEnv(t)
	env.onboard(t)

	out, err := env.run(t, "gobag")
	require.NoError(t, err)
	require.Contains(t, out, "0/9 packed")

	out, err = env.run(t, "gobag", "check", "2")
	require.NoError(t, err)
	require.Contains(t, out, "1/9 packed")
	require.Contains(t, out, "[x]  Essentials  Phone Charger (Long Cord)")

	out, err = env.run(t, "gobag", "uncheck", "2")
	require.NoError(t, err)
	require.Contains(t, out, "0/9 packed")

	_, err = env.run(t, "gobag", "check", "42")
	exitErr := requireExitCode(t, err, ExitCodeUsage)
	require.Contains(t, exitErr.Error(), "no go-bag item with id 42")

	_, err = env.run(t, "gobag", "check", "two")
	requireExitCode(t, err, ExitCodeUsage)
}

func TestChatPrintsReplyAndKeepsHistory(t *testing.T) {
	env := newCLIEnv(t)
	env.onboard(t)

	out, err := env.run(t, "chat", "is", "swelling", "normal?")
	require.NoError(t, err)
	require.Equal(t, "Some swelling is normal.\n", out)
	require.Equal(t, []models.ChatRequest{{UserID: 7, Message: "is swelling normal?"}}, env.fake.chats)

	out, err = env.run(t, "chat", "--history", "10")
	require.NoError(t, err)
	require.Contains(t, out, "You: is swelling normal?")
	require.Contains(t, out, "Antigravity: Some swelling is normal.")

	_, err = env.run(t, "chat")
	requireExitCode(t, err, ExitCodeUsage)
}

func TestHealth(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "health")
	require.NoError(t, err)
	require.Contains(t, out, "is healthy")

	env.srv.Close()
	_, err = env.run(t, "health")
	exitErr := requireExitCode(t, err, ExitCodeBackend)
	require.Contains(t, exitErr.Error(), "Connection Error")
}
