package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minhyannv/askloop/pkg/chat"
	configpkg "github.com/minhyannv/askloop/pkg/config"
	"github.com/minhyannv/askloop/pkg/webhook"
)

type webhookRecorder struct {
	mu     sync.Mutex
	titles []string
}

func (w *webhookRecorder) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var body struct {
		Embeds []struct {
			Title string `json:"title"`
		} `json:"embeds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Embeds) == 1 {
		w.mu.Lock()
		w.titles = append(w.titles, body.Embeds[0].Title)
		w.mu.Unlock()
	}
	rw.WriteHeader(http.StatusNoContent)
}

// TestRunAgainstHTTPServers wires the real chat client, notifier and
// filesystem store against local servers.
func TestRunAgainstHTTPServers(t *testing.T) {
	var chatCalls int32
	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&chatCalls, 1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Paris is the capital. It has the Eiffel Tower."}}]}`))
	}))
	defer chatSrv.Close()

	hooks := &webhookRecorder{}
	hookSrv := httptest.NewServer(hooks)
	defer hookSrv.Close()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "questions.txt")
	if err := os.WriteFile(seedPath, []byte("What is the capital of France?\n"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := configpkg.DefaultConfig()
	cfg.ChatURL = chatSrv.URL + "/v1/chat/completions"
	cfg.Model = "test-model"
	cfg.WebhookURL = hookSrv.URL
	cfg.SeedFile = seedPath
	cfg.LogsDir = filepath.Join(dir, "logs")

	asker := chat.New(chat.Options{Endpoint: cfg.ChatURL, Model: cfg.Model, SystemPrompt: cfg.SystemPrompt})
	notifier := webhook.New(cfg.WebhookURL)
	loop, err := New(cfg, asker, notifier,
		WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := loop.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.State != StateDoneRequestFailed || res.Iterations != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if calls := atomic.LoadInt32(&chatCalls); calls != 2 {
		t.Fatalf("expected 2 chat calls, got %d", calls)
	}

	got, err := os.ReadFile(filepath.Join(res.RunDir, "generated_question_1.txt"))
	if err != nil {
		t.Fatalf("read question: %v", err)
	}
	if string(got) != "It has the Eiffel Tower?" {
		t.Fatalf("unexpected question %q", got)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"Initial Question", "Answer #1", "Question #1", "Process Error"}
	if !equalStrings(hooks.titles, want) {
		t.Fatalf("unexpected webhook titles %v", hooks.titles)
	}
}
