package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

// fakeExecutor returns a canned report and records the last request
type fakeExecutor struct {
	report  *entities.RunReport
	err     error
	lastReq ansible.PlaybookRequest
}

func (f *fakeExecutor) RunPlaybook(_ context.Context, req ansible.PlaybookRequest) (*entities.RunReport, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func doRequest(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s := NewServer(Config{}, &fakeExecutor{}, nil)

	w := doRequest(t, s, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
}

func TestServer_Metrics(t *testing.T) {
	s := NewServer(Config{}, &fakeExecutor{}, nil)

	w := doRequest(t, s, http.MethodGet, "/metrics", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", w.Code)
	}
}

func TestServer_RunPlaybook_Success(t *testing.T) {
	exec := &fakeExecutor{
		report: &entities.RunReport{
			Success:  true,
			ExitCode: 0,
			Stdout:   "PLAY RECAP\nweb1 : ok=3 changed=1\n",
			Stderr:   "",
		},
	}
	s := NewServer(Config{}, exec, nil)

	w := doRequest(t, s, http.MethodPost, "/run-playbook",
		`{"playbook": "site.yml", "inventory": "hosts.yml"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /run-playbook status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp runPlaybookResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Returncode != 0 {
		t.Errorf("returncode = %d, want 0", resp.Returncode)
	}
	if !strings.Contains(resp.Stdout, "PLAY RECAP") {
		t.Errorf("stdout = %q, want PLAY RECAP output", resp.Stdout)
	}

	if exec.lastReq.Playbook != "site.yml" {
		t.Errorf("executor playbook = %s, want site.yml", exec.lastReq.Playbook)
	}
	if exec.lastReq.Inventory != "hosts.yml" {
		t.Errorf("executor inventory = %s, want hosts.yml", exec.lastReq.Inventory)
	}

	if w.Header().Get("X-Opskit-Run-ID") == "" {
		t.Error("response is missing the run ID header")
	}
}

// A failed playbook is not an HTTP error; the caller reads returncode
func TestServer_RunPlaybook_NonZeroExit(t *testing.T) {
	exec := &fakeExecutor{
		report: &entities.RunReport{
			ExitCode: 2,
			Stdout:   "fatal: [web1]: FAILED!\n",
			Stderr:   "",
		},
	}
	s := NewServer(Config{}, exec, nil)

	w := doRequest(t, s, http.MethodPost, "/run-playbook",
		`{"playbook": "site.yml"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /run-playbook status = %d, want 200", w.Code)
	}

	var resp runPlaybookResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Returncode != 2 {
		t.Errorf("returncode = %d, want 2", resp.Returncode)
	}
}

func TestServer_RunPlaybook_MissingPlaybook(t *testing.T) {
	s := NewServer(Config{}, &fakeExecutor{}, nil)

	w := doRequest(t, s, http.MethodPost, "/run-playbook", `{"inventory": "hosts.yml"}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST /run-playbook status = %d, want 400", w.Code)
	}
}

func TestServer_RunPlaybook_ExecutorError(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("ansible-playbook not installed")}
	s := NewServer(Config{}, exec, nil)

	w := doRequest(t, s, http.MethodPost, "/run-playbook", `{"playbook": "site.yml"}`, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("POST /run-playbook status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not installed") {
		t.Errorf("error body = %s, want executor error", w.Body.String())
	}
}

func TestServer_RunPlaybook_Auth(t *testing.T) {
	exec := &fakeExecutor{report: &entities.RunReport{ExitCode: 0}}
	s := NewServer(Config{AuthToken: "sekrit"}, exec, nil)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"wrong token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"bad scheme", map[string]string{"Authorization": "Basic sekrit"}, http.StatusUnauthorized},
		{"valid token", map[string]string{"Authorization": "Bearer sekrit"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/run-playbook", `{"playbook": "site.yml"}`, tt.headers)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

// Health and metrics stay open even when a token is configured
func TestServer_Auth_DoesNotGuardHealth(t *testing.T) {
	s := NewServer(Config{AuthToken: "sekrit"}, &fakeExecutor{}, nil)

	w := doRequest(t, s, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", w.Code)
	}
}
