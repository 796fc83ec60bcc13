package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/remote/mock"
	"github.com/affanabid/Hiro/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter() (*gin.Engine, *mock.MockCollection, *view.ViewModel) {
	coll := mock.NewMockCollection()
	logger := zap.NewNop()
	vm := view.New(coll, logger)
	router := NewRouter(vm, coll, logger, 1000)
	return router, coll, vm
}

func qaEngineerPayload() map[string]any {
	return map[string]any{
		"title":          "QA Engineer",
		"status":         "active",
		"domain":         "Quality",
		"description":    "Test.",
		"jobType":        "remote",
		"jobTime":        "full-time",
		"requiredSkills": []string{"SQL", "Python"},
	}
}

func TestCreateJob_Success(t *testing.T) {
	router, coll, _ := setupTestRouter()

	jsonBody, _ := json.Marshal(qaEngineerPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(coll.Created) != 1 {
		t.Fatalf("expected 1 create request, got %d", len(coll.Created))
	}
	if coll.Created[0].RequiredSkills != "SQL, Python" {
		t.Errorf("expected wire skills %q, got %q", "SQL, Python", coll.Created[0].RequiredSkills)
	}
	// Exactly one refresh follows the successful mutation.
	if coll.ListCalls != 1 {
		t.Errorf("expected exactly 1 list call after create, got %d", coll.ListCalls)
	}
}

func TestCreateJob_ValidationFailure(t *testing.T) {
	router, coll, _ := setupTestRouter()

	payload := qaEngineerPayload()
	payload["requiredSkills"] = []string{}
	payload["title"] = "QA"
	jsonBody, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Fields["title"]; !ok {
		t.Errorf("expected a title field error, got %v", resp.Fields)
	}
	if _, ok := resp.Fields["requiredSkills"]; !ok {
		t.Errorf("expected a requiredSkills field error, got %v", resp.Fields)
	}
	if len(coll.Created) != 0 || coll.ListCalls != 0 {
		t.Error("expected no traffic for an invalid form")
	}
}

func TestCreateJob_UpstreamFailure(t *testing.T) {
	router, coll, _ := setupTestRouter()
	coll.CreateFunc = func(ctx context.Context, draft domain.JobDraft) (domain.JobRecord, error) {
		return domain.JobRecord{}, &domain.TransportError{Op: "create", Status: 500}
	}

	jsonBody, _ := json.Marshal(qaEngineerPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}
	if coll.ListCalls != 0 {
		t.Error("expected no refresh after a failed create")
	}
}

func TestUpdateJob_Success(t *testing.T) {
	router, coll, _ := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 4, Title: "QA Engineer"})

	payload := qaEngineerPayload()
	payload["title"] = "Senior QA Engineer"
	jsonBody, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/jobs/4", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	draft, ok := coll.Updated[4]
	if !ok {
		t.Fatalf("expected an update for ID 4, got %v", coll.Updated)
	}
	if draft.Title != "Senior QA Engineer" {
		t.Errorf("unexpected title %q", draft.Title)
	}
	if coll.ListCalls != 1 {
		t.Errorf("expected exactly 1 list call after update, got %d", coll.ListCalls)
	}
}

func TestPatchJob_Success(t *testing.T) {
	router, coll, _ := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 6, Title: "QA Engineer", Status: domain.StatusActive})

	jsonBody, _ := json.Marshal(map[string]any{"status": "closed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/jobs/6", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	patch, ok := coll.Patched[6]
	if !ok || patch.Status == nil || *patch.Status != domain.StatusClosed {
		t.Errorf("expected a status-only patch, got %+v", patch)
	}
	if patch.Title != nil {
		t.Error("expected untouched fields to stay unset")
	}
	if coll.ListCalls != 1 {
		t.Errorf("expected exactly 1 list call after patch, got %d", coll.ListCalls)
	}
}

func TestPatchJob_InvalidStatus(t *testing.T) {
	router, coll, _ := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 6, Title: "QA Engineer", Status: domain.StatusActive})

	jsonBody, _ := json.Marshal(map[string]any{"status": "archived"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/jobs/6", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(coll.Patched) != 0 {
		t.Error("expected no patch request for an invalid status")
	}
}

func TestDeleteJob_Success(t *testing.T) {
	router, coll, _ := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 9, Title: "QA Engineer"})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/9", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if len(coll.DeleteCalls) != 1 || coll.DeleteCalls[0] != 9 {
		t.Errorf("expected one delete of ID 9, got %v", coll.DeleteCalls)
	}
	if coll.ListCalls != 1 {
		t.Errorf("expected exactly 1 list call after delete, got %d", coll.ListCalls)
	}
}

func TestDeleteJob_NotFound(t *testing.T) {
	router, coll, _ := setupTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if len(coll.DeleteCalls) != 0 {
		t.Errorf("expected no delete request, got %v", coll.DeleteCalls)
	}
}

func TestListJobs_ServesSnapshot(t *testing.T) {
	router, coll, vm := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 1, Title: "QA Engineer"})
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var snap view.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(snap.Jobs) != 1 || snap.Jobs[0].Title != "QA Engineer" {
		t.Errorf("unexpected snapshot %+v", snap.Jobs)
	}

	// The list endpoint reads the snapshot; it never proxies upstream.
	calls := coll.ListCalls
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
	if coll.ListCalls != calls {
		t.Error("expected GET /jobs not to hit the jobs API")
	}
}

func TestStreamJobs_PushesSnapshots(t *testing.T) {
	router, coll, vm := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 1, Title: "QA Engineer"})
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/jobs/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// The current snapshot arrives on connect.
	var first view.Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if len(first.Jobs) != 1 || first.Jobs[0].Title != "QA Engineer" {
		t.Errorf("unexpected initial snapshot %+v", first.Jobs)
	}

	// Each refresh pushes the new snapshot.
	coll.Seed(domain.JobRecord{ID: 2, Title: "Data Engineer"})
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	var second view.Snapshot
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read pushed snapshot: %v", err)
	}
	if len(second.Jobs) != 2 {
		t.Errorf("expected 2 jobs in the pushed snapshot, got %d", len(second.Jobs))
	}

	// A client disconnecting must not disturb later refreshes.
	conn.Close()
	for i := 0; i < 10; i++ {
		if err := vm.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh after disconnect: %v", err)
		}
	}
}

func TestHealth_ReportsSnapshotState(t *testing.T) {
	router, coll, vm := setupTestRouter()
	coll.Seed(domain.JobRecord{ID: 1, Title: "QA Engineer"})
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Status    string    `json:"status"`
		FetchedAt time.Time `json:"snapshot_fetched_at"`
		Jobs      int       `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ok" || resp.Jobs != 1 {
		t.Errorf("unexpected health payload: %s", w.Body.String())
	}
	if resp.FetchedAt.IsZero() {
		t.Error("expected snapshot_fetched_at to be set")
	}
}

func TestInvalidJobID(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
