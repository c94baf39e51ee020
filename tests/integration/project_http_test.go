package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sify-labs/boq-backend/internal/catalog"
	"github.com/sify-labs/boq-backend/internal/projects/domain"
	projecthttp "github.com/sify-labs/boq-backend/internal/projects/http"
	"github.com/sify-labs/boq-backend/internal/projects/repository"
	"github.com/sify-labs/boq-backend/internal/projects/service"
	"github.com/sify-labs/boq-backend/internal/session"
	"github.com/sify-labs/boq-backend/internal/transfer"
)

func setupTestRouter(t *testing.T) (*gin.Engine, func()) {
	gin.SetMode(gin.TestMode)

	client, mr := setupTestRedis(t)
	live := repository.NewLiveRepository(client)
	sessions := session.NewMemoryStore()
	svc := service.NewProjectService(live, nil, sessions, catalog.DefaultRateCard(5000))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(session.Middleware(sessions))

	projecthttp.New(svc, nil).Register(api.Group("/projects"))
	transfer.NewHandler(live).Register(api.Group("/snapshot"))

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return r, cleanup
}

func doJSON(t *testing.T, r *gin.Engine, method, path, persona string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if persona != "" {
		req.Header.Set("X-Persona", persona)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createTestProject(t *testing.T, r *gin.Engine, flowType string) string {
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", "", map[string]any{
		"customer_name": "Acme Corp",
		"project_name":  "DC Migration",
		"flow_type":     flowType,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	project := body["project"].(map[string]any)
	return project["public_id"].(string)
}

func TestProjectAPI_CreateAndGet(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	w := doJSON(t, r, http.MethodGet, "/api/v1/projects/"+publicID, "Account Manager", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["can_act"], "Account Manager owns Draft")
	assert.Greater(t, body["total_price"].(float64), float64(0))

	project := body["project"].(map[string]any)
	assert.Equal(t, domain.StatusDraft, project["status"])
}

func TestProjectAPI_Delete(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+publicID, "Account Manager", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+publicID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+publicID, "Account Manager", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectAPI_CreateValidation(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", "", map[string]any{
		"customer_name": "",
		"project_name":  "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects", "", map[string]any{
		"customer_name": "Acme",
		"project_name":  "X",
		"flow_type":     "express",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectAPI_AddItemBelowFloor(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/items", "Account Manager", map[string]any{
		"category":  "Compute",
		"quantity":  1,
		"ask_price": 3000,
		"vm_config": map[string]any{
			"vcpu":       4,
			"ram_gb":     8,
			"storage_gb": 50,
			"os":         "windows-2022",
			"features":   []string{"backup"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["below_floor"])

	item := body["item"].(map[string]any)
	assert.Equal(t, "CI-4C8R50S-WINDOWS-BKP", item["internal_code"])
	assert.Equal(t, float64(4700), item["floor_price"])
}

func TestProjectAPI_UnknownCategory(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/items", "Account Manager", map[string]any{
		"category": "Warehouse",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectAPI_ApprovalFlow(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	// Finance cannot submit a draft.
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/submit", "Finance Admin", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/submit", "Account Manager", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/approve", "Finance Admin", map[string]any{
		"comments": "numbers check out",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	project := decodeBody(t, w)["project"].(map[string]any)
	assert.Equal(t, domain.StatusApproved, project["status"])

	// Terminal state conflicts on re-approval.
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/approve", "Finance Admin", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectAPI_RejectRequiresComment(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "custom")

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/submit", "Account Manager", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/reject", "Solution Architect", map[string]any{
		"comments": "",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+publicID+"/reject", "Solution Architect", map[string]any{
		"comments": "undersized storage tier",
	})
	require.Equal(t, http.StatusOK, w.Code)

	project := decodeBody(t, w)["project"].(map[string]any)
	assert.Equal(t, domain.StatusDraft, project["status"])
}

func TestSnapshotAPI_ExportImportRoundTrip(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	createTestProject(t, r, "standard")
	createTestProject(t, r, "custom")

	w := doJSON(t, r, http.MethodGet, "/api/v1/snapshot/export", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()

	var snap transfer.Snapshot
	require.NoError(t, json.Unmarshal(exported, &snap))
	assert.Len(t, snap.Projects, 2)
	assert.Equal(t, transfer.SnapshotVersion, snap.Version)

	// Re-import the export verbatim.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(2), decodeBody(t, rec)["imported"])
}

func TestSnapshotAPI_InvalidImportLeavesStateUntouched(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	publicID := createTestProject(t, r, "standard")

	w := doJSON(t, r, http.MethodPost, "/api/v1/snapshot/import", "", map[string]any{
		"version": "1.0",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid data format")

	// The existing project is still there.
	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+publicID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
