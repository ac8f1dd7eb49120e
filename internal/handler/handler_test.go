package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nexus/backend/internal/database"
	"nexus/backend/internal/middleware"
	"nexus/backend/internal/models"
	"nexus/backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	h      *Handler
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.NewDB(t)
	h := New(db)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h.Games().Now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.BodyLimit(1 << 10))
	h.RegisterRoutes(api)
	return &testAPI{router: r, h: h, db: db}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return out
}

func (a *testAPI) createCompany(t *testing.T, name, slug string) models.Company {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/companies", gin.H{"name": name, "slug": slug})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create company: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	return decode[models.Company](t, rr)
}

func (a *testAPI) createGame(t *testing.T, companyID uuid.UUID, name string) models.Game {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/companies/"+companyID.String()+"/games", gin.H{"name": name})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	return decode[models.Game](t, rr)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateCompanyRequiresNameAndSlug(t *testing.T) {
	api := newTestAPI(t)

	for name, body := range map[string]any{
		"missing slug": gin.H{"name": "Acme"},
		"missing name": gin.H{"slug": "acme"},
		"empty name":   gin.H{"name": "", "slug": "acme"},
		"empty body":   nil,
	} {
		rr := api.do(t, http.MethodPost, "/api/companies", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rr.Code)
		}
		if got := decode[ErrorResponse](t, rr); got.Error != "name and slug required" {
			t.Fatalf("%s: unexpected error %q", name, got.Error)
		}
	}

	if n := countRows(t, api.db, &models.Company{}); n != 0 {
		t.Fatalf("expected no companies persisted, got %d", n)
	}
}

func TestCreateCompanyMalformedJSON(t *testing.T) {
	api := newTestAPI(t)
	rr := api.do(t, http.MethodPost, "/api/companies", `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateCompanyDuplicateSlugConflicts(t *testing.T) {
	api := newTestAPI(t)
	first := api.createCompany(t, "Acme", "acme")

	rr := api.do(t, http.MethodPost, "/api/companies", gin.H{"name": "Impostor", "slug": "acme"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decode[ErrorResponse](t, rr); got.Error != "Slug already exists" {
		t.Fatalf("unexpected error %q", got.Error)
	}

	list := decode[[]models.CompanyWithCount](t, api.do(t, http.MethodGet, "/api/companies", nil))
	if len(list) != 1 || list[0].ID != first.ID || list[0].Name != "Acme" {
		t.Fatalf("expected original company intact, got %+v", list)
	}
}

func TestListCompaniesReportsZeroGameCount(t *testing.T) {
	api := newTestAPI(t)
	busy := api.createCompany(t, "Busy", "busy")
	api.createCompany(t, "Idle", "idle")
	api.createGame(t, busy.ID, "Run1")

	rr := api.do(t, http.MethodGet, "/api/companies", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rows := decode[[]map[string]any](t, rr)
	if len(rows) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(rows))
	}
	if rows[0]["name"] != "Busy" || rows[0]["game_count"] != float64(1) {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	count, present := rows[1]["game_count"]
	if !present || count != float64(0) {
		t.Fatalf("expected game_count 0 for Idle, got %v (present=%v)", count, present)
	}
}

func TestListCompaniesEmptyArray(t *testing.T) {
	api := newTestAPI(t)
	rr := api.do(t, http.MethodGet, "/api/companies", nil)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %s", rr.Code, rr.Body.String())
	}
}

func TestCreateGameRequiresName(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")

	rr := api.do(t, http.MethodPost, "/api/companies/"+c.ID.String()+"/games", gin.H{"description": "no name"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := decode[ErrorResponse](t, rr); got.Error != "name required" {
		t.Fatalf("unexpected error %q", got.Error)
	}
	if n := countRows(t, api.db, &models.Game{}); n != 0 {
		t.Fatalf("expected no games persisted, got %d", n)
	}
}

func TestCreateGameDescription(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	path := "/api/companies/" + c.ID.String() + "/games"

	withDesc := decode[models.Game](t, api.do(t, http.MethodPost, path, gin.H{"name": "A", "description": "notes"}))
	if withDesc.Description == nil || *withDesc.Description != "notes" {
		t.Fatalf("expected description notes, got %v", withDesc.Description)
	}

	rr := api.do(t, http.MethodPost, path, gin.H{"name": "B", "description": ""})
	raw := decode[map[string]any](t, rr)
	if v, ok := raw["description"]; !ok || v != nil {
		t.Fatalf("expected empty description stored as null, got %v", raw["description"])
	}
}

func TestCreateGameUnknownCompanyIsServerError(t *testing.T) {
	api := newTestAPI(t)
	rr := api.do(t, http.MethodPost, "/api/companies/"+uuid.NewString()+"/games", gin.H{"name": "orphan"})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on foreign key violation, got %d", rr.Code)
	}
	if got := decode[ErrorResponse](t, rr); got.Error == "" {
		t.Fatalf("expected error message")
	}
}

func TestListCompanyGamesOrderAndProjection(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	a := api.createGame(t, c.ID, "A")
	b := api.createGame(t, c.ID, "B")
	path := "/api/companies/" + c.ID.String() + "/games"

	if rr := api.do(t, http.MethodPut, "/api/games/"+b.ID.String(), gin.H{"fitness_score": 1}); rr.Code != http.StatusOK {
		t.Fatalf("update B: %d", rr.Code)
	}
	list := decode[[]map[string]any](t, api.do(t, http.MethodGet, path, nil))
	if len(list) != 2 || list[0]["id"] != b.ID.String() || list[1]["id"] != a.ID.String() {
		t.Fatalf("expected B before A, got %v", list)
	}

	if rr := api.do(t, http.MethodPut, "/api/games/"+a.ID.String(), gin.H{}); rr.Code != http.StatusOK {
		t.Fatalf("update A: %d", rr.Code)
	}
	list = decode[[]map[string]any](t, api.do(t, http.MethodGet, path, nil))
	if list[0]["id"] != a.ID.String() {
		t.Fatalf("expected A first after its update, got %v", list[0]["name"])
	}

	for _, field := range []string{"board_state", "agent_assignments", "active_drivers", "completed_phases", "log_entries", "custom_items"} {
		if _, ok := list[0][field]; ok {
			t.Fatalf("expected %s to be left out of the list view", field)
		}
	}
	for _, field := range []string{"id", "company_id", "name", "description", "fitness_score", "cycle_number", "cycle_phase", "created_at", "updated_at"} {
		if _, ok := list[0][field]; !ok {
			t.Fatalf("expected %s in the list view", field)
		}
	}
}

func TestMissingGameIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	kept := api.createGame(t, c.ID, "Kept")
	missing := "/api/games/" + uuid.NewString()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = gin.H{"fitness_score": 5}
		}
		rr := api.do(t, method, missing, body)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", method, rr.Code)
		}
		if got := decode[ErrorResponse](t, rr); got.Error != "Game not found" {
			t.Fatalf("%s: unexpected error %q", method, got.Error)
		}
	}

	got := decode[models.Game](t, api.do(t, http.MethodGet, "/api/games/"+kept.ID.String(), nil))
	if got.FitnessScore != 0 || !got.UpdatedAt.Equal(kept.UpdatedAt) {
		t.Fatalf("expected other game untouched, got %+v", got)
	}
	if n := countRows(t, api.db, &models.Game{}); n != 1 {
		t.Fatalf("expected 1 game, got %d", n)
	}
}

func TestMalformedIDsAreBadRequests(t *testing.T) {
	api := newTestAPI(t)
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/games/not-a-uuid"},
		{http.MethodPut, "/api/games/not-a-uuid"},
		{http.MethodDelete, "/api/games/not-a-uuid"},
		{http.MethodGet, "/api/companies/42/games"},
		{http.MethodPost, "/api/companies/42/games"},
	}
	for _, tc := range cases {
		if rr := api.do(t, tc.method, tc.path, gin.H{"name": "x"}); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestUpdateIsWholesaleReplace(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	g := api.createGame(t, c.ID, "Run1")
	path := "/api/games/" + g.ID.String()

	rr := api.do(t, http.MethodPut, path, `{"board_state":{"cells":[[0,1],[1,0]]},"cycle_phase":"act","cycle_number":4}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("first update: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	got := decode[map[string]any](t, api.do(t, http.MethodGet, path, nil))
	board, _ := json.Marshal(got["board_state"])
	if string(board) != `{"cells":[[0,1],[1,0]]}` {
		t.Fatalf("expected board_state set, got %s", board)
	}

	if rr := api.do(t, http.MethodPut, path, `{"fitness_score":3}`); rr.Code != http.StatusOK {
		t.Fatalf("second update: expected 200, got %d", rr.Code)
	}
	got = decode[map[string]any](t, api.do(t, http.MethodGet, path, nil))
	for _, field := range []string{"board_state", "agent_assignments", "active_drivers", "completed_phases", "log_entries", "custom_items", "cycle_number", "cycle_phase"} {
		if got[field] != nil {
			t.Fatalf("expected %s cleared, got %v", field, got[field])
		}
	}
	if got["fitness_score"] != float64(3) {
		t.Fatalf("expected fitness_score 3, got %v", got["fitness_score"])
	}
}

func TestUpdateEmptyBodyClearsAndZeroesScore(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	g := api.createGame(t, c.ID, "Run1")
	path := "/api/games/" + g.ID.String()

	api.do(t, http.MethodPut, path, gin.H{"fitness_score": 9})
	rr := api.do(t, http.MethodPut, path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d: %s", rr.Code, rr.Body.String())
	}
	got := decode[models.Game](t, api.do(t, http.MethodGet, path, nil))
	if got.FitnessScore != 0 {
		t.Fatalf("expected fitness_score reset to 0, got %v", got.FitnessScore)
	}
}

func TestUpdateReturnsIDAndTimestamp(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	g := api.createGame(t, c.ID, "Run1")

	rr := api.do(t, http.MethodPut, "/api/games/"+g.ID.String(), gin.H{"fitness_score": 1})
	body := decode[map[string]any](t, rr)
	if len(body) != 2 || body["id"] != g.ID.String() || body["updated_at"] == nil {
		t.Fatalf("expected {id, updated_at}, got %v", body)
	}
	stamp := decode[models.GameStamp](t, rr)
	if !stamp.UpdatedAt.After(g.UpdatedAt) {
		t.Fatalf("expected updated_at to move forward: %s -> %s", g.UpdatedAt, stamp.UpdatedAt)
	}
}

func TestUpdateRejectsWrongScalarTypes(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	g := api.createGame(t, c.ID, "Run1")

	rr := api.do(t, http.MethodPut, "/api/games/"+g.ID.String(), `{"cycle_number":"two"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDeleteGame(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCompany(t, "Acme", "acme")
	g := api.createGame(t, c.ID, "Run1")
	path := "/api/games/" + g.ID.String()

	rr := api.do(t, http.MethodDelete, path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := decode[DeleteResponse](t, rr); !got.Deleted {
		t.Fatalf("expected deleted:true")
	}
	if rr := api.do(t, http.MethodGet, path, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}

	list := decode[[]models.CompanyWithCount](t, api.do(t, http.MethodGet, "/api/companies", nil))
	if list[0].GameCount != 0 {
		t.Fatalf("expected game_count back to 0, got %d", list[0].GameCount)
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	api := newTestAPI(t)
	big := `{"name":"` + strings.Repeat("x", 2048) + `","slug":"big"}`

	rr := api.do(t, http.MethodPost, "/api/companies", big)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	if n := countRows(t, api.db, &models.Company{}); n != 0 {
		t.Fatalf("expected nothing persisted, got %d", n)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := decode[HealthResponse](t, rr); got.Status != "ok" || got.Message != "" {
		t.Fatalf("unexpected health body %+v", got)
	}

	if err := database.Close(api.db); err != nil {
		t.Fatalf("close: %v", err)
	}
	rr = api.do(t, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 once the database is gone, got %d", rr.Code)
	}
	if got := decode[HealthResponse](t, rr); got.Status != "error" || got.Message == "" {
		t.Fatalf("unexpected health body %+v", got)
	}
}

func TestStorageFailuresSurfaceAs500(t *testing.T) {
	api := newTestAPI(t)
	if err := database.Close(api.db); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/companies", nil},
		{http.MethodPost, "/api/companies", gin.H{"name": "Acme", "slug": "acme"}},
		{http.MethodGet, "/api/companies/" + uuid.NewString() + "/games", nil},
		{http.MethodGet, "/api/games/" + uuid.NewString(), nil},
		{http.MethodPut, "/api/games/" + uuid.NewString(), gin.H{}},
		{http.MethodDelete, "/api/games/" + uuid.NewString(), nil},
	} {
		rr := api.do(t, tc.method, tc.path, tc.body)
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d", tc.method, tc.path, rr.Code)
		}
		if got := decode[ErrorResponse](t, rr); got.Error == "" {
			t.Fatalf("%s %s: expected error message", tc.method, tc.path)
		}
	}
}
