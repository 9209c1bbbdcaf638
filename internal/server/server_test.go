package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/analytics"
	"github.com/lumenarts/forge/pkg/model"
	"github.com/lumenarts/forge/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signupTemplate() model.Template {
	return model.Template{
		Title: "Volunteer Signup",
		Fields: []model.Field{
			{ID: "name", Label: "Full Name", Type: model.FieldTypeText},
			{ID: "email", Label: "Email", Type: model.FieldTypeEmail},
			{ID: "interest", Label: "Interest", Type: model.FieldTypeSelect, Options: []string{"Music", "Theatre"}},
		},
	}
}

func newTestServer(t *testing.T, options ...Option) (*Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	srv, err := New(mem, zap.NewNop(), options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, mem
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTemplateCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router("debug")

	rec := doJSON(t, router, http.MethodPost, "/api/templates", signupTemplate())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/templates/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got model.Template
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "Volunteer Signup" {
		t.Errorf("title = %q", got.Title)
	}

	updated := got
	updated.Title = "Volunteer Intake"
	rec = doJSON(t, router, http.MethodPut, "/api/templates/"+created.ID, updated)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/templates/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/templates/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestCreateTemplate_ReportsAllIssues(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router("debug")

	bad := model.Template{
		Fields: []model.Field{
			{ID: "a", Label: "", Type: model.FieldTypeSelect},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/templates", bad)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Issues []model.Issue `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Issues) < 3 {
		t.Errorf("issues = %d, want every violation reported: %+v", len(resp.Issues), resp.Issues)
	}
}

func TestStoreOutage_MapsTo503(t *testing.T) {
	srv, mem := newTestServer(t)
	router := srv.Router("debug")
	mem.SetUnavailable(true)

	rec := doJSON(t, router, http.MethodGet, "/api/templates", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestValidateEntry_CollectsFieldIssues(t *testing.T) {
	srv, mem := newTestServer(t)
	router := srv.Router("debug")
	id, err := mem.Create(context.Background(), signupTemplate())
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/templates/"+id+"/entries", entryRequest{
		Values: map[string]any{
			"email":    "not-an-address",
			"interest": "Sculpture",
			"name":     "Jane Doe",
		},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Issues []fieldIssue `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Issues) != 2 {
		t.Fatalf("issues = %+v, want email and interest rejected", resp.Issues)
	}
	if resp.Issues[0].FieldID != "email" || resp.Issues[1].FieldID != "interest" {
		t.Errorf("issues = %+v", resp.Issues)
	}
}

func TestValidateEntry_AcceptsLabelKeys(t *testing.T) {
	srv, mem := newTestServer(t)
	router := srv.Router("debug")
	id, err := mem.Create(context.Background(), signupTemplate())
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/templates/"+id+"/entries", entryRequest{
		Values: map[string]any{"Full Name": "Jane Doe"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Values map[string]any `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Values["name"] != "Jane Doe" {
		t.Errorf("values = %+v, want label key resolved to field id", resp.Values)
	}
}

func TestExportEntry_TextDocument(t *testing.T) {
	rec2, err := analytics.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	srv, mem := newTestServer(t, WithAnalytics(rec2))
	router := srv.Router("debug")
	id, err := mem.Create(context.Background(), signupTemplate())
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/templates/"+id+"/export/text", entryRequest{
		Values: map[string]any{"name": "Jane Doe"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "N/A") {
		t.Errorf("document:\n%s", body)
	}

	summary, err := rec2.Summarize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 1 || summary[0].Exports != 1 {
		t.Errorf("summary = %+v, want one export recorded", summary)
	}
}

func TestExportEntry_UnknownFormat(t *testing.T) {
	srv, mem := newTestServer(t)
	router := srv.Router("debug")
	id, err := mem.Create(context.Background(), signupTemplate())
	if err != nil {
		t.Fatal(err)
	}
	rec := doJSON(t, router, http.MethodPost, "/api/templates/"+id+"/export/docx", entryRequest{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRenderForm_ServesHTML(t *testing.T) {
	srv, mem := newTestServer(t)
	router := srv.Router("debug")
	id, err := mem.Create(context.Background(), signupTemplate())
	if err != nil {
		t.Fatal(err)
	}
	rec := doJSON(t, router, http.MethodGet, "/api/templates/"+id+"/form", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Volunteer Signup") {
		t.Errorf("form missing title:\n%s", rec.Body.String())
	}
}

func TestOptionalSurfacesOffBy503(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router("debug")

	for _, path := range []string{"/api/analytics/summary", "/api/analytics/events"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, rec.Code)
		}
	}
	rec := doJSON(t, router, http.MethodPost, "/api/assets/uploads", uploadRequest{
		TemplateID: "x", FieldID: "y", Filename: "z.png",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("uploads status = %d, want 503", rec.Code)
	}
}
