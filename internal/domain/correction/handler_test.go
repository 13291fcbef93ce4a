package correction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockItemRepo, *echo.Echo) {
	svc, items, _, _ := newTestService()
	return NewHandler(svc), items, echo.New()
}

func postCorrect(e *echo.Echo, h *Handler, itemID, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues(itemID)
	return rec, h.Correct(c)
}

func TestHandler_Correct(t *testing.T) {
	h, items, e := newTestHandler()
	it := seedItem(items)

	rec, err := postCorrect(e, h, it.ID.String(),
		`{"corrections":{"code":"X123","quantity":5},"user":"rev-1","reason":"typo"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Errorf("expected success body, got %s", rec.Body.String())
	}
}

func TestHandler_Correct_MissingCorrections(t *testing.T) {
	h, items, e := newTestHandler()
	it := seedItem(items)

	_, err := postCorrect(e, h, it.ID.String(), `{"user":"rev-1"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Correct_DisallowedField(t *testing.T) {
	h, items, e := newTestHandler()
	it := seedItem(items)

	_, err := postCorrect(e, h, it.ID.String(), `{"corrections":{"id":"evil"}}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Correct_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	_, err := postCorrect(e, h, uuid.New().String(), `{"corrections":{"code":"X"}}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Correct_BadItemID(t *testing.T) {
	h, _, e := newTestHandler()

	_, err := postCorrect(e, h, "not-a-uuid", `{"corrections":{"code":"X"}}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_AuditTrail(t *testing.T) {
	svc, items, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	it := seedItem(items)
	if err := svc.Apply(context.Background(), it.ID, map[string]any{"code": "A"}, "u", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues(it.ID.String())

	if err := h.AuditTrail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Success bool           `json:"success"`
		Audit   []*AuditRecord `json:"audit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Success || len(resp.Audit) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_AuditTrail_Empty(t *testing.T) {
	h, items, e := newTestHandler()
	it := seedItem(items)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues(it.ID.String())

	if err := h.AuditTrail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Audit []*AuditRecord `json:"audit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Audit == nil {
		t.Error("expected empty array, not null")
	}
}
