package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() http.Handler {
	h := NewHandler(newTestService())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandler_Register(t *testing.T) {
	r := newTestRouter()

	body := `{"name":"Alice","age":30,"password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Registered successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestHandler_Login(t *testing.T) {
	r := newTestRouter()

	reg := `{"name":"Alice","age":30,"password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(reg))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("register failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"name":"Alice","password":"s3cret"}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "Alice" || resp.ID == 0 {
		t.Errorf("unexpected login response %+v", resp)
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"name":"Alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["detail"] != "Invalid credentials" {
		t.Errorf("unexpected detail %q", resp["detail"])
	}
}

func TestHandler_GetPatient(t *testing.T) {
	r := newTestRouter()

	reg := `{"name":"Bob","age":52,"password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(reg))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("register failed: %d", rec.Code)
	}
	var regResp RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &regResp); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest(http.MethodGet, "/patients/1", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["name"] != "Bob" || resp["age"] != float64(52) {
		t.Errorf("unexpected patient %+v", resp)
	}
	if _, hasPassword := resp["password"]; hasPassword {
		t.Error("password must not appear in the response")
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/patients/9999", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["detail"] != "Patient not found" {
		t.Errorf("unexpected detail %q", resp["detail"])
	}
}
