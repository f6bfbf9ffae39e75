package processing_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/documark/triage/internal/processing"
	"github.com/documark/triage/pkg/routes"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()

	handler := testSystem(t).Handler(1024 * 1024)

	mux := http.NewServeMux()
	routes.Register(mux,
		handler.Routes(),
		handler.CatalogRoutes(),
		handler.MediaRoutes(),
	)
	return mux
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestProcessEndpointUnsupportedMedia(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartBody(t, "file", "report.docx", []byte("data"))
	req := httptest.NewRequest("POST", "/process", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rec.Code)
	}

	var failure processing.Failure
	if err := json.NewDecoder(rec.Body).Decode(&failure); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if failure.Reason == "" {
		t.Error("missing failure reason")
	}
	if failure.Stage != "" {
		t.Errorf("boundary rejection stage = %q, want empty", failure.Stage)
	}
}

func TestProcessEndpointMissingFile(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartBody(t, "wrong_field", "report.txt", []byte("data"))
	req := httptest.NewRequest("POST", "/process", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBatchEndpointRequiresFiles(t *testing.T) {
	mux := testMux(t)

	body, contentType := multipartBody(t, "file", "report.txt", []byte("data"))
	req := httptest.NewRequest("POST", "/process/batch", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBatchEndpointIsolatesFailures(t *testing.T) {
	mux := testMux(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, filename := range []string{"a.docx", "b.xlsx"} {
		part, err := writer.CreateFormFile("files", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("unsupported")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/process/batch", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var results []processing.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for i, result := range results {
		if result.Error == "" {
			t.Errorf("result %d: missing error", i)
		}
	}
}

func TestDepartmentsEndpoint(t *testing.T) {
	mux := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/departments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var infos []processing.DepartmentInfo
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 3 {
		t.Errorf("departments = %d, want 3", len(infos))
	}
}

func TestMediaTypesEndpoint(t *testing.T) {
	mux := testMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/media-types", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["media_types"]) == 0 {
		t.Error("missing media types")
	}
}
