package file

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()
	svc, repo, _ := newTestService()
	h := NewHandler(svc, 10<<20)

	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Post("/verify", h.Verify)
	r.Post("/sign-upload", h.SignUpload)
	r.Get("/files/{id}", h.GetInfo)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func multipartUpload(t *testing.T, url string, payload []byte, password string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "a.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	if password != "" {
		if err := mw.WriteField("password", password); err != nil {
			t.Fatalf("write password field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp, err := http.Post(url+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestUploadEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := multipartUpload(t, srv.URL, []byte("ten bytes!"), "secret")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected id in body, got %v", body)
	}

	f, ok := repo.files[id]
	if !ok {
		t.Fatalf("no record persisted for id %s", id)
	}
	if f.FileName != "a.txt" || f.FileSize != 10 {
		t.Fatalf("unexpected record %+v", f)
	}
	if !f.Protected() {
		t.Fatal("expected a password hash on the record")
	}
	if *f.PasswordHash == "secret" {
		t.Fatal("password must not be stored in plaintext")
	}
}

func TestUploadEndpointNoFile(t *testing.T) {
	srv, repo := newTestServer(t)

	// Multipart body with no file part at all.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("password", "secret")
	_ = mw.Close()

	resp, err := http.Post(srv.URL+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, ok := body["message"].(string); !ok {
		t.Fatalf("expected a message body, got %v", body)
	}
	if repo.createCalls != 0 {
		t.Fatal("no record may be created without a file part")
	}
}

func TestUploadEndpointEmptyFile(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := multipartUpload(t, srv.URL, nil, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestVerifyEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := multipartUpload(t, srv.URL, []byte("ten bytes!"), "secret")
	id := decodeBody(t, resp)["id"].(string)
	storageURL := repo.files[id].StorageURL

	t.Run("correct password", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/verify", map[string]string{"id": id, "password": "secret"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["storageUrl"] != storageURL {
			t.Fatalf("storageUrl = %v, want %q", body["storageUrl"], storageURL)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/verify", map[string]string{"id": id, "password": "wrong"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		raw := rawBody(t, resp)
		if strings.Contains(raw, storageURL) {
			t.Fatalf("denied response leaked the storage URL: %s", raw)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/verify", map[string]string{"id": id})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		raw := rawBody(t, resp)
		if strings.Contains(raw, storageURL) {
			t.Fatalf("response leaked the storage URL: %s", raw)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/verify", map[string]string{"id": "nope", "password": "secret"})
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		resp.Body.Close()
	})
}

func TestVerifyEndpointUnprotectedFile(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := multipartUpload(t, srv.URL, []byte("open"), "")
	id := decodeBody(t, resp)["id"].(string)

	resp = postJSON(t, srv.URL+"/verify", map[string]string{"id": id, "password": "anything"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	raw := rawBody(t, resp)
	if strings.Contains(raw, repo.files[id].StorageURL) {
		t.Fatalf("verify must not release URLs for unprotected files: %s", raw)
	}
}

func TestGetInfoEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	t.Run("unprotected includes URL", func(t *testing.T) {
		resp := multipartUpload(t, srv.URL, []byte("open"), "")
		id := decodeBody(t, resp)["id"].(string)

		resp, err := http.Get(srv.URL + "/files/" + id)
		if err != nil {
			t.Fatalf("get info: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["protected"] != false {
			t.Fatalf("expected protected=false, got %v", body)
		}
		if body["storageUrl"] != repo.files[id].StorageURL {
			t.Fatalf("expected storage URL for unprotected file, got %v", body)
		}
	})

	t.Run("protected omits URL", func(t *testing.T) {
		resp := multipartUpload(t, srv.URL, []byte("locked"), "secret")
		id := decodeBody(t, resp)["id"].(string)

		resp, err := http.Get(srv.URL + "/files/" + id)
		if err != nil {
			t.Fatalf("get info: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		raw := rawBody(t, resp)
		if strings.Contains(raw, repo.files[id].StorageURL) {
			t.Fatalf("metadata for a protected file leaked the storage URL: %s", raw)
		}
		if !strings.Contains(raw, `"protected":true`) {
			t.Fatalf("expected protected=true in %s", raw)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/files/unknown")
		if err != nil {
			t.Fatalf("get info: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		resp.Body.Close()
	})
}

func TestSignUploadEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sign-upload", map[string]string{"fileName": "report.pdf"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["uploadUrl"] == "" || body["key"] == "" {
		t.Fatalf("expected uploadUrl and key, got %v", body)
	}

	resp = postJSON(t, srv.URL+"/sign-upload", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func rawBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return buf.String()
}
