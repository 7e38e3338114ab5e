package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/server/middleware"
	"github.com/kbukum/scribe/storage/local"
	"github.com/kbukum/scribe/transcription"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns a canned result and records the paths it was given.
type stubProvider struct {
	text string
	err  error
	fn   func(req transcription.Request)

	mu      sync.Mutex
	paths   []string
	ctxErrs []error
}

func (s *stubProvider) Name() string                    { return "stub" }
func (s *stubProvider) IsAvailable(context.Context) bool { return true }

func (s *stubProvider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	s.mu.Lock()
	s.paths = append(s.paths, req.AudioPath)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	s.mu.Unlock()
	if s.fn != nil {
		s.fn(req)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &transcription.Response{Text: s.text, Language: "en-US"}, nil
}

func (s *stubProvider) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func newTestFiles(t *testing.T) *TempFiles {
	t.Helper()
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewTempFiles(store, logger.NewNop())
}

func newRouter(p transcription.Provider, files *TempFiles) http.Handler {
	engine := gin.New()
	NewHandler(p, files, DefaultAllowedTypes, logger.NewNop()).Register(engine)
	return middleware.Chain(middleware.Recovery(logger.NewNop()), middleware.RequestID())(engine)
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func post(t *testing.T, h http.Handler, field, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, field, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
	return body
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty recordings dir, found %d entries (first: %s)", len(entries), entries[0].Name())
	}
}

func TestTranscribe_Success(t *testing.T) {
	files := newTestFiles(t)
	stub := &stubProvider{text: "hello world"}
	stub.fn = func(req transcription.Request) {
		if _, err := os.Stat(req.AudioPath); err != nil {
			t.Errorf("temp file must exist while the provider runs: %v", err)
		}
	}

	rr := post(t, newRouter(stub, files), FieldName, "clip.wav", "audio/wav", []byte("RIFF-data"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != `{"text":"hello world"}` {
		t.Errorf("body = %s", got)
	}
	paths := stub.calls()
	if len(paths) != 1 {
		t.Fatalf("provider called %d times", len(paths))
	}
	if _, err := os.Stat(paths[0]); !os.IsNotExist(err) {
		t.Errorf("temp file %s still exists after response", paths[0])
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_ProviderFailure(t *testing.T) {
	files := newTestFiles(t)
	stub := &stubProvider{err: transcription.ErrNoSpeechDetected}

	rr := post(t, newRouter(stub, files), FieldName, "clip.webm", "audio/webm", []byte("data"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decode(t, rr)
	if msg, _ := body["error"].(string); msg == "" {
		t.Errorf("expected non-empty error, got %v", body)
	}
	if body["code"] != "PROVIDER_ERROR" {
		t.Errorf("code = %v", body["code"])
	}
	details, _ := body["details"].(map[string]any)
	if details["cause"] != transcription.CauseNoSpeechDetected {
		t.Errorf("cause = %v", details["cause"])
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_ProviderPanic(t *testing.T) {
	files := newTestFiles(t)
	stub := &stubProvider{fn: func(transcription.Request) { panic("sdk crashed") }}

	rr := post(t, newRouter(stub, files), FieldName, "clip.wav", "audio/wav", []byte("data"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_UnsupportedMediaType(t *testing.T) {
	files := newTestFiles(t)
	stub := &stubProvider{text: "unused"}

	rr := post(t, newRouter(stub, files), FieldName, "notes.txt", "text/plain", []byte("not audio"))

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rr.Code)
	}
	body := decode(t, rr)
	if body["code"] != "UNSUPPORTED_MEDIA_TYPE" {
		t.Errorf("code = %v", body["code"])
	}
	if len(stub.calls()) != 0 {
		t.Error("provider must not be called for a rejected upload")
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_MissingFile(t *testing.T) {
	files := newTestFiles(t)
	rr := post(t, newRouter(&stubProvider{}, files), "other", "clip.wav", "audio/wav", []byte("data"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if body := decode(t, rr); body["error"] != "No file received" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestTranscribe_ContentTypes(t *testing.T) {
	wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)

	tests := []struct {
		name        string
		contentType string
		content     []byte
		wantStatus  int
	}{
		{"parameterized webm", "audio/webm;codecs=opus", []byte("data"), http.StatusOK},
		{"upper case", "Audio/WAV", []byte("data"), http.StatusOK},
		{"sniffed wav", "application/octet-stream", wav, http.StatusOK},
		{"sniffed text", "", []byte("plain words, no audio here"), http.StatusUnsupportedMediaType},
		{"video", "video/mp4", []byte("data"), http.StatusUnsupportedMediaType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			files := newTestFiles(t)
			rr := post(t, newRouter(&stubProvider{text: "ok"}, files), FieldName, "clip", tc.contentType, tc.content)
			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tc.wantStatus, rr.Body.String())
			}
			assertEmptyDir(t, files.Dir())
		})
	}
}

func TestTranscribe_PayloadTooLarge(t *testing.T) {
	files := newTestFiles(t)
	h := middleware.BodySizeLimit(64)(newRouter(&stubProvider{text: "ok"}, files))

	rr := post(t, h, FieldName, "clip.wav", "audio/wav", bytes.Repeat([]byte("x"), 4096))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413 (body %s)", rr.Code, rr.Body.String())
	}
	if body := decode(t, rr); body["code"] != "PAYLOAD_TOO_LARGE" {
		t.Errorf("code = %v", body["code"])
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_Concurrent(t *testing.T) {
	files := newTestFiles(t)
	release := make(chan struct{})
	var arrived sync.WaitGroup
	arrived.Add(2)

	stub := &stubProvider{}
	stub.fn = func(transcription.Request) {
		arrived.Done()
		<-release
	}
	router := newRouter(stub, files)

	results := make([]*httptest.ResponseRecorder, 2)
	var done sync.WaitGroup
	for i := range results {
		body, ct := multipartBody(t, FieldName, "same.wav", "audio/wav", []byte(fmt.Sprintf("clip-%d", i)))
		req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
		req.Header.Set("Content-Type", ct)
		results[i] = httptest.NewRecorder()

		done.Add(1)
		go func(rr *httptest.ResponseRecorder) {
			defer done.Done()
			router.ServeHTTP(rr, req)
		}(results[i])
	}

	// Both files are on disk at the same time.
	arrived.Wait()
	entries, err := os.ReadDir(files.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 temp files while in flight, got %d", len(entries))
	}
	close(release)
	done.Wait()

	paths := stub.calls()
	if len(paths) != 2 || paths[0] == paths[1] {
		t.Fatalf("expected two distinct temp paths, got %v", paths)
	}
	for i, rr := range results {
		if rr.Code != http.StatusOK {
			t.Errorf("request %d: status = %d", i, rr.Code)
		}
	}
	assertEmptyDir(t, files.Dir())
}

func TestTranscribe_ClientGoneStillCompletes(t *testing.T) {
	files := newTestFiles(t)
	p := &stubProvider{text: "hello world"}
	h := newRouter(p, files)

	body, ct := multipartBody(t, FieldName, "clip.wav", "audio/wav", []byte("RIFF....WAVE"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/transcribe", body).WithContext(ctx)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got := decode(t, rr)["text"]; got != "hello world" {
		t.Errorf("text = %v, body %s", got, rr.Body.String())
	}
	p.mu.Lock()
	errs := append([]error(nil), p.ctxErrs...)
	p.mu.Unlock()
	if len(errs) != 1 || errs[0] != nil {
		t.Errorf("provider context errors = %v, want one nil", errs)
	}
	assertEmptyDir(t, files.Dir())
}
