package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/say_cheerfully/internal/audio"
	"github.com/Vovarama1992/say_cheerfully/internal/domain"
	"github.com/Vovarama1992/say_cheerfully/internal/error_notificator"
	"github.com/Vovarama1992/say_cheerfully/internal/ports"
	"github.com/Vovarama1992/say_cheerfully/internal/speech"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type stubConversion struct {
	calls int
	res   *ports.ConversionResult
	err   error
}

func (s *stubConversion) Convert(context.Context, string) (*ports.ConversionResult, error) {
	s.calls++
	return s.res, s.err
}

// generator returns the same inline payload for every model.
type generator struct {
	calls int
	data  []byte
}

func (g *generator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.calls++
	if g.data == nil {
		return &genai.GenerateContentResponse{}, nil
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{Data: g.data}}}},
		}},
	}, nil
}

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func newTestServer(t *testing.T, svc ports.ConversionService) http.Handler {
	t.Helper()
	r := NewRouter()
	RegisterRoutes(r, NewConvertHandler(svc, testLogger()), NewRateLimiter(100, time.Minute), t.TempDir())
	return r
}

func post(h http.Handler, body, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if remote != "" {
		req.RemoteAddr = remote
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestConvertRejectsMissingText(t *testing.T) {
	for _, body := range []string{`{}`, `{"text":""}`, `not json`, `{"text":42}`} {
		t.Run(body, func(t *testing.T) {
			svc := &stubConversion{}
			rec := post(newTestServer(t, svc), body, "")

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody(t, rec)["error"]; got != "Text is required" {
				t.Errorf("error = %v", got)
			}
			if svc.calls != 0 {
				t.Errorf("expected no conversion, got %d calls", svc.calls)
			}
		})
	}
}

func TestConvertDownstreamFailure(t *testing.T) {
	svc := &stubConversion{err: speech.ErrNoAudioData}
	rec := post(newTestServer(t, svc), `{"text":"Hello"}`, "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Failed to convert text to speech" {
		t.Errorf("error = %v", body["error"])
	}
	if body["details"] != "no audio data received" {
		t.Errorf("details = %v", body["details"])
	}
}

func TestConvertServiceRejectsText(t *testing.T) {
	svc := &stubConversion{err: ports.ErrTextRequired}
	rec := post(newTestServer(t, svc), `{"text":"x"}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func newPipeline(t *testing.T, gen speech.Generator) (ports.ConversionService, string) {
	t.Helper()
	dir := t.TempDir()
	log := testLogger()
	svc := domain.NewConversionService(
		speech.NewService(gen, log),
		audio.NewFileStore(dir, audio.FormatRaw, log),
		nil,
		error_notificator.NewService(error_notificator.NewLogInfra(log)),
		log,
	)
	return svc, dir
}

func TestConvertHelloWorld(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString("AAAA")
	if err != nil || base64.StdEncoding.EncodeToString(data) != "AAAA" {
		t.Fatalf("payload does not round trip: %v", err)
	}
	gen := &generator{data: data}
	svc, dir := newPipeline(t, gen)

	rec := post(newTestServer(t, svc), `{"text":"Hello world"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var res ports.ConversionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success {
		t.Error("expected success:true")
	}
	if !regexp.MustCompile(`^\d+\.wav$`).MatchString(res.FileName) {
		t.Errorf("fileName %q does not match <integer>.wav", res.FileName)
	}
	if res.FileName != strconv.FormatInt(res.Timestamp, 10)+".wav" {
		t.Errorf("fileName %q inconsistent with timestamp %d", res.FileName, res.Timestamp)
	}
	if ts := time.UnixMilli(res.Timestamp); time.Since(ts) > time.Minute || time.Until(ts) > time.Minute {
		t.Errorf("timestamp %d is not a current epoch-ms value", res.Timestamp)
	}

	got, err := os.ReadFile(filepath.Join(dir, res.FileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, []byte{0, 0, 0}) {
		t.Errorf("file content = %v, want 3 zero bytes", got)
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", gen.calls)
	}
}

func TestConvertEmptyTextMakesNoUpstreamCall(t *testing.T) {
	gen := &generator{data: []byte{1}}
	svc, dir := newPipeline(t, gen)

	rec := post(newTestServer(t, svc), `{"text":""}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if gen.calls != 0 {
		t.Errorf("expected 0 upstream calls, got %d", gen.calls)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

func TestConvertMissingAudioWritesNoFile(t *testing.T) {
	gen := &generator{}
	svc, dir := newPipeline(t, gen)

	rec := post(newTestServer(t, svc), `{"text":"Hello"}`, "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

func TestConvertUnexpectedError(t *testing.T) {
	svc := &stubConversion{err: errors.New("disk full")}
	rec := post(newTestServer(t, svc), `{"text":"Hello"}`, "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody(t, rec)["details"]; got != "disk full" {
		t.Errorf("details = %v", got)
	}
}
