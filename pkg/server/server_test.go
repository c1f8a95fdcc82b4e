package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/config"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/render"
	"github.com/invoice-generator/pkg/server"
	"github.com/invoice-generator/pkg/storage"
)

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

const validBody = `{
	"invoiceNumber": "INV-001",
	"date": "2024-03-05",
	"dueDate": "2024-04-04",
	"to": {"name": "Acme Corp", "address": "1 Main St", "city": "Springfield"},
	"items": [
		{"itemCode": "A1", "description": "Widget", "quantity": 2, "price": 10.00},
		{"itemCode": "B2", "description": "Gadget", "quantity": 1, "price": 5.50}
	],
	"taxRate": 0.1
}`

type testEnv struct {
	handler http.Handler
	dir     string
	logs    *observer.ObservedLogs
}

func newNormalizer() *invoice.Normalizer {
	return invoice.NewNormalizer(invoice.WithClock(func() time.Time { return fixedNow }))
}

// setupTestServer wires a server with a real renderer and a file store in a
// temp dir. Fields of deps that are set replace the defaults.
func setupTestServer(t *testing.T, deps server.Deps) testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.MaxBodyBytes = 4096

	dir := t.TempDir()
	core, logs := observer.New(zapcore.InfoLevel)

	if deps.Normalizer == nil {
		deps.Normalizer = newNormalizer()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.New(render.Options{Compress: false})
	}
	if deps.Store == nil {
		deps.Store = storage.NewFileStore(dir)
	}
	deps.Logger = zap.New(core)

	srv, err := server.New(cfg, deps)
	require.NoError(t, err)
	return testEnv{handler: srv.Handler(), dir: dir, logs: logs}
}

func post(h http.Handler, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-invoice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field"`
	RequestID string `json:"request_id"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := server.New(config.Default(), server.Deps{})
	assert.Error(t, err)
}

func TestGenerateInvoice_Success(t *testing.T) {
	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(e archive.Entry) bool {
		return e.InvoiceNumber == "INV-001" &&
			e.FileName == "invoice_INV-001.pdf" &&
			e.ItemCount == 2 &&
			e.Total.StringFixed(2) == "28.05"
	})).Return(nil)

	env := setupTestServer(t, server.Deps{Archive: recorder})
	w := post(env.handler, validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=invoice_INV-001.pdf", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Equal(t, w.Header().Get("Content-Length"), strconv.Itoa(w.Body.Len()))

	stored, err := os.ReadFile(filepath.Join(env.dir, "invoice_INV-001.pdf"))
	require.NoError(t, err)
	assert.Equal(t, w.Body.Bytes(), stored)
	assert.Contains(t, string(stored), "$28.05")

	recorder.AssertExpectations(t)
	assert.Equal(t, 1, env.logs.FilterMessage("generated invoice").Len())
}

func TestGenerateInvoice_TimestampFileName(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	body := strings.Replace(validBody, `"invoiceNumber": "INV-001",`, "", 1)

	w := post(env.handler, body)

	require.Equal(t, http.StatusOK, w.Code)
	want := "invoice_" + strconv.FormatInt(fixedNow.UnixMilli(), 10) + ".pdf"
	assert.Equal(t, "attachment; filename="+want, w.Header().Get("Content-Disposition"))
	assert.FileExists(t, filepath.Join(env.dir, want))
}

func TestGenerateInvoice_EmptyItems(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := post(env.handler, `{"invoiceNumber":"E-1","to":{"name":"A","address":"B"},"items":[]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$0.00")
}

func TestGenerateInvoice_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing to", `{"items":[]}`, "to"},
		{"missing name", `{"to":{"address":"B"},"items":[]}`, "to.name"},
		{"missing address", `{"to":{"name":"A"},"items":[]}`, "to.address"},
		{"missing items", `{"to":{"name":"A","address":"B"}}`, "items"},
		{"negative quantity", `{"to":{"name":"A","address":"B"},"items":[{"quantity":-1,"price":1}]}`, "items[0].quantity"},
		{"quantity exponent out of range", `{"to":{"name":"A","address":"B"},"items":[{"quantity":1e-300000000,"price":1}]}`, "items[0].quantity"},
		{"tax rate out of range", `{"to":{"name":"A","address":"B"},"items":[],"taxRate":1e13}`, "taxRate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockStore)
			env := setupTestServer(t, server.Deps{Store: store})

			w := post(env.handler, tc.body, "X-Request-ID", "req-42")

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tc.field, body.Field)
			assert.Equal(t, "req-42", body.RequestID)
			assert.NotEmpty(t, body.Error)
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateInvoice_MalformedJSON(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := post(env.handler, `{"to": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "invalid JSON body")
}

func TestGenerateInvoice_TrailingData(t *testing.T) {
	store := new(MockStore)
	env := setupTestServer(t, server.Deps{Store: store})

	for _, trailer := range []string{"garbage", "}", ` {"to":{}}`} {
		w := post(env.handler, validBody+trailer)

		require.Equal(t, http.StatusBadRequest, w.Code, trailer)
		assert.Contains(t, decodeError(t, w).Error, "invalid JSON body")
	}
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateInvoice_TrailingWhitespaceAccepted(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := post(env.handler, validBody+"\n\t ")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateInvoice_BodyTooLarge(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	body := `{"notes":"` + strings.Repeat("x", 8192) + `"}`

	w := post(env.handler, body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeError(t, w)
}

func TestGenerateInvoice_RenderFailure(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return(errors.New("font missing"))
	store := new(MockStore)
	env := setupTestServer(t, server.Deps{Renderer: renderer, Store: store})

	w := post(env.handler, validBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to render invoice", decodeError(t, w).Error)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, env.logs.FilterMessage("render failed").Len())
}

func TestGenerateInvoice_StoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, "invoice_INV-001.pdf", mock.Anything).Return("", errors.New("disk full"))
	recorder := new(MockRecorder)
	env := setupTestServer(t, server.Deps{Store: store, Archive: recorder})

	w := post(env.handler, validBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to save invoice", decodeError(t, w).Error)
	store.AssertExpectations(t)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestGenerateInvoice_ArchiveFailureIsNotFatal(t *testing.T) {
	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	env := setupTestServer(t, server.Deps{Archive: recorder})

	w := post(env.handler, validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.logs.FilterMessage("archive record failed").Len())
}

func TestGenerateInvoice_Preflight(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	req := httptest.NewRequest(http.MethodOptions, "/generate-invoice", nil)
	w := httptest.NewRecorder()

	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestRequestID(t *testing.T) {
	env := setupTestServer(t, server.Deps{})

	w := post(env.handler, validBody, "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = post(env.handler, validBody, "X-Request-ID", "bad id\nwith newline")
	assert.NotEqual(t, "bad id\nwith newline", w.Header().Get("X-Request-ID"))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestAccessLog(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	post(env.handler, `{}`)

	entries := env.logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/generate-invoice", fields["path"])
	assert.EqualValues(t, http.StatusBadRequest, fields["status"])
}

func TestRecoverer(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Run(func(mock.Arguments) { panic("boom") })
	env := setupTestServer(t, server.Deps{Renderer: renderer})

	w := post(env.handler, validBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w).Error)
	assert.Equal(t, 1, env.logs.FilterMessage("panic recovered").Len())
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexForm(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	page := w.Body.String()
	assert.Contains(t, page, `data-endpoint="/generate-invoice"`)
	assert.Contains(t, page, "2024-03-05")
	assert.Contains(t, page, "2024-04-04")
}

func TestSwaggerDoc(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/generate-invoice")
}

func TestGenerateInvoice_WrongMethod(t *testing.T) {
	env := setupTestServer(t, server.Deps{})
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate-invoice", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
