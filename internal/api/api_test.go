package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/config"
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv bundles a fully assembled app: router over a throwaway SQLite
// database and an in-process Redis.
type testEnv struct {
	ts  *httptest.Server
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{})
	require.NoError(t, err, "open test database")
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Income{}, &domain.Expense{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	ts := httptest.NewServer(NewRouter(db, rdb, cfg))
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, db: db, cfg: cfg}
}

// doJSON fires a JSON request at the test server, optionally authenticated.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// errorMessage extracts the "error" field of a failure response.
func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, resp, &body)
	return body["error"]
}

func (e *testEnv) register(t *testing.T, name, email, password string) AuthResponse {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "register %s", email)
	var out AuthResponse
	decodeBody(t, resp, &out)
	return out
}

func (e *testEnv) createExpense(t *testing.T, token string, amount float64, category, description, date string) domain.Expense {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/expenses", token, map[string]any{
		"amount":      amount,
		"category":    category,
		"description": description,
		"date":        date,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "create expense")
	var out domain.Expense
	decodeBody(t, resp, &out)
	return out
}

func (e *testEnv) createIncome(t *testing.T, token string, amount float64, category, source, date string) domain.Income {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/incomes", token, map[string]any{
		"amount":   amount,
		"category": category,
		"source":   source,
		"date":     date,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "create income")
	var out domain.Income
	decodeBody(t, resp, &out)
	return out
}

// uploadPhoto posts a multipart profile photo with an explicit content type.
func (e *testEnv) uploadPhoto(t *testing.T, token, filename, contentType string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/api/user/profile/photo", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
