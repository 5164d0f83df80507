package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"crm_legal_go/config"
	"crm_legal_go/db"
	"crm_legal_go/logger"
	"crm_legal_go/middleware"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *services.Store {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })
	return services.NewStore(database, logger.NewNop()).WithClock(func() time.Time { return testNow })
}

// setupEcho builds a context for calling a handler directly
func setupEcho(store *services.Store, method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := NewServer()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set(middleware.ContextKeyStore, store)
	c.Set(middleware.ContextKeyConfig, &config.Config{Environment: "test"})

	return e, c, rec
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// decodeData unmarshals the "data" member of a response into dest
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) uint {
	t.Helper()
	var out struct {
		ID uint `json:"id"`
	}
	decodeData(t, rec, &out)
	return out.ID
}

func seedCase(t *testing.T, store *services.Store) (clientID, caseID uint) {
	t.Helper()
	clientID, err := store.AddClient(models.Client{Name: "Juan Perez"})
	require.NoError(t, err)
	caseID, err = store.AddCase(models.NewCase{ClientID: clientID, Title: "Perez c/ Gomez s/ daños"})
	require.NoError(t, err)
	return clientID, caseID
}

func stringToPtr(s string) *string {
	return &s
}
