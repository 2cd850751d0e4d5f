package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusCreated, map[string]any{"id": "1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := asMap(t, rec)
	require.Equal(t, "1", body["id"])
	require.NotContains(t, body, "data")
}

func TestJSON_EncodeError(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusTeapot, map[string]any{"fn": func() {}})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":{"code":"internal_error","message":"internal server error"}}`, rec.Body.String())
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-456")

	Fail(rec, req, http.StatusNotFound, "not_found", "beer not found")

	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeError(t, rec)
	require.NotNil(t, resp.Error)
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "beer not found", resp.Error.Message)
	require.Empty(t, resp.Error.Fields)
	require.NotNil(t, resp.Meta)
	require.Equal(t, "req-456", resp.Meta.RequestID)
	_, err := time.Parse(time.RFC3339, resp.Meta.TimeUTC)
	require.NoError(t, err)

	require.NotContains(t, rec.Body.String(), "fields")
}

func TestFailFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/beer", nil)

	FailFields(rec, req, http.StatusBadRequest, "validation_failed", "validation failed", []FieldError{
		{Field: "beerName", Error: "is required"},
		{Field: "price", Error: "must be at least 0"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeError(t, rec)
	require.Equal(t, "validation_failed", resp.Error.Code)
	require.Equal(t, []FieldError{
		{Field: "beerName", Error: "is required"},
		{Field: "price", Error: "must be at least 0"},
	}, resp.Error.Fields)
	require.Empty(t, resp.Meta.RequestID)
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func asMap(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	decoder := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes()))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&out))
	return out
}
