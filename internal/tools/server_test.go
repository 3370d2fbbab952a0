package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRepairRequestJSON(t *testing.T) {
	payload, err := RepairRequestJSON("{'json_settings': {'url': 'https://x/f.csv',},}")
	require.NoError(t, err)
	assert.JSONEq(t, `{"json_settings":{"url":"https://x/f.csv"}}`, string(payload))

	_, err = RepairRequestJSON("   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = RepairRequestJSON("[1, 2]")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestForwardHandler(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true}`))
	}))
	defer api.Close()

	client := NewClient(api.URL+"/", "secret")
	handler := forwardHandler(client, forwards[3], discardLogger())

	res, err := handler(context.Background(), callRequest(map[string]any{"request_json": `{"userID": "u-1", "reportYear": 2024,}`}))

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, `{"status":true}`, resultText(t, res))
	assert.Equal(t, "/mof-report/mof-pnt-bctcq/", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(gotBody), &sent))
	assert.Equal(t, "u-1", sent["userID"])
}

func TestForwardHandlerErrors(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"GL_DATA needs to be validated before processing"}`))
	}))
	defer api.Close()

	handler := forwardHandler(NewClient(api.URL, ""), forwards[0], discardLogger())

	res, err := handler(context.Background(), callRequest(map[string]any{"request_json": `{"json_settings": {}}`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "returned 409")
	assert.Contains(t, resultText(t, res), "GL_DATA needs to be validated")

	res, err = handler(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = handler(context.Background(), callRequest(map[string]any{"request_json": "[]"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestClientGet(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte("OK"))
	}))
	defer api.Close()

	body, err := NewClient(api.URL, "").Get(context.Background(), "/health", DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, "OK", body)

	assert.NotNil(t, NewServer(NewClient(api.URL, ""), "test", discardLogger()))
}
