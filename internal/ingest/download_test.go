package ingest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/uploads/GL_20240401093000.xlsx" {
			_, _ = w.Write([]byte("payload"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := ingest.NewDownloader(5 * time.Second)
	ctx := context.Background()

	f, err := d.Fetch(ctx, srv.URL+"/uploads/GL_20240401093000.xlsx?sig=abc")
	require.NoError(t, err)
	assert.Equal(t, "GL_20240401093000.xlsx", f.Name)
	assert.Equal(t, ".xlsx", f.Ext)
	assert.Equal(t, []byte("payload"), f.Data)

	_, err = d.Fetch(ctx, srv.URL+"/uploads/missing.csv")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "got %v", err)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)

	_, err = d.Fetch(ctx, "not a url")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
