package metrics_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/msomdec/cyber-thread/internal/metrics"
)

type stubUploader struct {
	err error
}

func (s stubUploader) Upload(ctx context.Context, body io.Reader, filename, folder string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://media.example.com/" + filename, nil
}

func TestObserveRequest(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodGet, "GET /posts/{id}", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "GET /posts/{id}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /posts/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestInstrumentUploader(t *testing.T) {
	m := metrics.New()

	ok := m.InstrumentUploader(stubUploader{}, "imagekit")
	url, err := ok.Upload(context.Background(), strings.NewReader("x"), "a.png", "/posts")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/a.png", url)

	failing := m.InstrumentUploader(stubUploader{err: errors.New("down")}, "imagekit")
	_, err = failing.Upload(context.Background(), strings.NewReader("x"), "a.png", "/posts")
	require.EqualError(t, err, "down")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("imagekit", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("imagekit", "failure")))
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	m := metrics.New()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, m.RegisterDB(db, "sqlite"))

	m.ObserveRequest(http.MethodPost, "POST /login", http.StatusSeeOther, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "cyber_thread_http_requests_total")
	assert.Contains(t, body, `route="POST /login"`)
	assert.Contains(t, body, `go_sql_max_open_connections{db_name="sqlite"}`)
	assert.Contains(t, body, "go_goroutines")
}
