package tika

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.Config{AppEnv: "test", TikaURL: srv.URL + "/", TikaTimeout: 2 * time.Second}, opts...)
}

func TestClient_Extract(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantCT   string
		reply    string
		want     string
	}{
		{
			name:     "pdf keeps line structure",
			fileName: "cv.pdf",
			wantCT:   "application/pdf",
			reply:    "Jane Doe\r\n\r\n\r\nExperience\n-  Built   APIs\n",
			want:     "Jane Doe\n\nExperience\n- Built APIs",
		},
		{
			name:     "docx content type",
			fileName: "CV.DOCX",
			wantCT:   "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			reply:    "Skills\x00\nGo",
			want:     "Skills\nGo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/tika", r.URL.Path)
				assert.Equal(t, "text/plain", r.Header.Get("Accept"))
				assert.Equal(t, tt.wantCT, r.Header.Get("Content-Type"))
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, "binary", string(body))
				_, _ = w.Write([]byte(tt.reply))
			})
			got, err := c.Extract(context.Background(), tt.fileName, []byte("binary"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Extract_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	})
	got, err := c.Extract(context.Background(), "cv.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Extract_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	_, err := c.Extract(context.Background(), "cv.pdf", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Contains(t, err.Error(), "tika status 422")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Extract_PersistentFailure(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, WithBreaker(observability.NewCircuitBreaker("tika-persistent", 100, time.Minute)))
	_, err := c.Extract(context.Background(), "cv.pdf", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Greater(t, calls.Load(), int32(1))
}

func TestClient_Extract_CircuitOpens(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, WithBreaker(observability.NewCircuitBreaker("tika-open", 1, time.Minute)))

	_, err := c.Extract(context.Background(), "cv.pdf", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Extract(context.Background(), "cv.pdf", []byte("x"))
	require.ErrorIs(t, err, observability.ErrCircuitOpen)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Extract_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Extract(ctx, "cv.pdf", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		_, _ = w.Write([]byte("Apache Tika 2.9.1"))
	})
	require.NoError(t, c.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := down.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=tika.Ping")
}

func TestNew_Defaults(t *testing.T) {
	c := New(config.Config{})
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, 15*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "tika", c.breaker.Name())
}

func TestContentTypeFromExt(t *testing.T) {
	assert.Equal(t, "application/pdf", contentTypeFromExt(".PDF"))
	assert.Equal(t, "text/plain", contentTypeFromExt(".txt"))
	assert.Equal(t, "", contentTypeFromExt(""))
}
