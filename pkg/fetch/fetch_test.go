package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = io.WriteString(w, "payload")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := fetch.New(5 * time.Second)

	t.Run("success", func(t *testing.T) {
		body, err := f.Get(context.Background(), srv.URL+"/ok")
		require.NoError(t, err)
		defer body.Close()

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("status error", func(t *testing.T) {
		_, err := f.Get(context.Background(), srv.URL+"/missing")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDownloadStatus))
		assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])
	})
}

func TestGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := fetch.NewWithClient(http.DefaultClient).Get(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownloadTransport))
}

func TestGetInvalidURL(t *testing.T) {
	_, err := fetch.New(0).Get(context.Background(), "://not a url")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownloadTransport))
}
