package kat

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_URL(t *testing.T) {
	f := NewFetcher("https://kat.example/usearch/", time.Second)

	assert.Equal(t, "https://kat.example/usearch/ubuntu", f.URL("ubuntu"))
	assert.Equal(t, "https://kat.example/usearch/ubuntu%20category:books/2", f.URL("ubuntu category:books/2"))
	assert.Equal(t, "https://kat.example/usearch/ubuntu/3/?field=size&order=desc", f.URL("ubuntu/3/?field=size&order=desc"))
	assert.Equal(t, DefaultBaseURL+"x", NewFetcher("", time.Second).URL("x"))
	assert.Equal(t, "https://kat.example/usearch/who%3F%20me", f.URL("who? me"))
	assert.Equal(t, "https://kat.example/usearch/what%3F/?field=seeders&order=desc", f.URL("what?/?field=seeders&order=desc"))
	assert.Equal(t, "https://kat.example/usearch/x/?field=time%20add", f.URL("x/?field=time add"))
}

func TestFetcher_QuestionMarkInText(t *testing.T) {
	type request struct{ path, field, order string }
	got := make(chan request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- request{r.URL.Path, r.URL.Query().Get("field"), r.URL.Query().Get("order")}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()
	f := NewFetcher(srv.URL+"/usearch/", time.Second)

	tests := []struct {
		spec Spec
		want request
	}{
		{Text("who? me"), request{path: "/usearch/who? me"}},
		{&Query{Query: "what?", SortBy: "seeders", Order: "desc"}, request{"/usearch/what?/", "seeders", "desc"}},
	}
	for _, tt := range tests {
		endpoint, err := BuildEndpoint(tt.spec)
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), endpoint)
		require.NoError(t, err, endpoint)
		assert.Equal(t, tt.want, <-got, endpoint)
	}
}

func TestFetcher_ErrorStatusBeforeDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>not gzip</html>"))
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL+"/", time.Second).Fetch(context.Background(), "ubuntu")
	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, dataErr.StatusCode)
}

func TestFetcher_Fetch(t *testing.T) {
	var gotPath, gotEncoding string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEncoding = r.Header.Get("Accept-Encoding")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(srv.URL+"/usearch/", time.Second).Fetch(context.Background(), "ubuntu category:books")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
	assert.Equal(t, "/usearch/ubuntu category:books", gotPath)
	assert.Equal(t, "gzip, deflate", gotEncoding)
}

func TestFetcher_DecodesContentEncoding(t *testing.T) {
	const page = "<html><body>compressed</body></html>"

	var gz, zl bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write([]byte(page))
	require.NoError(t, gw.Close())
	zw := zlib.NewWriter(&zl)
	_, _ = zw.Write([]byte(page))
	require.NoError(t, zw.Close())

	for encoding, payload := range map[string][]byte{
		"gzip":    gz.Bytes(),
		"deflate": zl.Bytes(),
	} {
		t.Run(encoding, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", encoding)
				_, _ = w.Write(payload)
			}))
			defer srv.Close()

			body, err := NewFetcher(srv.URL+"/", time.Second).Fetch(context.Background(), "ubuntu")
			require.NoError(t, err)
			assert.Equal(t, page, body)
		})
	}
}

func TestFetcher_DataErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found with body", http.StatusNotFound, "<html>missing</html>"},
		{"server error", http.StatusInternalServerError, "oops"},
		{"empty body", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewFetcher(srv.URL+"/", time.Second).Fetch(context.Background(), "ubuntu/2")
			require.ErrorIs(t, err, ErrFetch)

			var dataErr *DataError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, "ubuntu/2", dataErr.Endpoint)
			assert.Equal(t, tt.status, dataErr.StatusCode)
			assert.Equal(t, "KAT: Could not load data from: 'ubuntu/2'", err.Error())
		})
	}
}

func TestFetcher_TransportErrors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL + "/"
		srv.Close()

		_, err := NewFetcher(base, time.Second).Fetch(context.Background(), "ubuntu")
		require.ErrorIs(t, err, ErrFetch)

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "ubuntu", transportErr.Endpoint)
		assert.Contains(t, err.Error(), "with link: 'ubuntu'")
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := NewFetcher(srv.URL+"/", 50*time.Millisecond).Fetch(context.Background(), "slow")
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "slow", transportErr.Endpoint)
	})
}
