package kat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.RequestURI()
		_, _ = w.Write([]byte(resultsPage(header, pager, ubuntuRow())))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/usearch/", time.Second)
	result, err := c.Search(context.Background(), &Query{Query: "ubuntu", Category: "applications", Page: 2, SortBy: "seeders"})
	require.NoError(t, err)

	assert.Equal(t, "/usearch/ubuntu%20category:applications/2/?field=seeders", requested)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 1234, result.TotalResults)
	assert.GreaterOrEqual(t, result.ResponseTime, int64(0))
	require.Len(t, result.Results, 1)
	assert.Equal(t, IntOf(15), result.Results[0].Peers())
}

func TestClient_SearchDefaultsToFirstPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage(header, "")))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL+"/", time.Second).Search(context.Background(), Text("ubuntu"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Empty(t, result.Results)
}

func TestClient_SearchReportsInputErrorOnce(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	var reported []error
	c := NewClient(srv.URL+"/", time.Second, WithErrorReporter(func(err error) {
		reported = append(reported, err)
	}))

	var result *Result
	var err error
	require.NotPanics(t, func() {
		result, err = c.Search(context.Background(), Query{Category: "movies"})
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrQueryRequired)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], ErrQueryRequired)
	assert.Zero(t, hits)

	_, err = c.Search(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Len(t, reported, 2)
}

func TestClient_SearchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such page", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL+"/", time.Second).Search(context.Background(), Text("ubuntu"))

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "ubuntu", dataErr.Endpoint)
	assert.Contains(t, err.Error(), "'ubuntu'")
}

func TestClient_SearchParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>Service unavailable</body></html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL+"/", time.Second).Search(context.Background(), Text("ubuntu"))
	assert.ErrorIs(t, err, ErrMissingTotal)
}

func TestClient_ConcurrentSearches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage(header, pager, ubuntuRow())))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, WithUserAgent("kat-search-test"))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Search(context.Background(), &Query{Query: "ubuntu", Page: i + 1})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestClient_URL(t *testing.T) {
	c := NewClient("https://kat.example/usearch/", time.Second)

	u, err := c.URL(&Query{Query: "ubuntu", Language: "de"})
	require.NoError(t, err)
	assert.Equal(t, "https://kat.example/usearch/ubuntu%20lang_id:4", u)

	_, err = c.URL(Text(""))
	assert.ErrorIs(t, err, ErrQueryRequired)
}
