package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steward/socialhub/internal/model"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register("tiktok", FetcherFunc(func(context.Context, model.EligibleAccount) ([]RawItem, error) {
		return nil, nil
	}))
	r.Register("instagram", FetcherFunc(func(context.Context, model.EligibleAccount) ([]RawItem, error) {
		return []RawItem{{ExternalID: "p1"}}, nil
	}))

	f, ok := r.Lookup("instagram")
	require.True(t, ok)
	items, err := f.Fetch(context.Background(), model.EligibleAccount{})
	require.NoError(t, err)
	assert.Equal(t, "p1", items[0].ExternalID)

	_, ok = r.Lookup("youtube")
	assert.False(t, ok)

	assert.Equal(t, []string{"instagram", "tiktok"}, r.Platforms())
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "p1", "likes": 9},
				{"id": 42, "likes": 1},
				{"caption": "no id"},
			},
		})
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/accounts/{account}/media", srv.Client())
	items, err := f.Fetch(context.Background(), model.EligibleAccount{
		ID: "acc-1", ExternalAccountID: "ig-123", AccessToken: "tok-abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "/accounts/ig-123/media", gotPath)
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].ExternalID)
	assert.Equal(t, json.Number("9"), items[0].Payload["likes"])
	assert.Equal(t, "42", items[1].ExternalID)
	assert.Equal(t, "", items[2].ExternalID)
}

func TestHTTPFetcher_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token revoked", http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/{account}", nil)
	_, err := f.Fetch(context.Background(), model.EligibleAccount{ExternalAccountID: "x", AccessToken: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "token revoked")
}

func TestHTTPFetcher_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, nil).Fetch(context.Background(), model.EligibleAccount{AccessToken: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestHTTPFetcher_LargeNumericIDsStayDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":17895695668004551,"views":9007199254740993},{"id":17895695668004552}]}`))
	}))
	defer srv.Close()

	items, err := NewHTTPFetcher(srv.URL, nil).Fetch(context.Background(), model.EligibleAccount{AccessToken: "t"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "17895695668004551", items[0].ExternalID)
	assert.Equal(t, "17895695668004552", items[1].ExternalID)
	assert.Equal(t, json.Number("9007199254740993"), items[0].Payload["views"])
}

func TestHTTPFetcher_KeepsClientPolicy(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	_, err := NewHTTPFetcher(srv.URL+"/{account}", client).Fetch(context.Background(), model.EligibleAccount{
		ExternalAccountID: "x", AccessToken: "tok",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 302")
	assert.Equal(t, "Bearer tok", gotAuth)
}
