package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"steward/socialhub/internal/model"
)

const accountPlaceholder = "{account}"

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// HTTPFetcher reads a JSON feed of the form {"data": [{"id": ...}, ...]}
// using the account's access token as a bearer credential.
type HTTPFetcher struct {
	urlTemplate string
	client      *http.Client
}

// NewHTTPFetcher builds a fetcher for urlTemplate. Every "{account}" in the
// template is replaced with the account's external id. Requests go through a
// copy of client whose transport adds the bearer token; timeout, cookie jar
// and redirect policy are kept. A nil client uses http.DefaultClient.
func NewHTTPFetcher(urlTemplate string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{urlTemplate: urlTemplate, client: client}
}

type feedResponse struct {
	Data []map[string]interface{} `json:"data"`
}

func (f *HTTPFetcher) Fetch(ctx context.Context, account model.EligibleAccount) ([]RawItem, error) {
	endpoint := strings.ReplaceAll(f.urlTemplate, accountPlaceholder, url.PathEscape(account.ExternalAccountID))

	client := *f.client
	client.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: account.AccessToken, TokenType: "Bearer"}),
		Base:   f.client.Transport,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch feed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// Numbers stay json.Number: provider ids exceed float64's exact range.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var feed feedResponse
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	items := make([]RawItem, 0, len(feed.Data))
	for _, doc := range feed.Data {
		items = append(items, RawItem{ExternalID: itemID(doc["id"]), Payload: model.Payload(doc)})
	}
	return items, nil
}

// itemID accepts string and numeric ids; anything else yields "".
func itemID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
