package smartsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://api.smartsheet.com/2.0"

// Client is a minimal Smartsheet API client covering the two calls this
// application makes: fetching a sheet and locking rows in bulk.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client that authenticates every request with the
// given bearer token and times out after 'timeout'.
func NewClient(baseURL string, token string, timeout time.Duration) *Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), source)
	client.Timeout = timeout

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// GetSheet fetches a sheet with its columns and full row set in a single
// bulk request.
func (c *Client) GetSheet(ctx context.Context, sheetID string) (*Sheet, error) {
	uri := fmt.Sprintf("%s/sheets/%s?includeAll=true", c.baseURL, url.PathEscape(sheetID))

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.client.Do(rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch sheet %s: %s", sheetID, errorBody(response))
	}

	sheet := Sheet{}
	if err := json.NewDecoder(response.Body).Decode(&sheet); err != nil {
		return nil, fmt.Errorf("invalid response for sheet %s (%v)", sheetID, err)
	}

	return &sheet, nil
}

type rowLock struct {
	ID     int64 `json:"id"`
	Locked bool  `json:"locked"`
}

// LockRows marks every listed row as locked in a single bulk mutation.
// The API accepts the mutation with either 200 or 202.
func (c *Client) LockRows(ctx context.Context, sheetID string, rows []int64) error {
	locks := make([]rowLock, len(rows))
	for i, id := range rows {
		locks[i] = rowLock{ID: id, Locked: true}
	}

	body, err := json.Marshal(locks)
	if err != nil {
		return err
	}

	uri := fmt.Sprintf("%s/sheets/%s/rows", c.baseURL, url.PathEscape(sheetID))

	rq, err := http.NewRequestWithContext(ctx, http.MethodPut, uri, bytes.NewReader(body))
	if err != nil {
		return err
	}

	rq.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(rq)
	if err != nil {
		return err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("failed to lock rows in sheet %s: %s", sheetID, errorBody(response))
	}

	return nil
}

func errorBody(response *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(response.Body, 4096))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return response.Status
	}

	return fmt.Sprintf("%s (%s)", response.Status, bytes.TrimSpace(b))
}
