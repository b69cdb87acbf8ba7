// Package social posts to the external social feed on behalf of the app
// account, signing requests with OAuth 1.0a user-context credentials.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	defaultAPIURL  = "https://api.twitter.com"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

type TwitterConfig struct {
	APIURL         string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	Timeout        time.Duration
}

type TwitterClient struct {
	httpClient *http.Client
	baseURL    string
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

func NewTwitterClient(cfg TwitterConfig) *TwitterClient {
	baseURL := strings.TrimRight(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)

	httpClient := oauthCfg.Client(context.Background(), token)
	httpClient.Timeout = timeout

	return &TwitterClient{httpClient: httpClient, baseURL: baseURL}
}

// Post publishes text and returns the id of the created tweet.
func (c *TwitterClient) Post(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send tweet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("tweet rejected: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode tweet response: %w", err)
	}
	if out.Data.ID == "" {
		return "", errors.New("tweet response has no id")
	}
	return out.Data.ID, nil
}
