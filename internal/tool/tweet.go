package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTweetEndpoint = "https://cdn.syndication.twimg.com/tweet-result"

// GetTweet fetches a single tweet for <get_tweet id="..."/> via the public
// syndication endpoint, which needs no API credentials.
type GetTweet struct {
	Client   *http.Client
	Endpoint string
	Limits   Limits
}

func NewGetTweet(timeout time.Duration, limits Limits) *GetTweet {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &GetTweet{
		Client:   &http.Client{Timeout: timeout},
		Endpoint: defaultTweetEndpoint,
		Limits:   limits,
	}
}

func (t *GetTweet) Name() string { return "get_tweet" }

func (t *GetTweet) Usage() string { return `<get_tweet id="1234567890"/>` }

func (t *GetTweet) Validate(attrs map[string]string) error {
	id := strings.TrimSpace(attrs["id"])
	if id == "" {
		return fmt.Errorf("get_tweet.id is required")
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return fmt.Errorf("get_tweet.id must be numeric")
		}
	}
	return nil
}

type tweetPayload struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	User      struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

func (t *GetTweet) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}
	id := strings.TrimSpace(attrs["id"])

	target := t.Endpoint + "?id=" + url.QueryEscape(id) + "&lang=en"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("get_tweet failed: %w", err)
	}
	req.Header.Set("User-Agent", "tagclaw/1.0")

	resp, err := t.Client.Do(req)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("get_tweet failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("get_tweet read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("get_tweet non-success status=%d id=%s", resp.StatusCode, id)
		return Result{OK: false, ForModel: err.Error()}, err
	}

	var payload tweetPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("get_tweet parse failed: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s (%s)", payload.User.ScreenName, payload.User.Name)
	if payload.CreatedAt != "" {
		fmt.Fprintf(&b, " at %s", payload.CreatedAt)
	}
	b.WriteString(":\n" + payload.Text + "\n")

	text, truncLines, truncBytes := ApplyOutputLimits(b.String(), t.Limits)
	return Result{
		OK:             true,
		ForModel:       text,
		ForUser:        fmt.Sprintf("fetched tweet %s by @%s", id, payload.User.ScreenName),
		TruncatedLines: truncLines,
		TruncatedBytes: truncBytes,
	}, nil
}
