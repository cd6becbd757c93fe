package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the X API host used for v2 endpoints.
const DefaultBaseURL = "https://api.twitter.com"

// XConfig holds X (Twitter) API credentials
type XConfig struct {
	BearerToken       string // App-only token, used for read lookups
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string

	BaseURL    string       // Optional: defaults to DefaultBaseURL
	HTTPClient *http.Client // Optional: base transport for both auth styles
}

// XPoster creates posts through the X API v2 with OAuth1 user context
type XPoster struct {
	user    *http.Client // OAuth1-signed
	app     *http.Client // unsigned, bearer header added per request
	bearer  string
	baseURL string
	twitter *twitter.Client
	logger  zerolog.Logger
}

// Account identifies the user the credentials post as
type Account struct {
	ID         string
	ScreenName string
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// NewX creates an XPoster. All four OAuth1 values are required.
func NewX(cfg XConfig, logger zerolog.Logger) (*XPoster, error) {
	for name, v := range map[string]string{
		"consumer key":        cfg.ConsumerKey,
		"consumer secret":     cfg.ConsumerSecret,
		"access token":        cfg.AccessToken,
		"access token secret": cfg.AccessTokenSecret,
	} {
		if v == "" {
			return nil, fmt.Errorf("x: %s is required", name)
		}
	}

	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// oauth1 wraps the transport of the client found in the context.
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
	config := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)
	userClient := config.Client(ctx, token)

	return &XPoster{
		user:    userClient,
		app:     base,
		bearer:  cfg.BearerToken,
		baseURL: strings.TrimRight(baseURL, "/"),
		twitter: twitter.NewClient(userClient),
		logger:  logger.With().Str("component", "poster").Logger(),
	}, nil
}

// Post creates a post. A non-empty inReplyTo makes it a reply to that post.
func (p *XPoster) Post(ctx context.Context, text, inReplyTo string) (string, error) {
	reqBody := tweetRequest{Text: text}
	if inReplyTo != "" {
		reqBody.Reply = &tweetReply{InReplyToTweetID: inReplyTo}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.user.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", parseAPIError(resp.StatusCode, body, "POST /2/tweets")
	}

	var tr tweetResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("failed to parse post response: %w", err)
	}
	if tr.Data.ID == "" {
		return "", fmt.Errorf("post response missing data.id: %s", strings.TrimSpace(string(body)))
	}

	p.logger.Debug().
		Str("id", tr.Data.ID).
		Str("in_reply_to", inReplyTo).
		Msg("Created post")

	return tr.Data.ID, nil
}

// Verify checks the OAuth1 user credentials with v1.1
// account/verify_credentials and, when a bearer token is configured, the
// app-only credentials with a v2 user lookup.
func (p *XPoster) Verify(ctx context.Context) (*Account, error) {
	user, _, err := p.twitter.Accounts.VerifyCredentials(&twitter.AccountVerifyParams{
		SkipStatus:   twitter.Bool(true),
		IncludeEmail: twitter.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify user credentials: %w", err)
	}

	account := &Account{ID: user.IDStr, ScreenName: user.ScreenName}

	if p.bearer == "" {
		return account, nil
	}

	endpoint := p.baseURL + "/2/users/by/username/" + url.PathEscape(user.ScreenName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.bearer)

	resp, err := p.app.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to verify bearer token: %w",
			parseAPIError(resp.StatusCode, body, "GET /2/users/by/username"))
	}

	var ur userResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}
	if ur.Data.ID != "" && account.ID != "" && ur.Data.ID != account.ID {
		return nil, fmt.Errorf("bearer lookup returned user %s, credentials belong to %s", ur.Data.ID, account.ID)
	}

	return account, nil
}
