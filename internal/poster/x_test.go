package poster

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// rewriteTransport redirects all HTTP requests to a local httptest server,
// so code that uses the real X hosts can be exercised.
type rewriteTransport struct {
	base   http.RoundTripper
	target string // e.g., "http://127.0.0.1:PORT"
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = strings.TrimPrefix(rt.target, "http://")
	return rt.base.RoundTrip(req)
}

func newTestX(t *testing.T, handler http.HandlerFunc, bearer string) *XPoster {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewX(XConfig{
		BearerToken:       bearer,
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "at",
		AccessTokenSecret: "as",
		HTTPClient: &http.Client{
			Transport: rewriteTransport{base: http.DefaultTransport, target: srv.URL},
		},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewX: %v", err)
	}
	return p
}

func TestNewX_RequiresCredentials(t *testing.T) {
	_, err := NewX(XConfig{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at"}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for missing access token secret")
	}
	if !strings.Contains(err.Error(), "access token secret") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestXPost_Title(t *testing.T) {
	p := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/2/tweets" {
			t.Errorf("expected /2/tweets, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json content-type, got %s", ct)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "OAuth ") {
			t.Errorf("expected OAuth1 authorization header, got %q", auth)
		}

		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["text"] != "Top 33 Global Spotify" {
			t.Errorf("unexpected text %v", req["text"])
		}
		if _, ok := req["reply"]; ok {
			t.Error("title post must not carry a reply field")
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1001","text":"Top 33 Global Spotify"}}`))
	}, "")

	id, err := p.Post(context.Background(), "Top 33 Global Spotify", "")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1001" {
		t.Errorf("expected id 1001, got %s", id)
	}
}

func TestXPost_Reply(t *testing.T) {
	p := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		var req tweetRequest
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)

		if req.Reply == nil || req.Reply.InReplyToTweetID != "1001" {
			t.Errorf("expected reply to 1001, got %+v", req.Reply)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1002"}}`))
	}, "")

	id, err := p.Post(context.Background(), "1. Song - Artist", "1001")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1002" {
		t.Errorf("expected id 1002, got %s", id)
	}
}

func TestXPost_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains []string
	}{
		{
			name:     "v2 problem",
			status:   http.StatusForbidden,
			body:     `{"title":"Forbidden","detail":"You are not permitted to perform this action.","type":"about:blank"}`,
			contains: []string{"403", "Forbidden", "not permitted"},
		},
		{
			name:     "v1 errors",
			status:   http.StatusUnauthorized,
			body:     `{"errors":[{"code":89,"message":"Invalid or expired token."}]}`,
			contains: []string{"401", "89", "Invalid or expired token"},
		},
		{
			name:     "raw body",
			status:   http.StatusTooManyRequests,
			body:     `slow down`,
			contains: []string{"429", "slow down"},
		},
		{
			name:     "success without id",
			status:   http.StatusCreated,
			body:     `{"data":{}}`,
			contains: []string{"missing data.id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "")

			_, err := p.Post(context.Background(), "text", "")
			if err == nil {
				t.Fatal("expected error")
			}
			for _, s := range tt.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("expected %q in error, got: %v", s, err)
				}
			}
		})
	}
}

func TestXVerify(t *testing.T) {
	var sawBearer bool
	p := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/1.1/account/verify_credentials.json":
			if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "OAuth ") {
				t.Errorf("expected OAuth1 header on verify_credentials, got %q", auth)
			}
			_, _ = w.Write([]byte(`{"id":42,"id_str":"42","screen_name":"chartbot"}`))
		case r.URL.Path == "/2/users/by/username/chartbot":
			if auth := r.Header.Get("Authorization"); auth != "Bearer app-token" {
				t.Errorf("expected bearer header on lookup, got %q", auth)
			}
			sawBearer = true
			_, _ = w.Write([]byte(`{"data":{"id":"42","username":"chartbot"}}`))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}, "app-token")

	account, err := p.Verify(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if account.ScreenName != "chartbot" || account.ID != "42" {
		t.Errorf("unexpected account %+v", account)
	}
	if !sawBearer {
		t.Error("expected bearer token lookup")
	}
}

func TestXVerify_BadBearer(t *testing.T) {
	p := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1.1/account/verify_credentials.json" {
			_, _ = w.Write([]byte(`{"id_str":"42","screen_name":"chartbot"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthorized","detail":"Unauthorized"}`))
	}, "bad-token")

	_, err := p.Verify(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected bearer token")
	}
	if !strings.Contains(err.Error(), "bearer") {
		t.Errorf("expected bearer in error, got: %v", err)
	}
}
