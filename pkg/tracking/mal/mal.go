package mal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kasuboski/showtrack/pkg/cache"
	mhttp "github.com/kasuboski/showtrack/pkg/http"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/tracking"
)

const (
	Name = "mal"

	DefaultAPIURL   = "https://api.myanimelist.net/v2"
	DefaultJikanURL = "https://api.jikan.moe/v4"

	searchLimit      = 10
	metadataCacheTTL = time.Hour
	maxErrorBody     = 512
)

var _ tracking.Service = (*Client)(nil)

// Client talks to MyAnimeList for list status and to Jikan for per-episode details
type Client struct {
	http        mhttp.HTTPClient
	apiURL      string
	jikanURL    string
	clientID    string
	accessToken string
	metadata    *cache.Cache[int32, []tracking.EpisodeMetadata]
}

type Option func(*Client)

func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiURL = strings.TrimRight(u, "/")
		}
	}
}

func WithJikanURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.jikanURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(client mhttp.HTTPClient) Option {
	return func(c *Client) {
		c.http = client
	}
}

// New creates a Client. Requests retry on 429 through a rate limited client unless WithHTTPClient is given.
func New(clientID, accessToken string, opts ...Option) *Client {
	c := &Client{
		http:        mhttp.NewRateLimitedClient(),
		apiURL:      DefaultAPIURL,
		jikanURL:    DefaultJikanURL,
		clientID:    clientID,
		accessToken: accessToken,
		metadata:    cache.New[int32, []tracking.EpisodeMetadata](metadataCacheTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Name() string {
	return Name
}

type listStatus struct {
	Status             string `json:"status,omitempty"`
	NumEpisodesWatched int32  `json:"num_episodes_watched"`
}

type anime struct {
	ID           int32       `json:"id"`
	Title        string      `json:"title"`
	NumEpisodes  int32       `json:"num_episodes"`
	MyListStatus *listStatus `json:"my_list_status,omitempty"`
}

type searchResponse struct {
	Data []struct {
		Node anime `json:"node"`
	} `json:"data"`
}

type episodesResponse struct {
	Pagination struct {
		HasNextPage bool `json:"has_next_page"`
	} `json:"pagination"`
	Data []struct {
		MalID  int32    `json:"mal_id"`
		Title  string   `json:"title"`
		Score  *float64 `json:"score"`
		Filler bool     `json:"filler"`
		Recap  bool     `json:"recap"`
		Aired  *string  `json:"aired"`
	} `json:"data"`
}

// IsAuthenticated reports whether the access token is accepted by MyAnimeList
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	if c.accessToken == "" {
		return false
	}

	var me struct {
		ID int64 `json:"id"`
	}
	err := c.do(ctx, "authenticate", http.MethodGet, c.apiURL+"/users/@me", nil, &me)
	if err != nil {
		logger.FromCtx(ctx).Debugw("mal authentication check failed", "error", err)
		return false
	}

	return true
}

func (c *Client) EpisodeCount(ctx context.Context, id int32) (int32, bool, error) {
	a, err := c.anime(ctx, "episode count", id)
	if err != nil {
		return 0, false, err
	}

	// MyAnimeList reports 0 for shows that are still airing with no announced length
	if a.NumEpisodes == 0 {
		return 0, false, nil
	}

	return a.NumEpisodes, true, nil
}

func (c *Client) RemoteProgress(ctx context.Context, id int32) (int32, bool, error) {
	a, err := c.anime(ctx, "remote progress", id)
	if err != nil {
		return 0, false, err
	}

	if a.MyListStatus == nil {
		return 0, false, nil
	}

	return a.MyListStatus.NumEpisodesWatched, true, nil
}

func (c *Client) SetRemoteProgress(ctx context.Context, id int32, progress int32) (int32, error) {
	form := url.Values{}
	form.Set("num_watched_episodes", strconv.Itoa(int(progress)))

	var status listStatus
	u := fmt.Sprintf("%s/anime/%d/my_list_status", c.apiURL, id)
	err := c.do(ctx, "set remote progress", http.MethodPatch, u, form, &status)
	if err != nil {
		return 0, err
	}

	return status.NumEpisodesWatched, nil
}

func (c *Client) SearchTitles(ctx context.Context, text string) ([]tracking.SearchResult, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("limit", strconv.Itoa(searchLimit))

	var res searchResponse
	err := c.do(ctx, "search titles", http.MethodGet, c.apiURL+"/anime?"+q.Encode(), nil, &res)
	if err != nil {
		return nil, err
	}

	results := make([]tracking.SearchResult, 0, len(res.Data))
	for _, d := range res.Data {
		results = append(results, tracking.SearchResult{
			RemoteID: d.Node.ID,
			Title:    d.Node.Title,
		})
	}

	return results, nil
}

// EpisodeMetadata walks every Jikan episode page for the show. Results are cached per show.
func (c *Client) EpisodeMetadata(ctx context.Context, id int32) ([]tracking.EpisodeMetadata, error) {
	if md, ok := c.metadata.Get(id); ok {
		return md, nil
	}

	var metadata []tracking.EpisodeMetadata
	for page := 1; ; page++ {
		var res episodesResponse
		u := fmt.Sprintf("%s/anime/%d/episodes?page=%d", c.jikanURL, id, page)
		if err := c.do(ctx, "episode metadata", http.MethodGet, u, nil, &res); err != nil {
			return nil, err
		}

		for _, e := range res.Data {
			md := tracking.EpisodeMetadata{
				Number: e.MalID,
				Title:  e.Title,
				Recap:  e.Recap,
				Filler: e.Filler,
				Score:  e.Score,
			}
			if e.Aired != nil {
				md.Aired = airedDate(*e.Aired)
			}
			metadata = append(metadata, md)
		}

		if !res.Pagination.HasNextPage || len(res.Data) == 0 {
			break
		}
	}

	c.metadata.Set(id, metadata)
	return metadata, nil
}

func (c *Client) anime(ctx context.Context, op string, id int32) (anime, error) {
	var a anime
	u := fmt.Sprintf("%s/anime/%d?fields=num_episodes,my_list_status", c.apiURL, id)
	err := c.do(ctx, op, http.MethodGet, u, nil, &a)
	return a, err
}

func (c *Client) do(ctx context.Context, op, method, u string, form url.Values, out any) error {
	log := logger.FromCtx(ctx)

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return c.remoteError(op, 0, err)
	}

	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if strings.HasPrefix(u, c.apiURL) {
		if c.clientID != "" {
			req.Header.Set("X-MAL-CLIENT-ID", c.clientID)
		}
		if c.accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.accessToken)
		}
	}

	log.Debugw("mal request", "op", op, "method", method, "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return c.remoteError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return c.remoteError(op, resp.StatusCode, tracking.ErrNotAuthenticated)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.remoteError(op, resp.StatusCode, errors.New(strings.TrimSpace(string(b))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.remoteError(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

func (c *Client) remoteError(op string, status int, err error) error {
	return &tracking.RemoteError{
		Service:    Name,
		Op:         op,
		StatusCode: status,
		Err:        err,
	}
}

// airedDate keeps the calendar date of an RFC 3339 timestamp
func airedDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format(time.DateOnly)
}
