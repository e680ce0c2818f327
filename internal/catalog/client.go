// package catalog implements the read-only client for the remote catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Overboard/AskMinstrel/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// TokenSource supplies a valid bearer token for outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Client performs authenticated, rate-limited GET requests against the
// catalog service and decodes responses into the model types.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *log.Logger
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	RateLimit  float64
	Timeout    time.Duration
	Logger     *log.Logger
}

// NewClient creates a catalog client.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token source is required: %w", shared.ErrInvalidArgument)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.spotify.com/v1"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		tokens:     opts.Tokens,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}, nil
}

// get performs an authenticated GET to the given endpoint and decodes the
// JSON response into result. Each call waits on the shared rate limiter and
// is bounded by the configured per-request timeout, so a hung remote call
// cannot block unrelated work indefinitely.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("catalog request", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Search queries the catalog for entities of a single type.
func (c *Client) Search(ctx context.Context, query, entityType string) (*SearchResult, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=%s", url.QueryEscape(query), url.QueryEscape(entityType))

	var result SearchResult
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Artist retrieves a single artist by ID.
func (c *Client) Artist(ctx context.Context, artistID string) (*FullArtist, error) {
	var artist FullArtist
	if err := c.get(ctx, fmt.Sprintf("/artists/%s", url.PathEscape(artistID)), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistAlbums retrieves the album summaries for an artist.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) (*AlbumPage, error) {
	var page AlbumPage
	if err := c.get(ctx, fmt.Sprintf("/artists/%s/albums", url.PathEscape(artistID)), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Album retrieves a single album by ID.
func (c *Client) Album(ctx context.Context, albumID string) (*FullAlbum, error) {
	var album FullAlbum
	if err := c.get(ctx, fmt.Sprintf("/albums/%s", url.PathEscape(albumID)), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// AlbumTracks retrieves the track summaries for an album.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) (*SimpleTrackPage, error) {
	var page SimpleTrackPage
	if err := c.get(ctx, fmt.Sprintf("/albums/%s/tracks", url.PathEscape(albumID)), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Track retrieves a single track by ID.
func (c *Client) Track(ctx context.Context, trackID string) (*FullTrack, error) {
	var track FullTrack
	if err := c.get(ctx, fmt.Sprintf("/tracks/%s", url.PathEscape(trackID)), &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// TrackAudioFeatures retrieves the audio feature record for a track.
func (c *Client) TrackAudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error) {
	var features AudioFeatures
	if err := c.get(ctx, fmt.Sprintf("/audio-features/%s", url.PathEscape(trackID)), &features); err != nil {
		return nil, err
	}
	return &features, nil
}
