package bestdori

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chartrender/chart"

	"golang.org/x/text/language"
)

const DefaultBaseURL = "https://bestdori.com"

// DefaultLanguages is the order names are picked in when a server lacks one.
var DefaultLanguages = []language.Tag{
	language.Japanese,
	language.SimplifiedChinese,
	language.TraditionalChinese,
	language.English,
	language.Korean,
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Languages []language.Tag
	// Cache may be shared between clients. Nil gets a private cache.
	Cache *Cache
	// FallbackJacket replaces jackets that cannot be fetched.
	FallbackJacket []byte
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Client talks to the Bestdori API.
type Client struct {
	base     *url.URL
	http     *http.Client
	cache    *Cache
	names    *namePicker
	fallback []byte
	logger   *slog.Logger
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("bestdori: base url: %w", err)
	}
	if len(opts.Languages) == 0 {
		opts.Languages = DefaultLanguages
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		opts.HTTPClient = &http.Client{Timeout: timeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		base:     base,
		http:     opts.HTTPClient,
		cache:    opts.Cache,
		names:    newNamePicker(opts.Languages),
		fallback: opts.FallbackJacket,
		logger:   opts.Logger,
	}, nil
}

func (c *Client) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

func (c *Client) get(ctx context.Context, ref string) ([]byte, error) {
	target := c.resolve(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("bestdori request", "url", target, "status", resp.StatusCode, "took", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, ref string, v any) error {
	body, err := c.get(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", ref, err)
	}
	return nil
}

// Chart fetches an official chart.
func (c *Client) Chart(ctx context.Context, songID int, d chart.Difficulty) (chart.Chart, error) {
	ref := fmt.Sprintf("/api/charts/%d/%s.json", songID, d.Slug())
	body, err := c.get(ctx, ref)
	if err != nil {
		return chart.Chart{}, err
	}
	var ch chart.Chart
	if err := json.Unmarshal(body, &ch); err != nil {
		return chart.Chart{}, fmt.Errorf("%s: %w: %w", ref, ErrMalformedChart, err)
	}
	return ch, nil
}

// Post fetches a fan-made chart post.
func (c *Client) Post(ctx context.Context, postID int) (*Post, error) {
	var details postDetails
	if err := c.getJSON(ctx, "/api/post/details?id="+strconv.Itoa(postID), &details); err != nil {
		return nil, err
	}
	if !details.Result {
		return nil, fmt.Errorf("post %d: %w", postID, ErrPostNotFound)
	}
	p := details.Post.Post
	if err := json.Unmarshal(details.Post.Chart, &p.Chart); err != nil {
		return nil, fmt.Errorf("post %d: %w: %w", postID, ErrMalformedChart, err)
	}
	return &p, nil
}

// shared runs fn once per key across concurrent callers. fn runs detached
// from ctx so one caller giving up does not fail the others; each caller
// still stops waiting when its own ctx ends.
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.cache.group.DoChan(key, func() (interface{}, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Song fetches song metadata, once per song per cache.
func (c *Client) Song(ctx context.Context, songID int) (*Song, error) {
	if s, ok := c.cache.song(songID); ok {
		c.logger.Debug("song cache hit", "song", songID)
		return s, nil
	}

	v, err := c.shared(ctx, "song:"+strconv.Itoa(songID), func(ctx context.Context) (interface{}, error) {
		if s, ok := c.cache.song(songID); ok {
			return s, nil
		}
		var s Song
		if err := c.getJSON(ctx, fmt.Sprintf("/api/songs/%d.json", songID), &s); err != nil {
			return nil, err
		}
		c.cache.putSong(songID, &s)
		return &s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Song), nil
}

// BandName returns the band's name in the most preferred language that has
// one. The whole band table is fetched on first use.
func (c *Client) BandName(ctx context.Context, bandID int) (string, error) {
	names, ok, loaded := c.cache.band(bandID)
	if !loaded {
		if _, err := c.shared(ctx, "bands", func(ctx context.Context) (interface{}, error) {
			if _, _, loaded := c.cache.band(bandID); loaded {
				return nil, nil
			}
			var table map[int]band
			if err := c.getJSON(ctx, "/api/bands/all.1.json", &table); err != nil {
				return nil, err
			}
			bands := make(map[int]Localized, len(table))
			for id, b := range table {
				bands[id] = b.BandName
			}
			c.cache.putBands(bands)
			return nil, nil
		}); err != nil {
			return "", err
		}
		names, ok, _ = c.cache.band(bandID)
	}
	if !ok {
		return "", fmt.Errorf("band %d: %w", bandID, ErrUnknownBand)
	}
	return c.names.pick(names), nil
}

// Jacket fetches a jacket image. Failures fall back to the client's
// fallback jacket and are never returned.
func (c *Client) Jacket(ctx context.Context, ref string) []byte {
	if ref == "" {
		return c.fallback
	}
	body, err := c.get(ctx, ref)
	if err != nil || len(body) == 0 {
		c.logger.Warn("jacket unavailable, using fallback", "url", ref, "err", err)
		return c.fallback
	}
	return body
}

// JacketURL builds the thumbnail URL of an official song's jacket. Jackets
// are packed ten songs to a bundle.
func (c *Client) JacketURL(songID int, name string) string {
	pack := int(math.Ceil(float64(songID)/10)) * 10
	return c.resolve(fmt.Sprintf(
		"/assets/jp/musicjacket/musicjacket%d_rip/assets-star-forassetbundle-startapp-musicjacket-musicjacket%d-%s-thumb.png",
		pack, pack, name,
	))
}
