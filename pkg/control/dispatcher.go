// Package control is a client for the administrative control API of a DNS
// filtering service. A Dispatcher maps each logical operation to exactly one
// HTTP call under <address>/control/ and hands back the raw response.
package control

import (
	"context"
	"strings"
	"time"

	"github.com/samvad-hq/guardctl/pkg/httpclient"
)

// BasePath is the prefix every control endpoint lives under.
const BasePath = "control"

const (
	contentTypeText  = "text/plain"
	filterURLParam   = "url"
	parentalSettings = "sensitivity=TEEN"
	downloadQuery    = "?download=1"
)

// RequestConfig carries the optional data of a single call.
type RequestConfig struct {
	Body        string
	Headers     map[string]string
	QueryParams map[string]string
}

// Dispatcher issues control API requests. It holds no mutable state and is
// safe for concurrent use.
type Dispatcher struct {
	baseURL string
	client  httpclient.Client
	now     func() time.Time
	log     Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithClock sets the source of "now" used for the stats history window.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(log Logger) Option {
	return func(d *Dispatcher) {
		d.log = ensureLogger(log)
	}
}

// NewDispatcher builds a dispatcher for the service reachable at address
// (e.g. "http://127.0.0.1:3000"). An empty address yields relative URLs.
func NewDispatcher(address string, opts ...Option) *Dispatcher {
	base := strings.TrimRight(strings.TrimSpace(address), "/")
	if base == "" {
		base = BasePath
	} else {
		base += "/" + BasePath
	}

	d := &Dispatcher{
		baseURL: base,
		now:     time.Now,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = httpclient.NewRestyClient(0)
	}
	return d
}

// BaseURL returns the prefix every request path is appended to.
func (d *Dispatcher) BaseURL() string { return d.baseURL }

// Invoke sends one request to <base>/<path>. path is not validated. An empty
// method means POST. Failures come back as *TransportError or *HTTPStatusError
// and are never retried.
func (d *Dispatcher) Invoke(ctx context.Context, path string, method Method, cfg *RequestConfig) (*Response, error) {
	if method == "" {
		method = MethodPost
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req := httpclient.Request{
		Method: string(method),
		URL:    d.baseURL + "/" + path,
	}
	if cfg != nil {
		req.Body = cfg.Body
		req.Headers = cfg.Headers
		req.QueryParams = cfg.QueryParams
	}

	d.log.DebugObj("control request", "control_request", map[string]any{
		"method": req.Method,
		"url":    req.URL,
	})

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: req.URL, Err: err}
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		return nil, &HTTPStatusError{Method: method, URL: req.URL, StatusCode: code, Body: resp.Body()}
	}

	return &Response{StatusCode: code, Header: resp.Header(), Body: resp.Body()}, nil
}

func (d *Dispatcher) call(ctx context.Context, id OperationID, cfg *RequestConfig) (*Response, error) {
	desc := mustLookup(id)
	return d.Invoke(ctx, desc.Path, desc.Method, cfg)
}

func textBody(body string) *RequestConfig {
	return &RequestConfig{
		Body:    body,
		Headers: map[string]string{"Content-Type": contentTypeText},
	}
}

// filterURLBody builds "url=<value>". value is not percent-encoded.
func filterURLBody(value string) *RequestConfig {
	return textBody(filterURLParam + "=" + value)
}

// Global

// RestartGlobalFiltering restarts DNS filtering on the service.
func (d *Dispatcher) RestartGlobalFiltering(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalRestart, nil)
}

// StartGlobalFiltering starts DNS filtering.
func (d *Dispatcher) StartGlobalFiltering(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStart, nil)
}

// StopGlobalFiltering stops DNS filtering.
func (d *Dispatcher) StopGlobalFiltering(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStop, nil)
}

// GlobalStatus returns the service status.
func (d *Dispatcher) GlobalStatus(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStatus, nil)
}

// GlobalStats returns aggregate statistics.
func (d *Dispatcher) GlobalStats(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStats, nil)
}

// GlobalStatsTop returns the top clients and domains.
func (d *Dispatcher) GlobalStatsTop(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStatsTop, nil)
}

// GlobalStatsHistory requests hourly stats for the current local calendar day.
// The window is recomputed on every call.
func (d *Dispatcher) GlobalStatsHistory(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalStatsHistory, &RequestConfig{QueryParams: statsHistoryParams(d.now())})
}

// Query log

// QueryLog returns the query log.
func (d *Dispatcher) QueryLog(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalQueryLog, nil)
}

// DownloadQueryLog fetches the query log as a download (querylog?download=1).
func (d *Dispatcher) DownloadQueryLog(ctx context.Context) (*Response, error) {
	desc := mustLookup(GlobalQueryLog)
	return d.Invoke(ctx, desc.Path+downloadQuery, desc.Method, nil)
}

// EnableQueryLog turns the query log on.
func (d *Dispatcher) EnableQueryLog(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalQueryLogEnable, nil)
}

// DisableQueryLog turns the query log off.
func (d *Dispatcher) DisableQueryLog(ctx context.Context) (*Response, error) {
	return d.call(ctx, GlobalQueryLogDisable, nil)
}

// SetUpstream sends url verbatim as the upstream DNS setting.
func (d *Dispatcher) SetUpstream(ctx context.Context, url string) (*Response, error) {
	return d.call(ctx, GlobalSetUpstreamDNS, textBody(url))
}

// Filtering

// FilteringStatus returns the filtering status, filter lists and rules.
func (d *Dispatcher) FilteringStatus(ctx context.Context) (*Response, error) {
	return d.call(ctx, FilteringStatus, nil)
}

// EnableFiltering turns filtering on.
func (d *Dispatcher) EnableFiltering(ctx context.Context) (*Response, error) {
	return d.call(ctx, FilteringEnable, nil)
}

// DisableFiltering turns filtering off.
func (d *Dispatcher) DisableFiltering(ctx context.Context) (*Response, error) {
	return d.call(ctx, FilteringDisable, nil)
}

// RefreshFilters asks the service to re-download its filter lists.
func (d *Dispatcher) RefreshFilters(ctx context.Context) (*Response, error) {
	return d.call(ctx, FilteringRefresh, nil)
}

// AddFilter subscribes to the filter list at url.
func (d *Dispatcher) AddFilter(ctx context.Context, url string) (*Response, error) {
	return d.call(ctx, FilteringAddFilter, filterURLBody(url))
}

// RemoveFilter unsubscribes from the filter list at url.
func (d *Dispatcher) RemoveFilter(ctx context.Context, url string) (*Response, error) {
	return d.call(ctx, FilteringRemoveFilter, filterURLBody(url))
}

// EnableFilter enables the subscribed filter list at url.
func (d *Dispatcher) EnableFilter(ctx context.Context, url string) (*Response, error) {
	return d.call(ctx, FilteringEnableFilter, filterURLBody(url))
}

// DisableFilter disables the subscribed filter list at url.
func (d *Dispatcher) DisableFilter(ctx context.Context, url string) (*Response, error) {
	return d.call(ctx, FilteringDisableFilter, filterURLBody(url))
}

// SetRules replaces the user rules with the given text.
func (d *Dispatcher) SetRules(ctx context.Context, rules string) (*Response, error) {
	return d.call(ctx, FilteringSetRules, textBody(rules))
}

// Parental control

// ParentalStatus returns the parental control status.
func (d *Dispatcher) ParentalStatus(ctx context.Context) (*Response, error) {
	return d.call(ctx, ParentalStatus, nil)
}

// EnableParentalControl always requests the TEEN sensitivity level.
func (d *Dispatcher) EnableParentalControl(ctx context.Context) (*Response, error) {
	return d.call(ctx, ParentalEnable, textBody(parentalSettings))
}

// DisableParentalControl turns parental control off.
func (d *Dispatcher) DisableParentalControl(ctx context.Context) (*Response, error) {
	return d.call(ctx, ParentalDisable, nil)
}

// Safe browsing

// SafebrowsingStatus returns the safe browsing status.
func (d *Dispatcher) SafebrowsingStatus(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafebrowsingStatus, nil)
}

// EnableSafebrowsing turns safe browsing on.
func (d *Dispatcher) EnableSafebrowsing(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafebrowsingEnable, nil)
}

// DisableSafebrowsing turns safe browsing off.
func (d *Dispatcher) DisableSafebrowsing(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafebrowsingDisable, nil)
}

// Safe search

// SafesearchStatus returns the safe search status.
func (d *Dispatcher) SafesearchStatus(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafesearchStatus, nil)
}

// EnableSafesearch turns safe search on.
func (d *Dispatcher) EnableSafesearch(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafesearchEnable, nil)
}

// DisableSafesearch turns safe search off.
func (d *Dispatcher) DisableSafesearch(ctx context.Context) (*Response, error) {
	return d.call(ctx, SafesearchDisable, nil)
}
