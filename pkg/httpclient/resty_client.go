package httpclient

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy controls retry behaviour for one fetcher. It is stateless
// and applies per request, not per session.
type RetryPolicy struct {
	// Attempts is the total number of tries, the first request included.
	Attempts int
	// WaitMin is the backoff base; resty grows it exponentially (with
	// jitter) up to WaitMax between attempts.
	WaitMin time.Duration
	WaitMax time.Duration
	// Statuses is the set of HTTP status codes that trigger a retry.
	// Transport errors are always retryable.
	Statuses []int
}

const (
	defaultAttempts = 3
	defaultWaitMin  = 200 * time.Millisecond
	defaultWaitMax  = 10 * time.Second
)

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.WaitMin <= 0 {
		p.WaitMin = defaultWaitMin
	}
	if p.WaitMax < p.WaitMin {
		p.WaitMax = defaultWaitMax
	}
	return p
}

// Options configures a RestyClient.
type Options struct {
	Timeout time.Duration
	Retry   RetryPolicy
	// Proxies is the optional proxy pool; one entry is picked uniformly
	// at random per request. Empty means all requests go direct.
	Proxies []Proxy
	Agents  *AgentPool
}

// RestyClient adapts resty.Client to the httpclient.Client interface,
// with retry, per-request User-Agent rotation and optional proxies.
type RestyClient struct {
	clients []*resty.Client
	agents  *AgentPool
}

// NewRestyClient builds a client pool: one resty client per proxy, or a
// single direct client when no proxies are configured.
func NewRestyClient(opts Options) (*RestyClient, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Agents == nil {
		opts.Agents = NewAgentPool()
	}
	policy := opts.Retry.normalized()

	if len(opts.Proxies) == 0 {
		return &RestyClient{
			clients: []*resty.Client{newRetryingBaseClient(opts.Timeout, policy)},
			agents:  opts.Agents,
		}, nil
	}

	clients := make([]*resty.Client, 0, len(opts.Proxies))
	for i, proxy := range opts.Proxies {
		authURL, err := proxy.AuthURL()
		if err != nil {
			return nil, fmt.Errorf("proxy[%d]: %w", i, err)
		}
		c := newRetryingBaseClient(opts.Timeout, policy)
		c.SetProxy(authURL)
		clients = append(clients, c)
	}
	return &RestyClient{clients: clients, agents: opts.Agents}, nil
}

// NewRestyHTTPClient exposes a plain configured resty.Client for callers
// needing custom verbs (e.g. HTTP sinks).
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// newRetryingBaseClient creates a resty.Client with timeout and retry policy applied.
func newRetryingBaseClient(timeout time.Duration, policy RetryPolicy) *resty.Client {
	retryable := make(map[int]bool, len(policy.Statuses))
	for _, code := range policy.Statuses {
		retryable[code] = true
	}

	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(policy.Attempts - 1)
	c.SetRetryWaitTime(policy.WaitMin)
	c.SetRetryMaxWaitTime(policy.WaitMax)
	c.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return retryable[r.StatusCode()]
	})
	return c
}

// Get performs an HTTP GET with the configured retry policy, a random
// User-Agent, and a random proxy from the pool (when configured).
// Exhausted retries surface as the last response; the caller decides
// what a terminal status means.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	client := r.clients[0]
	if len(r.clients) > 1 {
		client = r.clients[rand.Intn(len(r.clients))]
	}

	req := client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if _, ok := headers["User-Agent"]; !ok {
		req.SetHeader("User-Agent", r.agents.Random())
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
