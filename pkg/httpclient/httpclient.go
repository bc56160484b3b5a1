// Package httpclient is a small JSON client on top of fasthttp.
package httpclient

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/valyala/fasthttp"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	// Enable debug mode
	Debug bool

	// Request timeout, used when the context has no earlier deadline. Default is 10 seconds.
	Timeout time.Duration

	// Default headers
	Headers map[string]string
}

type Client struct {
	baseURL *url.URL
	client  *fasthttp.Client
	Config
}

func New(baseURL string, config ...Config) (*Client, error) {
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse base url")
	}
	if parsedBaseURL.Scheme == "" || parsedBaseURL.Host == "" {
		return nil, errors.Wrapf(errs.InvalidArgument, "base url %q must be absolute", baseURL)
	}
	var cf Config
	if len(config) > 0 {
		cf = config[0]
	}
	if len(cf.Headers) == 0 {
		cf.Headers = make(map[string]string)
	}
	if cf.Timeout <= 0 {
		cf.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: parsedBaseURL,
		client: &fasthttp.Client{
			NoDefaultUserAgentHeader: true,
		},
		Config: cf,
	}, nil
}

type RequestOptions struct {
	path   string
	method string
	Body   []byte
	Query  url.Values
	Header map[string]string
}

type HttpResponse struct {
	URL string
	fasthttp.Response
}

func (r *HttpResponse) UnmarshalBody(out any) error {
	body, err := r.BodyUncompressed()
	if err != nil {
		return errors.Wrapf(err, "can't uncompress body from %v", r.URL)
	}
	contentType := strings.ToLower(string(r.Header.ContentType()))
	if !strings.HasPrefix(contentType, "application/json") {
		return errors.Errorf("unsupported content type: %s, contents: %q", contentType, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "can't unmarshal json body from %s, %q", r.URL, string(body))
	}
	return nil
}

// JSON marshals v into a request body.
func JSON(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal request body")
	}
	return body, nil
}

func (h *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(h.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

func (h *Client) request(ctx context.Context, reqOptions RequestOptions) (*HttpResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	start := time.Now()
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseResponse(resp)
		fasthttp.ReleaseRequest(req)
	}()

	req.Header.SetMethod(reqOptions.method)
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range reqOptions.Header {
		req.Header.Set(k, v)
	}

	parsedUrl := h.BaseURL()
	parsedUrl.Path = path.Join(parsedUrl.Path, reqOptions.path)
	parsedUrl.RawQuery = reqOptions.Query.Encode()
	url := parsedUrl.String()
	req.SetRequestURI(url)
	if reqOptions.Body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(reqOptions.Body)
	}

	err := h.client.DoDeadline(req, resp, h.deadline(ctx))
	if h.Debug {
		logger.DebugContext(ctx, "Finished make request",
			slogx.String("package", "httpclient"),
			slogx.String("method", reqOptions.method),
			slogx.String("url", url),
			slogx.Duration("duration", time.Since(start)),
			slogx.Int("status_code", resp.StatusCode()),
			slogx.Int("resp_content_length", len(resp.Body())),
		)
	}
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, errors.Wrapf(errs.Timeout, "url: %s", url)
		}
		return nil, errors.Wrapf(err, "url: %s", url)
	}

	httpResponse := HttpResponse{
		URL: url,
	}
	resp.CopyTo(&httpResponse.Response)

	return &httpResponse, nil
}

// BaseURL returns the cloned base URL of the client.
func (h *Client) BaseURL() *url.URL {
	u := *h.baseURL
	return &u
}

func (h *Client) Do(ctx context.Context, method, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	reqOptions.path = path
	reqOptions.method = method
	return h.request(ctx, reqOptions)
}

func (h *Client) Get(ctx context.Context, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	return h.Do(ctx, fasthttp.MethodGet, path, reqOptions)
}

func (h *Client) Post(ctx context.Context, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	return h.Do(ctx, fasthttp.MethodPost, path, reqOptions)
}
