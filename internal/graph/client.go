package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/pauljones0/fb-page-extractor/internal/config"
)

const requestTimeout = 30 * time.Second

// Client is a minimal Graph API client: object fetches by id and paginated
// connection reads. It performs no retries.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func New(cfg *config.Config) *Client {
	return NewWithBaseURL(cfg, cfg.GraphBaseURL)
}

// NewWithBaseURL builds a client against baseURL instead of the configured
// Graph API host. The API version from cfg is appended to it.
func NewWithBaseURL(cfg *config.Config, baseURL string) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/"+cfg.APIVersion).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("access_token", cfg.APIToken)
	instrument(httpClient)

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

type connectionPage struct {
	Data   []json.RawMessage `json:"data"`
	Paging *struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// GetObject fetches the object at id (which may be a path such as
// "{page_id}/posts") and decodes the response into out.
func (c *Client) GetObject(ctx context.Context, id string, params map[string]string, out any) error {
	return c.getObject(ctx, id, toValues(params), out)
}

func (c *Client) getObject(ctx context.Context, id string, params url.Values, out any) error {
	body, err := c.get(ctx, id, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response of %s: %v", id, err), Err: err}
	}
	return nil
}

// GetAllConnections reads the connection edge of id page by page, calling fn
// for every element until the API stops returning a next link. An error from
// fn stops the iteration and is returned as is.
func (c *Client) GetAllConnections(ctx context.Context, id, connection string, params map[string]string, fn func(json.RawMessage) error) error {
	path := id + "/" + connection
	args := toValues(params)

	for {
		var page connectionPage
		if err := c.getObject(ctx, path, args, &page); err != nil {
			return err
		}
		for _, item := range page.Data {
			if err := fn(item); err != nil {
				return err
			}
		}
		if page.Paging == nil || page.Paging.Next == "" {
			return nil
		}

		next, err := nextParams(page.Paging.Next)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("invalid next link for %s: %v", path, err), Err: err}
		}
		args = next
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("waiting to request %s: %v", path, err), Err: err}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, &APIError{Message: redact(path, err), Err: err}
	}
	if apiErr := parseError(res.StatusCode(), res.Body()); apiErr != nil {
		return nil, apiErr
	}
	return res.Body(), nil
}

// nextParams turns a paging.next link into query parameters for the same
// edge. The access token is dropped so the client's own token is used.
func nextParams(next string) (url.Values, error) {
	u, err := url.Parse(next)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Del("access_token")
	return q, nil
}

func toValues(params map[string]string) url.Values {
	v := make(url.Values, len(params))
	for k, p := range params {
		v.Set(k, p)
	}
	return v
}

// redact formats a transport error without the request URL, which carries
// the access token.
func redact(path string, err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Sprintf("%s %s: %v", uerr.Op, path, uerr.Err)
	}
	return fmt.Sprintf("request %s: %v", path, err)
}
