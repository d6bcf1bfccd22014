package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"fresco"
)

// DefaultPageSize matches the page size the web client requested.
const DefaultPageSize = 12

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API: %s %s: %s: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	pageSize   int
	httpClient fresco.HTTPClient
	tokens     TokenSource
	tracer     trace.Tracer
	requests   metric.Int64Counter
	failures   metric.Int64Counter
	duration   metric.Float64Histogram
}

type ClientOpts struct {
	BaseURL        string
	PageSize       int
	HTTPClient     fresco.HTTPClient
	Tokens         TokenSource
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

func NewClient(opts ClientOpts) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("missing API base URL")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("missing HTTP client")
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(fresco.TracerNameAPI)

	requests, err := meter.Int64Counter("api_requests_total",
		metric.WithDescription("Total number of requests sent to the fresco API"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("api_requests_failed_total",
		metric.WithDescription("Total number of fresco API requests that failed or returned a non-2xx status"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("api_request_duration_seconds",
		metric.WithDescription("Time taken to receive a response from the fresco API in seconds"))
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    base,
		pageSize:   pageSize,
		httpClient: opts.HTTPClient,
		tokens:     opts.Tokens,
		tracer:     tp.Tracer(fresco.TracerNameAPI),
		requests:   requests,
		failures:   failures,
		duration:   duration,
	}, nil
}

// PageSize is the page size sent with list requests.
func (c *Client) PageSize() int { return c.pageSize }

type call struct {
	method string
	route  string // low-cardinality name for spans and metrics
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do sends the call and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("API %s %s", cl.method, cl.route), trace.WithAttributes(
		attribute.String("http.request.method", cl.method),
		attribute.String("http.route", cl.route),
	))
	defer span.End()

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", cl.method),
		attribute.String("http.route", cl.route),
	)
	start := time.Now()
	c.requests.Add(ctx, 1, attrs)
	defer func() {
		c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if err != nil {
			c.failures.Add(ctx, 1, attrs)
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
	}()

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth {
		if c.tokens == nil {
			return fresco.ErrNotAuthenticated
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     cl.method,
			Path:       cl.path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		slog.Warn("API: decode failed", "route", cl.route, "error", err)
		return fmt.Errorf("failed to decode %s response: %w", cl.route, err)
	}
	return nil
}
