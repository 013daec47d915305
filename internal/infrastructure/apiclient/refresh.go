package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/skillswap/skillswap-web/internal/api/metrics"
	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// attempt marks whether a request is on its first try or its single retry.
type attempt int

const (
	attemptInitial attempt = iota
	attemptRetried
)

func (a attempt) String() string {
	if a == attemptRetried {
		return "retried"
	}
	return "initial"
}

var refreshRequest = Request{
	Op:          "auth.refresh",
	Method:      http.MethodPost,
	Path:        "/api/auth/refresh",
	skipRefresh: true,
}

type result struct {
	status int
	data   json.RawMessage
}

// Do issues req and returns the unwrapped envelope data. Failures are
// always *domain.APIError.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	res, err := c.send(ctx, req)
	return res.data, err
}

// send runs the INITIAL → RETRIED state machine. Only a 401 on the initial
// attempt of a refreshable request leads to a refresh, and only a
// successful refresh leads to the retry.
func (c *Client) send(ctx context.Context, req Request) (result, error) {
	res, err := c.attempt(ctx, req, attemptInitial)
	if err == nil || req.skipRefresh || !domain.IsUnauthorized(err) {
		return res, err
	}

	if rerr := c.refreshSession(ctx); rerr != nil {
		if ctx.Err() != nil {
			return result{}, err
		}
		c.log.Info().Str("op", req.Op).Err(rerr).Msg("session refresh failed, navigating to sign-in")
		c.nav.Navigate(ctx, domain.SignInPath)
		return result{}, expired(err)
	}

	return c.attempt(ctx, req, attemptRetried)
}

// refreshSession performs POST /api/auth/refresh, sharing one call between
// concurrent callers. The shared call outlives any single caller's cancellation.
func (c *Client) refreshSession(ctx context.Context) error {
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		_, err := c.attempt(context.WithoutCancel(ctx), refreshRequest, attemptInitial)
		if err != nil {
			metrics.SessionRefreshTotal.WithLabelValues("failure").Inc()
			return nil, err
		}
		metrics.SessionRefreshTotal.WithLabelValues("success").Inc()
		c.log.Debug().Msg("session refreshed")
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		return r.Err
	}
}

func expired(err error) error {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	out := *apiErr
	out.Expired = true
	return &out
}

func (c *Client) attempt(ctx context.Context, req Request, n attempt) (result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return result{}, domain.NewNetworkError(fmt.Errorf("rate limit: %w", err))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return result{}, domain.NewNetworkError(fmt.Errorf("%s: %w", req.Op, err))
	}

	log := c.log.With().
		Str("op", req.Op).
		Str("method", req.Method).
		Str("path", req.Path).
		Stringer("attempt", n).
		Str("request_id", httpReq.Header.Get(HeaderRequestID)).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.APIRequestDuration.WithLabelValues(req.Op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Op, "network").Inc()
		log.Warn().Err(err).Msg("api request failed")
		return result{}, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(req.Op, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api request")

	body, err := readBody(resp.Body)
	if err != nil {
		return result{}, &domain.APIError{Status: resp.StatusCode, Message: domain.FallbackMessage, Err: err}
	}

	data, err := normalize(resp.StatusCode, body)
	if err != nil {
		return result{status: resp.StatusCode}, err
	}
	return result{status: resp.StatusCode, data: data}, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrMalformedEnvelope, maxBodyBytes)
	}
	return body, nil
}

// call issues req and decodes its data into T.
func call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	res, err := c.send(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](req.Op, res.status, res.data)
}

// exec issues req and discards its data.
func exec(ctx context.Context, c *Client, req Request) error {
	_, err := c.send(ctx, req)
	return err
}
