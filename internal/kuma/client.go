package kuma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kumareport/internal/models"
)

// Client reads the public status page API of an Uptime Kuma instance.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a client for the instance at baseURL.
// There is no overall request timeout; callers bound a request with ctx.
func NewClient(baseURL string) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Transport: transport},
	}
}

// FetchMonitorList loads monitor names and grouping for a status page.
func (c *Client) FetchMonitorList(ctx context.Context, slug string) (models.StatusPage, error) {
	endpoint := c.endpoint("/api/status-page/", slug)
	log.Printf("Requesting Monitor List from: %s", endpoint)

	page := models.StatusPage{}
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return models.StatusPage{}, fmt.Errorf("monitor list: %w", err)
	}
	return page, nil
}

// FetchHeartbeats loads the recent heartbeats of every monitor on a status page.
func (c *Client) FetchHeartbeats(ctx context.Context, slug string) (models.HeartbeatData, error) {
	endpoint := c.endpoint("/api/status-page/heartbeat/", slug)
	log.Printf("Requesting Heartbeat Data from: %s", endpoint)

	data := models.HeartbeatData{}
	if err := c.getJSON(ctx, endpoint, &data); err != nil {
		return models.HeartbeatData{}, fmt.Errorf("heartbeats: %w", err)
	}
	return data, nil
}

func (c *Client) endpoint(prefix, slug string) string {
	return c.baseURL + prefix + url.PathEscape(slug)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &HTTPError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &HTTPError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(dest); err != nil {
		return &DecodeError{URL: endpoint, Err: err}
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return &DecodeError{URL: endpoint, Err: err}
	}
	return nil
}
