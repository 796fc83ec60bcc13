// Package rest implements remote.Collection against the jobs REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/remote"
)

// Ensure restCollection implements remote.Collection.
var _ remote.Collection = (*restCollection)(nil)

type restCollection struct {
	baseURL string // always ends with "/"
	client  *http.Client
}

// NewCollection creates a jobs API client rooted at baseURL
// (e.g. "http://127.0.0.1:8000/api/jobs/"). A zero timeout means no
// client-side deadline beyond the request context.
func NewCollection(baseURL string, timeout time.Duration) remote.Collection {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &restCollection{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *restCollection) List(ctx context.Context) ([]domain.JobRecord, error) {
	var jobs []domain.JobRecord
	if err := c.do(ctx, "list", http.MethodGet, c.baseURL, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *restCollection) Create(ctx context.Context, draft domain.JobDraft) (domain.JobRecord, error) {
	var job domain.JobRecord
	err := c.do(ctx, "create", http.MethodPost, c.baseURL, draft, &job)
	return job, err
}

func (c *restCollection) Get(ctx context.Context, id int64) (domain.JobRecord, error) {
	var job domain.JobRecord
	err := c.do(ctx, "get", http.MethodGet, c.itemURL(id), nil, &job)
	return job, err
}

func (c *restCollection) Update(ctx context.Context, id int64, draft domain.JobDraft) (domain.JobRecord, error) {
	var job domain.JobRecord
	err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), draft, &job)
	return job, err
}

func (c *restCollection) Patch(ctx context.Context, id int64, patch domain.JobPatch) (domain.JobRecord, error) {
	var job domain.JobRecord
	err := c.do(ctx, "patch", http.MethodPatch, c.itemURL(id), patch, &job)
	return job, err
}

func (c *restCollection) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

// itemURL builds the per-record path; the API requires the trailing slash.
func (c *restCollection) itemURL(id int64) string {
	return fmt.Sprintf("%s%d/", c.baseURL, id)
}

// do performs one round trip: encode body (if any), send, check status,
// decode out (if any). Any network failure or non-2xx status comes back
// as a *domain.TransportError.
func (c *restCollection) do(ctx context.Context, op, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &domain.TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		terr := &domain.TransportError{Op: op, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusNotFound {
			terr.Err = domain.ErrJobNotFound
		}
		return terr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
