package sdk

import (
	"bytes"
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/zdunecki/domobject/api/v1/objects"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	apiURL string
	http   *http.Client
}

// Snapshot asks the server for a snapshot of req.URL and returns the snapshot JSON as sent.
func (c *Client) Snapshot(ctx context.Context, req *objects.RequestSnapshot) (jsoniter.RawMessage, error) {
	var out jsoniter.RawMessage
	if err := c.request(ctx, http.MethodPost, "/snapshots", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Backends(ctx context.Context) ([]string, error) {
	out := &objects.ResponseBackends{}
	if err := c.request(ctx, http.MethodGet, "/backends", nil, out); err != nil {
		return nil, err
	}
	return out.Backends, nil
}

func (c *Client) request(ctx context.Context, method, resource string, body interface{}, outPtr interface{}) error {
	var bodyReader *bytes.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		bodyReader = bytes.NewReader(b)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+resource, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if outPtr != nil {
			return json.NewDecoder(resp.Body).Decode(outPtr)
		}

		return nil
	}

	apiErr := &objects.APIError{}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
		return &objects.APIError{
			Type:    objects.ErrorTypeInternal,
			Message: resp.Status,
		}
	}

	return apiErr
}
