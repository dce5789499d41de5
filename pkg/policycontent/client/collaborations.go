package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medassn/policy-content/pkg/policycontent"
)

// CollaborationListOptions are the query parameters for listing submissions.
type CollaborationListOptions struct {
	Status policycontent.CollaborationStatus
	Search string
}

func (o CollaborationListOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// ListCollaborations retrieves collaboration submissions matching the
// options.
func (c *Client) ListCollaborations(ctx context.Context, opts CollaborationListOptions) ([]policycontent.CollaborationSubmission, error) {
	data, err := c.getJSON(ctx, "/collaborations/", opts.query())
	if err != nil {
		return nil, err
	}
	records := decodeList(data)
	subs := make([]policycontent.CollaborationSubmission, 0, len(records))
	for _, record := range records {
		subs = append(subs, policycontent.NormalizeCollaboration(record))
	}
	return subs, nil
}

// GetCollaboration retrieves a single submission.
func (c *Client) GetCollaboration(ctx context.Context, id int64) (policycontent.CollaborationSubmission, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf("/collaborations/%d/", id), nil)
	if err != nil {
		return policycontent.CollaborationSubmission{}, notFound(err, policycontent.ErrCollaborationNotFound)
	}
	return c.decodeCollaboration(data)
}

// CreateCollaboration validates the input locally and submits a
// collaboration request.
func (c *Client) CreateCollaboration(ctx context.Context, input policycontent.CollaborationInput) (policycontent.CollaborationSubmission, error) {
	if result := policycontent.ValidateCollaboration(input); !result.Valid() {
		return policycontent.CollaborationSubmission{}, &ValidationError{Result: result}
	}
	data, err := c.sendJSON(ctx, http.MethodPost, "/collaborations/", input.WirePayload())
	if err != nil {
		return policycontent.CollaborationSubmission{}, err
	}
	return c.decodeCollaboration(data)
}

// UpdateCollaboration patches a submission with only the fields set on the
// patch.
func (c *Client) UpdateCollaboration(ctx context.Context, id int64, patch policycontent.CollaborationPatch) (policycontent.CollaborationSubmission, error) {
	data, err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/collaborations/%d/", id), patch.WirePayload())
	if err != nil {
		return policycontent.CollaborationSubmission{}, notFound(err, policycontent.ErrCollaborationNotFound)
	}
	return c.decodeCollaboration(data)
}

// DeleteCollaboration deletes a submission.
func (c *Client) DeleteCollaboration(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/collaborations/%d/", id), nil, nil, "")
	return notFound(err, policycontent.ErrCollaborationNotFound)
}

// UpdateCollaborationStatus transitions a submission's moderation status.
func (c *Client) UpdateCollaborationStatus(ctx context.Context, id int64, status policycontent.CollaborationStatus) (*policycontent.CollaborationSubmission, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", policycontent.ErrInvalidStatus, status)
	}
	data, err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/collaborations/%d/update_status/", id), map[string]any{"status": string(status)})
	if err != nil {
		return nil, notFound(err, policycontent.ErrCollaborationNotFound)
	}
	if data == nil {
		return nil, nil
	}
	sub, err := c.decodeCollaboration(data)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExportCollaborations downloads a server-generated export of submissions.
func (c *Client) ExportCollaborations(ctx context.Context, format string) ([]byte, error) {
	q := url.Values{}
	q.Set("format", format)
	return c.do(ctx, http.MethodGet, "/collaborations/export/", q, nil, "")
}

func (c *Client) decodeCollaboration(data []byte) (policycontent.CollaborationSubmission, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.CollaborationSubmission{}, err
	}
	return policycontent.NormalizeCollaboration(raw), nil
}
