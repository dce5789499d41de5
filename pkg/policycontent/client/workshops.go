package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/medassn/policy-content/pkg/policycontent"
)

// WorkshopListOptions are the query parameters for listing workshops.
type WorkshopListOptions struct {
	Status policycontent.WorkshopStatus
	Type   policycontent.WorkshopType
	Search string
}

func (o WorkshopListOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Type != "" {
		q.Set("type", string(o.Type))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// ListWorkshops retrieves workshops matching the options.
func (c *Client) ListWorkshops(ctx context.Context, opts WorkshopListOptions) ([]policycontent.Workshop, error) {
	return c.workshopList(ctx, "/workshops/", opts.query())
}

// FeaturedWorkshops retrieves the workshops flagged as featured.
func (c *Client) FeaturedWorkshops(ctx context.Context) ([]policycontent.Workshop, error) {
	return c.workshopList(ctx, "/workshops/featured/", nil)
}

// UpcomingWorkshops retrieves workshops with a future date.
func (c *Client) UpcomingWorkshops(ctx context.Context) ([]policycontent.Workshop, error) {
	return c.workshopList(ctx, "/workshops/upcoming/", nil)
}

func (c *Client) workshopList(ctx context.Context, path string, query url.Values) ([]policycontent.Workshop, error) {
	data, err := c.getJSON(ctx, path, query)
	if err != nil {
		return nil, err
	}
	records := decodeList(data)
	workshops := make([]policycontent.Workshop, 0, len(records))
	for _, record := range records {
		workshops = append(workshops, policycontent.NormalizeWorkshop(record))
	}
	return workshops, nil
}

// GetWorkshop retrieves a single workshop.
func (c *Client) GetWorkshop(ctx context.Context, id int64) (policycontent.Workshop, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf("/workshops/%d/", id), nil)
	if err != nil {
		return policycontent.Workshop{}, notFound(err, policycontent.ErrWorkshopNotFound)
	}
	return c.decodeWorkshop(data)
}

// CreateWorkshop validates the input locally and creates a workshop.
func (c *Client) CreateWorkshop(ctx context.Context, input policycontent.WorkshopInput) (policycontent.Workshop, error) {
	if result := policycontent.ValidateWorkshop(input); !result.Valid() {
		return policycontent.Workshop{}, &ValidationError{Result: result}
	}
	data, err := c.sendJSON(ctx, http.MethodPost, "/workshops/", input.WirePayload())
	if err != nil {
		return policycontent.Workshop{}, err
	}
	return c.decodeWorkshop(data)
}

// UpdateWorkshop patches a workshop with only the fields set on the patch.
func (c *Client) UpdateWorkshop(ctx context.Context, id int64, patch policycontent.WorkshopPatch) (policycontent.Workshop, error) {
	data, err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/workshops/%d/", id), patch.WirePayload())
	if err != nil {
		return policycontent.Workshop{}, notFound(err, policycontent.ErrWorkshopNotFound)
	}
	return c.decodeWorkshop(data)
}

// DeleteWorkshop deletes a workshop.
func (c *Client) DeleteWorkshop(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/workshops/%d/", id), nil, nil, "")
	return notFound(err, policycontent.ErrWorkshopNotFound)
}

// ToggleWorkshopFeatured flips the featured flag on a workshop.
func (c *Client) ToggleWorkshopFeatured(ctx context.Context, id int64) (policycontent.Workshop, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/workshops/%d/toggle_featured/", id), map[string]any{})
	if err != nil {
		return policycontent.Workshop{}, notFound(err, policycontent.ErrWorkshopNotFound)
	}
	return c.decodeWorkshop(data)
}

// UpdateWorkshopStatus transitions a workshop's lifecycle status.
func (c *Client) UpdateWorkshopStatus(ctx context.Context, id int64, status policycontent.WorkshopStatus) (*policycontent.Workshop, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", policycontent.ErrInvalidStatus, status)
	}
	data, err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/workshops/%d/update_status/", id), map[string]any{"status": string(status)})
	if err != nil {
		return nil, notFound(err, policycontent.ErrWorkshopNotFound)
	}
	if data == nil {
		return nil, nil
	}
	w, err := c.decodeWorkshop(data)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// WorkshopAnalytics fetches server-computed workshop analytics.
func (c *Client) WorkshopAnalytics(ctx context.Context) (policycontent.WorkshopAnalytics, error) {
	data, err := c.getJSON(ctx, "/workshops/analytics/", nil)
	if err != nil {
		return policycontent.WorkshopAnalytics{}, fmt.Errorf("%w: %w", policycontent.ErrAnalyticsUnavailable, err)
	}
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.WorkshopAnalytics{}, fmt.Errorf("%w: %w", policycontent.ErrAnalyticsUnavailable, err)
	}
	return policycontent.NormalizeWorkshopAnalytics(raw), nil
}

// UploadWorkshopImage uploads an image file and returns the stored URL.
func (c *Client) UploadWorkshopImage(ctx context.Context, image policycontent.ImageFile) (string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", image.Name)
	if err != nil {
		return "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, image.Reader); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/workshops/upload_image/", nil, body, mw.FormDataContentType())
	if err != nil {
		return "", err
	}
	raw, err := decodeObject(data)
	if err != nil {
		return "", err
	}
	for _, key := range []string{"url", "image_url", "imageUrl"} {
		if s, ok := raw[key].(string); ok && s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("upload response contained no image url")
}

// ExportWorkshops downloads a server-generated export. Format is "csv" or
// "xlsx"; the raw file bytes are returned.
func (c *Client) ExportWorkshops(ctx context.Context, format string) ([]byte, error) {
	q := url.Values{}
	q.Set("format", format)
	return c.do(ctx, http.MethodGet, "/workshops/export/", q, nil, "")
}

func (c *Client) decodeWorkshop(data []byte) (policycontent.Workshop, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.Workshop{}, err
	}
	return policycontent.NormalizeWorkshop(raw), nil
}
