package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medassn/policy-content/pkg/policycontent"
)

// ContentListOptions are the query parameters for listing content.
type ContentListOptions struct {
	Status   policycontent.ContentStatus
	Search   string
	Category string
	Type     policycontent.ContentType
}

func (o ContentListOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Type != "" {
		q.Set("type", string(o.Type))
	}
	return q
}

// ListContent retrieves content items matching the options.
func (c *Client) ListContent(ctx context.Context, opts ContentListOptions) ([]policycontent.ContentItem, error) {
	data, err := c.getJSON(ctx, "/content/", opts.query())
	if err != nil {
		return nil, err
	}
	records := decodeList(data)
	items := make([]policycontent.ContentItem, 0, len(records))
	for _, record := range records {
		items = append(items, policycontent.NormalizeContent(record))
	}
	return items, nil
}

// GetContent retrieves a single content item.
func (c *Client) GetContent(ctx context.Context, id int64) (policycontent.ContentItem, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf("/content/%d/", id), nil)
	if err != nil {
		return policycontent.ContentItem{}, notFound(err, policycontent.ErrContentNotFound)
	}
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	return policycontent.NormalizeContent(raw), nil
}

// CreateContent validates the input locally, then posts it as a multipart
// form. Validation failure returns a *ValidationError and issues no request.
func (c *Client) CreateContent(ctx context.Context, input policycontent.ContentInput) (policycontent.ContentItem, error) {
	if result := policycontent.ValidateContent(input); !result.Valid() {
		return policycontent.ContentItem{}, &ValidationError{Result: result}
	}

	body, contentType, err := policycontent.EncodeContentCreate(input)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	data, err := c.do(ctx, http.MethodPost, "/content/", nil, body, contentType)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	return policycontent.NormalizeContent(raw), nil
}

// UpdateContent patches a content item. Only fields set on the patch are
// sent; typ selects the concrete shape on the server side.
func (c *Client) UpdateContent(ctx context.Context, id int64, typ policycontent.ContentType, patch policycontent.ContentPatch) (policycontent.ContentItem, error) {
	body, contentType, err := policycontent.EncodeContentPatch(typ, patch)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	data, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/content/%d/", id), nil, body, contentType)
	if err != nil {
		return policycontent.ContentItem{}, notFound(err, policycontent.ErrContentNotFound)
	}
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.ContentItem{}, err
	}
	return policycontent.NormalizeContent(raw), nil
}

// DeleteContent deletes a content item. A 204 response resolves cleanly.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/content/%d/", id), nil, nil, "")
	return notFound(err, policycontent.ErrContentNotFound)
}

// UpdateContentStatus transitions a content item's lifecycle status. Returns
// the updated item when the server responds with a body, nil on 204.
func (c *Client) UpdateContentStatus(ctx context.Context, id int64, status policycontent.ContentStatus) (*policycontent.ContentItem, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", policycontent.ErrInvalidStatus, status)
	}
	data, err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/content/%d/status/", id), map[string]any{"status": string(status)})
	if err != nil {
		return nil, notFound(err, policycontent.ErrContentNotFound)
	}
	if data == nil {
		return nil, nil
	}
	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	item := policycontent.NormalizeContent(raw)
	return &item, nil
}

// IncrementView records one view for a content item.
func (c *Client) IncrementView(ctx context.Context, id int64, typ policycontent.ContentType) error {
	_, err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/content/%d/increment_view/", id), map[string]any{"content_type": string(typ)})
	return notFound(err, policycontent.ErrContentNotFound)
}

// IncrementDownload records one download for a content item.
func (c *Client) IncrementDownload(ctx context.Context, id int64, typ policycontent.ContentType) error {
	_, err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/content/%d/increment_download/", id), map[string]any{"content_type": string(typ)})
	return notFound(err, policycontent.ErrContentNotFound)
}

// ContentAnalytics fetches server-computed analytics. On failure the caller
// gets ErrAnalyticsUnavailable (wrapped); no local substitute is derived.
func (c *Client) ContentAnalytics(ctx context.Context) (policycontent.ContentAnalytics, error) {
	data, err := c.getJSON(ctx, "/content/analytics/", nil)
	if err != nil {
		return policycontent.ContentAnalytics{}, fmt.Errorf("%w: %w", policycontent.ErrAnalyticsUnavailable, err)
	}
	raw, err := decodeObject(data)
	if err != nil {
		return policycontent.ContentAnalytics{}, fmt.Errorf("%w: %w", policycontent.ErrAnalyticsUnavailable, err)
	}
	return policycontent.NormalizeContentAnalytics(raw), nil
}

// Categories lists the configured content categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/content/categories/")
}

// TargetAudienceOptions lists the configured audience values.
func (c *Client) TargetAudienceOptions(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/content/target_audience_options/")
}

// Regions lists the configured region values.
func (c *Client) Regions(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/content/regions/")
}

// Countries lists the configured country values.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/content/countries/")
}

// Tags lists the tags in use across content.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/content/tags/")
}

func (c *Client) stringList(ctx context.Context, path string) ([]string, error) {
	data, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeStringList(data), nil
}
