package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassn/policy-content/pkg/policycontent"
	"github.com/medassn/policy-content/pkg/policycontent/apitest"
	"github.com/medassn/policy-content/pkg/policycontent/client"
)

func newTestServer(t *testing.T, opts ...apitest.Option) (*apitest.Server, *client.Client) {
	t.Helper()
	api := apitest.NewServer(opts...)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, client.New(srv.URL, client.Credentials{})
}

func TestListContentNormalizesDriftingRecords(t *testing.T) {
	api, c := newTestServer(t)
	api.SeedContent(map[string]any{
		"type":            "policy_belief",
		"title":           "Medication access",
		"target_audience": []any{"MoH"},
		"tags":            []any{" ", "epilepsy"},
	})

	items, err := c.ListContent(context.Background(), client.ContentListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, policycontent.TypePolicyBelief, item.Type)
	assert.Equal(t, []string{"MoH"}, item.TargetAudience)
	assert.Equal(t, []string{"epilepsy"}, item.Tags)
	assert.Equal(t, policycontent.ContentStatusDraft, item.Status)
}

func TestListContentQueryFilters(t *testing.T) {
	api, c := newTestServer(t)
	api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "One", "status": "Published", "category": "Advocacy"})
	api.SeedContent(map[string]any{"type": "PositionalStatement", "title": "Two", "status": "Draft", "category": "Research"})

	items, err := c.ListContent(context.Background(), client.ContentListOptions{
		Status: policycontent.ContentStatusPublished,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "One", items[0].Title)
}

func TestGetContentNotFound(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.GetContent(context.Background(), 999)
	assert.ErrorIs(t, err, policycontent.ErrContentNotFound)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "content not found", apiErr.Message)
}

func TestCreateContentRoundTrip(t *testing.T) {
	_, c := newTestServer(t)

	input := policycontent.ContentInput{
		Type:               policycontent.TypePolicyBelief,
		Title:              "Medication access",
		Category:           "Advocacy",
		Summary:            "Essential medicine availability.",
		Tags:               []string{"medication"},
		ImageURL:           "/media/content/belief.png",
		Priority:           policycontent.PriorityHigh,
		TargetAudience:     []string{"Ministries of Health"},
		KeyRecommendations: []string{"Include ASMs on essential lists"},
		Region:             []string{"East Africa"},
	}

	created, err := c.CreateContent(context.Background(), input)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, policycontent.TypePolicyBelief, created.Type)
	assert.Equal(t, policycontent.ContentStatusDraft, created.Status, "server assigns the default status")
	assert.Equal(t, []string{"East Africa"}, created.Region)
	assert.Zero(t, created.ViewCount)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := c.GetContent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.TargetAudience, got.TargetAudience)
}

func TestCreateContentValidationIssuesNoRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)
	c := client.New(srv.URL, client.Credentials{})

	input := policycontent.ContentInput{
		Type:         policycontent.TypePositionalStatement,
		Title:        "Telemedicine position",
		Category:     "Research",
		Summary:      "Position paper.",
		Tags:         []string{"telemedicine"},
		ImageURL:     "/media/content/statement.png",
		KeyPoints:    []string{"Remote consults"},
		PageCount:    0,
		CountryFocus: []string{"Nigeria"},
	}

	_, err := c.CreateContent(context.Background(), input)
	var valErr *client.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.ErrorIs(t, err, policycontent.ErrValidationFailed)
	assert.Contains(t, valErr.Result.Errors, "pageCount")
	assert.Zero(t, hits.Load(), "validation failure must not reach the network")
}

func TestUpdateContentPartialPatch(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedContent(map[string]any{
		"type":   "PolicyBelief",
		"title":  "Original title",
		"tags":   []any{"stigma"},
		"status": "Draft",
	})

	status := policycontent.ContentStatusPublished
	updated, err := c.UpdateContent(context.Background(), id, policycontent.TypePolicyBelief, policycontent.ContentPatch{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, policycontent.ContentStatusPublished, updated.Status)
	assert.Equal(t, "Original title", updated.Title, "unset fields never overwrite server state")
	assert.Equal(t, []string{"stigma"}, updated.Tags)
}

func TestDeleteContent(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "Doomed"})

	require.NoError(t, c.DeleteContent(context.Background(), id), "a 204 response resolves cleanly")

	_, err := c.GetContent(context.Background(), id)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestUpdateContentStatus(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "Item", "status": "Draft"})

	item, err := c.UpdateContentStatus(context.Background(), id, policycontent.ContentStatusArchived)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, policycontent.ContentStatusArchived, item.Status)

	_, err = c.UpdateContentStatus(context.Background(), id, "Retired")
	assert.ErrorIs(t, err, policycontent.ErrInvalidStatus)
}

func TestIncrementCounters(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "Item"})

	ctx := context.Background()
	require.NoError(t, c.IncrementView(ctx, id, policycontent.TypePolicyBelief))
	require.NoError(t, c.IncrementView(ctx, id, policycontent.TypePolicyBelief))
	require.NoError(t, c.IncrementDownload(ctx, id, policycontent.TypePolicyBelief))

	item, err := c.GetContent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, item.ViewCount)
	assert.Equal(t, 1, item.DownloadCount)
}

func TestContentAnalytics(t *testing.T) {
	api, c := newTestServer(t)
	api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "A", "status": "Published", "category": "Advocacy", "view_count": float64(10)})
	api.SeedContent(map[string]any{"type": "PositionalStatement", "title": "B", "status": "Draft", "category": "Advocacy"})

	analytics, err := c.ContentAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalItems)
	assert.Equal(t, 10, analytics.TotalViews)
	assert.Equal(t, map[string]int{"Published": 1, "Draft": 1}, analytics.ByStatus)
	assert.Equal(t, 2, analytics.ByCategory["Advocacy"])
}

func TestContentAnalyticsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := client.New(srv.URL, client.Credentials{})

	_, err := c.ContentAnalytics(context.Background())
	assert.ErrorIs(t, err, policycontent.ErrAnalyticsUnavailable)

	var apiErr *client.APIError
	assert.True(t, errors.As(err, &apiErr), "transport detail stays inspectable")
}

func TestListCoercesNonArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detail": "unexpected shape"}`))
	}))
	t.Cleanup(srv.Close)
	c := client.New(srv.URL, client.Credentials{})

	items, err := c.ListContent(context.Background(), client.ContentListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestMetadataEndpoints(t *testing.T) {
	api, c := newTestServer(t)
	api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "A", "tags": []any{"epilepsy", "stigma"}})
	api.SeedContent(map[string]any{"type": "PolicyBelief", "title": "B", "tags": []any{"stigma", "access"}})

	ctx := context.Background()

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Advocacy")

	regions, err := c.Regions(ctx)
	require.NoError(t, err)
	assert.Contains(t, regions, policycontent.AllRegions)

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"epilepsy", "stigma", "access"}, tags, "tags deduplicate in first-seen order")
}

func TestBearerTokenAuth(t *testing.T) {
	api := apitest.NewServer(apitest.WithJWTAuth([]byte("test-secret")))
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	anonymous := client.New(srv.URL, client.Credentials{})
	_, err := anonymous.ListContent(context.Background(), client.ContentListOptions{})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	authed := client.New(srv.URL, client.Credentials{BearerToken: api.TokenFor("tester")})
	items, err := authed.ListContent(context.Background(), client.ContentListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
