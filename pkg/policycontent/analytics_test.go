package policycontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateContent(t *testing.T) {
	items := []ContentItem{
		{Category: "Advocacy", Status: ContentStatusPublished, ViewCount: 10, DownloadCount: 2},
		{Category: "Research", Status: ContentStatusDraft, ViewCount: 5},
		{Category: "Advocacy", Status: ContentStatusPublished, ViewCount: 1, DownloadCount: 4},
		{Category: "Education", Status: ContentStatusArchived},
	}

	summary := AggregateContent(items)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 16, summary.TotalViews)
	assert.Equal(t, 6, summary.TotalDownloads)
	assert.Equal(t, map[ContentStatus]int{
		ContentStatusPublished: 2,
		ContentStatusDraft:     1,
		ContentStatusArchived:  1,
	}, summary.ByStatus)
	assert.Equal(t, []CategoryCount{
		{Category: "Advocacy", Count: 2},
		{Category: "Research", Count: 1},
		{Category: "Education", Count: 1},
	}, summary.ByCategory, "categories keep first-occurrence order")
}

func TestAggregateContentEmpty(t *testing.T) {
	summary := AggregateContent(nil)

	assert.Zero(t, summary.Total)
	assert.NotNil(t, summary.ByStatus)
	assert.NotNil(t, summary.ByCategory)
	assert.Empty(t, summary.ByCategory)
}

func TestAggregateWorkshops(t *testing.T) {
	summary := AggregateWorkshops([]Workshop{
		{Status: WorkshopStatusPlanning, Type: WorkshopTypeOnline, Capacity: 40, Registered: 12},
		{Status: WorkshopStatusCompleted, Type: WorkshopTypeOnline, Capacity: 25, Registered: 25},
	})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 65, summary.TotalCapacity)
	assert.Equal(t, 37, summary.TotalRegistered)
	assert.Equal(t, 2, summary.ByType[WorkshopTypeOnline])
}

func TestAggregateCollaborations(t *testing.T) {
	summary := AggregateCollaborations([]CollaborationSubmission{
		{Status: CollaborationStatusPending},
		{Status: CollaborationStatusPending},
		{Status: CollaborationStatusRejected},
	})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByStatus[CollaborationStatusPending])
	assert.Equal(t, 1, summary.ByStatus[CollaborationStatusRejected])
}

func TestTopByEngagement(t *testing.T) {
	items := []ContentItem{
		{ID: 1, ViewCount: 5, DownloadCount: 9},
		{ID: 2, ViewCount: 10, DownloadCount: 1},
		{ID: 3, ViewCount: 5, DownloadCount: 3},
		{ID: 4, ViewCount: 7, DownloadCount: 3},
	}

	t.Run("by views, ties keep source order", func(t *testing.T) {
		top := TopByEngagement(items, 3, ByViews)
		ids := []int64{top[0].ID, top[1].ID, top[2].ID}
		assert.Equal(t, []int64{2, 4, 1}, ids)
	})

	t.Run("by downloads", func(t *testing.T) {
		top := TopByEngagement(items, 2, ByDownloads)
		assert.Equal(t, int64(1), top[0].ID)
		assert.Equal(t, int64(3), top[1].ID, "tie between 3 and 4 resolves to earlier item")
	})

	t.Run("n larger than collection", func(t *testing.T) {
		assert.Len(t, TopByEngagement(items, 50, ByViews), 4)
	})

	t.Run("negative n", func(t *testing.T) {
		assert.Empty(t, TopByEngagement(items, -1, ByViews))
	})

	t.Run("source order untouched", func(t *testing.T) {
		TopByEngagement(items, 4, ByViews)
		assert.Equal(t, int64(1), items[0].ID)
	})
}

func TestNormalizeContentAnalytics(t *testing.T) {
	raw := map[string]any{
		"total_items":     float64(12),
		"total_views":     float64(340),
		"total_downloads": float64(51),
		"by_status":       map[string]any{"Published": float64(9), "Draft": float64(3)},
		"by_category":     map[string]any{"Advocacy": float64(7)},
	}

	analytics := NormalizeContentAnalytics(raw)

	assert.Equal(t, 12, analytics.TotalItems)
	assert.Equal(t, 340, analytics.TotalViews)
	assert.Equal(t, 51, analytics.TotalDownloads)
	assert.Equal(t, map[string]int{"Published": 9, "Draft": 3}, analytics.ByStatus)
	assert.Equal(t, map[string]int{"Advocacy": 7}, analytics.ByCategory)
	assert.NotNil(t, analytics.ByType)
}

func TestNormalizeWorkshopAnalytics(t *testing.T) {
	raw := map[string]any{
		"totalWorkshops":   float64(4),
		"total_registered": float64(88),
		"by_type":          map[string]any{"Online": float64(3), "Hybrid": float64(1)},
	}

	analytics := NormalizeWorkshopAnalytics(raw)

	assert.Equal(t, 4, analytics.TotalWorkshops)
	assert.Equal(t, 88, analytics.TotalRegistered)
	assert.Zero(t, analytics.TotalCapacity)
	assert.Equal(t, map[string]int{"Online": 3, "Hybrid": 1}, analytics.ByType)
}
