package policycontent

import "sort"

// CategoryCount is an occurrence count for one category, in first-occurrence
// order of the source collection.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ContentSummary is the client-side aggregate over a content collection. It
// mirrors what the backend analytics endpoint computes so the two can be
// cross-checked.
type ContentSummary struct {
	Total          int                   `json:"total"`
	ByStatus       map[ContentStatus]int `json:"byStatus"`
	ByCategory     []CategoryCount       `json:"byCategory"`
	TotalViews     int                   `json:"totalViews"`
	TotalDownloads int                   `json:"totalDownloads"`
}

// WorkshopSummary is the client-side aggregate over a workshop collection.
type WorkshopSummary struct {
	Total           int                    `json:"total"`
	ByStatus        map[WorkshopStatus]int `json:"byStatus"`
	ByType          map[WorkshopType]int   `json:"byType"`
	TotalCapacity   int                    `json:"totalCapacity"`
	TotalRegistered int                    `json:"totalRegistered"`
}

// CollaborationSummary is the client-side aggregate over submissions.
type CollaborationSummary struct {
	Total    int                         `json:"total"`
	ByStatus map[CollaborationStatus]int `json:"byStatus"`
}

// EngagementCounter selects which counter orders a top-N ranking.
type EngagementCounter int

// Engagement counters.
const (
	ByViews EngagementCounter = iota
	ByDownloads
)

// AggregateContent computes summary statistics over a content collection.
// Category counts preserve first-occurrence order.
func AggregateContent(items []ContentItem) ContentSummary {
	summary := ContentSummary{
		ByStatus:   map[ContentStatus]int{},
		ByCategory: []CategoryCount{},
	}
	categoryIndex := map[string]int{}

	for _, item := range items {
		summary.Total++
		summary.ByStatus[item.Status]++
		summary.TotalViews += item.ViewCount
		summary.TotalDownloads += item.DownloadCount

		if idx, ok := categoryIndex[item.Category]; ok {
			summary.ByCategory[idx].Count++
		} else {
			categoryIndex[item.Category] = len(summary.ByCategory)
			summary.ByCategory = append(summary.ByCategory, CategoryCount{Category: item.Category, Count: 1})
		}
	}
	return summary
}

// AggregateWorkshops computes summary statistics over a workshop collection.
func AggregateWorkshops(items []Workshop) WorkshopSummary {
	summary := WorkshopSummary{
		ByStatus: map[WorkshopStatus]int{},
		ByType:   map[WorkshopType]int{},
	}
	for _, w := range items {
		summary.Total++
		summary.ByStatus[w.Status]++
		summary.ByType[w.Type]++
		summary.TotalCapacity += w.Capacity
		summary.TotalRegistered += w.Registered
	}
	return summary
}

// AggregateCollaborations computes summary statistics over submissions.
func AggregateCollaborations(items []CollaborationSubmission) CollaborationSummary {
	summary := CollaborationSummary{ByStatus: map[CollaborationStatus]int{}}
	for _, c := range items {
		summary.Total++
		summary.ByStatus[c.Status]++
	}
	return summary
}

// TopByEngagement returns the n items with the highest chosen counter,
// descending. Ties keep the original collection order (stable sort).
func TopByEngagement(items []ContentItem, n int, counter EngagementCounter) []ContentItem {
	ranked := make([]ContentItem, len(items))
	copy(ranked, items)

	value := func(item ContentItem) int {
		if counter == ByDownloads {
			return item.DownloadCount
		}
		return item.ViewCount
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return value(ranked[i]) > value(ranked[j])
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ContentAnalytics is the server-reported analytics payload for content.
type ContentAnalytics struct {
	TotalItems     int            `json:"totalItems"`
	TotalViews     int            `json:"totalViews"`
	TotalDownloads int            `json:"totalDownloads"`
	ByStatus       map[string]int `json:"byStatus"`
	ByCategory     map[string]int `json:"byCategory"`
	ByType         map[string]int `json:"byType"`
}

// WorkshopAnalytics is the server-reported analytics payload for workshops.
type WorkshopAnalytics struct {
	TotalWorkshops  int            `json:"totalWorkshops"`
	TotalRegistered int            `json:"totalRegistered"`
	TotalCapacity   int            `json:"totalCapacity"`
	ByStatus        map[string]int `json:"byStatus"`
	ByType          map[string]int `json:"byType"`
}

var contentAnalyticsAliases = map[string][]string{
	"totalItems":     {"totalItems", "total_items", "total"},
	"totalViews":     {"totalViews", "total_views"},
	"totalDownloads": {"totalDownloads", "total_downloads"},
	"byStatus":       {"byStatus", "by_status", "status_breakdown"},
	"byCategory":     {"byCategory", "by_category", "category_breakdown"},
	"byType":         {"byType", "by_type", "type_breakdown"},
}

var workshopAnalyticsAliases = map[string][]string{
	"totalWorkshops":  {"totalWorkshops", "total_workshops", "total"},
	"totalRegistered": {"totalRegistered", "total_registered"},
	"totalCapacity":   {"totalCapacity", "total_capacity"},
	"byStatus":        {"byStatus", "by_status", "status_breakdown"},
	"byType":          {"byType", "by_type", "type_breakdown"},
}

// NormalizeContentAnalytics converts a raw analytics payload, tolerating the
// same naming drift as entity records.
func NormalizeContentAnalytics(raw map[string]any) ContentAnalytics {
	f := fields{raw: raw, aliases: contentAnalyticsAliases}
	return ContentAnalytics{
		TotalItems:     f.count("totalItems"),
		TotalViews:     f.count("totalViews"),
		TotalDownloads: f.count("totalDownloads"),
		ByStatus:       countMap(f, "byStatus"),
		ByCategory:     countMap(f, "byCategory"),
		ByType:         countMap(f, "byType"),
	}
}

// NormalizeWorkshopAnalytics converts a raw workshop analytics payload.
func NormalizeWorkshopAnalytics(raw map[string]any) WorkshopAnalytics {
	f := fields{raw: raw, aliases: workshopAnalyticsAliases}
	return WorkshopAnalytics{
		TotalWorkshops:  f.count("totalWorkshops"),
		TotalRegistered: f.count("totalRegistered"),
		TotalCapacity:   f.count("totalCapacity"),
		ByStatus:        countMap(f, "byStatus"),
		ByType:          countMap(f, "byType"),
	}
}

func countMap(f fields, name string) map[string]int {
	out := map[string]int{}
	v, ok := f.lookup(name)
	if !ok {
		return out
	}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for key, value := range m {
		out[key] = int(coerceInt64(value))
	}
	return out
}
