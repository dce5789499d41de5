package policycontent

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Field alias tables. The backend drifts between camelCase and snake_case for
// most fields; each canonical field lists the accepted raw keys in preference
// order, camelCase first. Keeping the drift in one table per entity makes it
// auditable instead of scattering per-field fallbacks.
var contentAliases = map[string][]string{
	"id":                 {"id"},
	"type":               {"type", "content_type"},
	"title":              {"title"},
	"category":           {"category"},
	"summary":            {"summary"},
	"status":             {"status"},
	"tags":               {"tags"},
	"imageUrl":           {"imageUrl", "image_url", "image"},
	"createdAt":          {"createdAt", "created_at"},
	"updatedAt":          {"updatedAt", "updated_at"},
	"viewCount":          {"viewCount", "view_count", "views"},
	"downloadCount":      {"downloadCount", "download_count", "downloads"},
	"priority":           {"priority"},
	"targetAudience":     {"targetAudience", "target_audience"},
	"keyRecommendations": {"keyRecommendations", "key_recommendations"},
	"region":             {"region", "regions"},
	"keyPoints":          {"keyPoints", "key_points"},
	"pageCount":          {"pageCount", "page_count", "pages"},
	"countryFocus":       {"countryFocus", "country_focus"},
	"relatedPolicies":    {"relatedPolicies", "related_policies"},
}

var workshopAliases = map[string][]string{
	"id":            {"id"},
	"title":         {"title"},
	"instructor":    {"instructor"},
	"date":          {"date"},
	"time":          {"time"},
	"duration":      {"duration"},
	"location":      {"location"},
	"venue":         {"venue"},
	"type":          {"type", "workshop_type"},
	"status":        {"status"},
	"description":   {"description"},
	"imageUrl":      {"imageUrl", "image_url", "image"},
	"capacity":      {"capacity", "max_participants"},
	"registered":    {"registered", "registered_count", "current_participants"},
	"price":         {"price"},
	"featured":      {"featured", "is_featured"},
	"prerequisites": {"prerequisites"},
	"materials":     {"materials"},
	"createdAt":     {"createdAt", "created_at"},
	"updatedAt":     {"updatedAt", "updated_at"},
}

var collaborationAliases = map[string][]string{
	"id":                 {"id"},
	"projectTitle":       {"projectTitle", "project_title", "title"},
	"projectDescription": {"projectDescription", "project_description", "description"},
	"institution":        {"institution"},
	"projectLead":        {"projectLead", "project_lead"},
	"contactEmail":       {"contactEmail", "contact_email", "email"},
	"skillsNeeded":       {"skillsNeeded", "skills_needed"},
	"commitmentLevel":    {"commitmentLevel", "commitment_level"},
	"duration":           {"duration"},
	"additionalNotes":    {"additionalNotes", "additional_notes"},
	"submittedAt":        {"submittedAt", "submitted_at", "created_at"},
	"status":             {"status"},
}

// NormalizeContent converts a loosely-shaped backend record into a strict
// ContentItem. It never fails: missing or malformed fields fall back to
// documented defaults (status Draft, priority Medium, zero counters, empty
// lists). Records tagged "PolicyBelief" or legacy "policy_belief" become the
// PolicyBelief variant; everything else is treated as PositionalStatement.
func NormalizeContent(raw map[string]any) ContentItem {
	f := fields{raw: raw, aliases: contentAliases}

	item := ContentItem{
		ID:            f.int64("id"),
		Type:          resolveContentType(f.string("type")),
		Title:         f.string("title"),
		Category:      f.string("category"),
		Summary:       f.string("summary"),
		Tags:          f.stringList("tags"),
		ImageURL:      f.string("imageUrl"),
		CreatedAt:     f.time("createdAt"),
		UpdatedAt:     f.time("updatedAt"),
		ViewCount:     f.count("viewCount"),
		DownloadCount: f.count("downloadCount"),
	}

	item.Status = ContentStatus(f.string("status"))
	if !item.Status.IsValid() {
		item.Status = ContentStatusDraft
	}

	switch item.Type {
	case TypePolicyBelief:
		item.Priority = Priority(f.string("priority"))
		if !item.Priority.IsValid() {
			item.Priority = PriorityMedium
		}
		item.TargetAudience = f.stringList("targetAudience")
		item.KeyRecommendations = f.stringList("keyRecommendations")
		item.Region = f.stringList("region")
	case TypePositionalStatement:
		item.KeyPoints = f.stringList("keyPoints")
		item.PageCount = f.count("pageCount")
		item.CountryFocus = f.stringList("countryFocus")
		item.RelatedPolicies = f.stringList("relatedPolicies")
	}

	return item
}

// NormalizeWorkshop converts a loosely-shaped backend record into a strict
// Workshop. Prerequisites and materials tolerate both plain strings and
// objects keyed name/prerequisite/material; entries that yield no non-blank
// string are dropped.
func NormalizeWorkshop(raw map[string]any) Workshop {
	f := fields{raw: raw, aliases: workshopAliases}

	w := Workshop{
		ID:            f.int64("id"),
		Title:         f.string("title"),
		Instructor:    f.string("instructor"),
		Date:          f.string("date"),
		Time:          f.string("time"),
		Duration:      f.string("duration"),
		Location:      f.string("location"),
		Venue:         f.string("venue"),
		Description:   f.string("description"),
		ImageURL:      f.string("imageUrl"),
		Capacity:      f.count("capacity"),
		Registered:    f.count("registered"),
		Price:         f.float("price"),
		Featured:      f.bool("featured"),
		Prerequisites: f.projectedList("prerequisites", "name", "prerequisite"),
		Materials:     f.projectedList("materials", "name", "material"),
		CreatedAt:     f.time("createdAt"),
		UpdatedAt:     f.time("updatedAt"),
	}

	w.Type = WorkshopType(f.string("type"))
	if !w.Type.IsValid() {
		w.Type = WorkshopTypeOnline
	}
	w.Status = WorkshopStatus(f.string("status"))
	if !w.Status.IsValid() {
		w.Status = WorkshopStatusPlanning
	}

	return w
}

// NormalizeCollaboration converts a loosely-shaped backend record into a
// strict CollaborationSubmission.
func NormalizeCollaboration(raw map[string]any) CollaborationSubmission {
	f := fields{raw: raw, aliases: collaborationAliases}

	c := CollaborationSubmission{
		ID:                 f.int64("id"),
		ProjectTitle:       f.string("projectTitle"),
		ProjectDescription: f.string("projectDescription"),
		Institution:        f.string("institution"),
		ProjectLead:        f.string("projectLead"),
		ContactEmail:       f.string("contactEmail"),
		SkillsNeeded:       f.stringList("skillsNeeded"),
		CommitmentLevel:    f.string("commitmentLevel"),
		Duration:           f.string("duration"),
		AdditionalNotes:    f.string("additionalNotes"),
		SubmittedAt:        f.time("submittedAt"),
	}

	c.Status = CollaborationStatus(f.string("status"))
	if !c.Status.IsValid() {
		c.Status = CollaborationStatusPending
	}

	return c
}

// resolveContentType maps a raw type tag to the content discriminant. Records
// without a recognizable PolicyBelief tag default to PositionalStatement,
// matching the backend's historical behavior for untagged rows.
func resolveContentType(tag string) ContentType {
	switch tag {
	case string(TypePolicyBelief), "policy_belief":
		return TypePolicyBelief
	default:
		return TypePositionalStatement
	}
}

// fields resolves canonical field names against a raw record through an alias
// table, applying the coercion rules shared by all three normalizers.
type fields struct {
	raw     map[string]any
	aliases map[string][]string
}

func (f fields) lookup(name string) (any, bool) {
	for _, key := range f.aliases[name] {
		if v, ok := f.raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f fields) string(name string) string {
	v, ok := f.lookup(name)
	if !ok {
		return ""
	}
	return coerceString(v)
}

func (f fields) int64(name string) int64 {
	v, ok := f.lookup(name)
	if !ok {
		return 0
	}
	return coerceInt64(v)
}

// count returns a non-negative integer, defaulting to 0.
func (f fields) count(name string) int {
	n := int(f.int64(name))
	if n < 0 {
		return 0
	}
	return n
}

func (f fields) float(name string) float64 {
	v, ok := f.lookup(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func (f fields) bool(name string) bool {
	v, ok := f.lookup(name)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (f fields) time(name string) time.Time {
	v, ok := f.lookup(name)
	if !ok {
		return time.Time{}
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stringList coerces a list field: non-array values become an empty list and
// elements are kept only when they trim to a non-empty string.
func (f fields) stringList(name string) []string {
	v, ok := f.lookup(name)
	if !ok {
		return []string{}
	}
	return coerceStringList(v, nil)
}

// projectedList is stringList extended to accept objects carrying the value
// under one of the given keys (plus "name"-style aliases per entity).
func (f fields) projectedList(name string, objectKeys ...string) []string {
	v, ok := f.lookup(name)
	if !ok {
		return []string{}
	}
	return coerceStringList(v, objectKeys)
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return ""
	}
}

func coerceInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func coerceStringList(v any, objectKeys []string) []string {
	out := []string{}

	appendEntry := func(entry any) {
		switch e := entry.(type) {
		case string:
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			for _, key := range objectKeys {
				if s := coerceString(e[key]); s != "" {
					out = append(out, s)
					return
				}
			}
		}
	}

	switch list := v.(type) {
	case []any:
		for _, entry := range list {
			appendEntry(entry)
		}
	case []string:
		for _, entry := range list {
			appendEntry(entry)
		}
	}

	return out
}
