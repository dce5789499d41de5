package policycontent

import "strings"

// AllRegions is the sentinel region/country value matching every audience.
// Items tagged with the sentinel match any region predicate, and a filter set
// to the sentinel matches every item.
const AllRegions = "All Regions"

// ContentFilter selects a subset of content items. Zero-valued predicates
// match everything; all active predicates are conjunctive.
type ContentFilter struct {
	Type     ContentType
	Category string
	Status   ContentStatus
	Region   string
	Search   string
}

// WorkshopFilter selects a subset of workshops.
type WorkshopFilter struct {
	Type   WorkshopType
	Status WorkshopStatus
	Search string
}

// CollaborationFilter selects a subset of collaboration submissions.
type CollaborationFilter struct {
	Status CollaborationStatus
	Search string
}

// FilterContent returns the items satisfying every active predicate. The
// region predicate applies to PolicyBelief regions and PositionalStatement
// country focus alike.
func FilterContent(items []ContentItem, filter ContentFilter) []ContentItem {
	out := []ContentItem{}
	for _, item := range items {
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if !matchRegion(item, filter.Region) {
			continue
		}
		if !matchContentSearch(item, filter.Search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterWorkshops returns the workshops satisfying every active predicate.
func FilterWorkshops(items []Workshop, filter WorkshopFilter) []Workshop {
	out := []Workshop{}
	for _, w := range items {
		if filter.Type != "" && w.Type != filter.Type {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !containsFold(filter.Search, w.Title, w.Description, w.Instructor, w.Location) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// FilterCollaborations returns the submissions satisfying every active
// predicate. Search covers title, description, institution, lead and the
// skills list.
func FilterCollaborations(items []CollaborationSubmission, filter CollaborationFilter) []CollaborationSubmission {
	out := []CollaborationSubmission{}
	for _, c := range items {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			if !containsFold(filter.Search, c.ProjectTitle, c.ProjectDescription, c.Institution, c.ProjectLead) &&
				!listContainsFold(c.SkillsNeeded, filter.Search) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func matchRegion(item ContentItem, region string) bool {
	if region == "" || region == AllRegions {
		return true
	}
	var scope []string
	switch item.Type {
	case TypePolicyBelief:
		scope = item.Region
	case TypePositionalStatement:
		scope = item.CountryFocus
	}
	for _, r := range scope {
		if r == region || r == AllRegions {
			return true
		}
	}
	return false
}

func matchContentSearch(item ContentItem, term string) bool {
	if term == "" {
		return true
	}
	if containsFold(term, item.Title, item.Summary) {
		return true
	}
	return listContainsFold(item.Tags, term)
}

// containsFold reports whether any of the candidates contains term,
// case-insensitively.
func containsFold(term string, candidates ...string) bool {
	needle := strings.ToLower(term)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}

func listContainsFold(list []string, term string) bool {
	needle := strings.ToLower(term)
	for _, entry := range list {
		if strings.Contains(strings.ToLower(entry), needle) {
			return true
		}
	}
	return false
}
