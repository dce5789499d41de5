package policycontent

import (
	"fmt"
	"time"
)

// ContentType is the discriminant for the two content variants.
type ContentType string

// Content type constants (typed).
const (
	TypePolicyBelief        ContentType = "PolicyBelief"
	TypePositionalStatement ContentType = "PositionalStatement"
)

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusPublished ContentStatus = "Published"
	ContentStatusDraft     ContentStatus = "Draft"
	ContentStatusArchived  ContentStatus = "Archived"
)

// Priority is the advocacy priority of a policy belief.
type Priority string

// Priority constants (typed).
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// WorkshopType is the delivery mode of a workshop.
type WorkshopType string

// Workshop type constants (typed).
const (
	WorkshopTypeOnline   WorkshopType = "Online"
	WorkshopTypeInPerson WorkshopType = "In-Person"
	WorkshopTypeHybrid   WorkshopType = "Hybrid"
)

// WorkshopStatus is the domain type for workshop lifecycle states.
type WorkshopStatus string

// Workshop status constants (typed).
const (
	WorkshopStatusPlanning         WorkshopStatus = "Planning"
	WorkshopStatusRegistrationOpen WorkshopStatus = "Registration Open"
	WorkshopStatusInProgress       WorkshopStatus = "In Progress"
	WorkshopStatusCompleted        WorkshopStatus = "Completed"
	WorkshopStatusCancelled        WorkshopStatus = "Cancelled"
)

// CollaborationStatus is the moderation state of a collaboration submission.
type CollaborationStatus string

// Collaboration status constants (typed).
const (
	CollaborationStatusPending   CollaborationStatus = "Pending"
	CollaborationStatusApproved  CollaborationStatus = "Approved"
	CollaborationStatusRejected  CollaborationStatus = "Rejected"
	CollaborationStatusNeedsInfo CollaborationStatus = "Needs Info"
)

// ContentItem is the polymorphic content entity. Type selects which of the
// variant field groups applies; the common fields are always meaningful.
//
// Variant PolicyBelief uses Priority, TargetAudience, KeyRecommendations and
// Region. Variant PositionalStatement uses KeyPoints, PageCount, CountryFocus
// and RelatedPolicies. Code dispatching on Type must switch exhaustively over
// both variants.
type ContentItem struct {
	ID            int64         `json:"id"`
	Type          ContentType   `json:"type"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Summary       string        `json:"summary"`
	Status        ContentStatus `json:"status"`
	Tags          []string      `json:"tags"`
	ImageURL      string        `json:"imageUrl"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	ViewCount     int           `json:"viewCount"`
	DownloadCount int           `json:"downloadCount"`

	// PolicyBelief fields
	Priority           Priority `json:"priority,omitempty"`
	TargetAudience     []string `json:"targetAudience,omitempty"`
	KeyRecommendations []string `json:"keyRecommendations,omitempty"`
	Region             []string `json:"region,omitempty"`

	// PositionalStatement fields
	KeyPoints       []string `json:"keyPoints,omitempty"`
	PageCount       int      `json:"pageCount,omitempty"`
	CountryFocus    []string `json:"countryFocus,omitempty"`
	RelatedPolicies []string `json:"relatedPolicies,omitempty"`
}

// Workshop represents a scheduled training event.
type Workshop struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Instructor    string         `json:"instructor"`
	Date          string         `json:"date"`
	Time          string         `json:"time"`
	Duration      string         `json:"duration"`
	Location      string         `json:"location"`
	Venue         string         `json:"venue,omitempty"`
	Type          WorkshopType   `json:"type"`
	Status        WorkshopStatus `json:"status"`
	Description   string         `json:"description"`
	ImageURL      string         `json:"imageUrl"`
	Capacity      int            `json:"capacity"`
	Registered    int            `json:"registered"`
	Price         float64        `json:"price,omitempty"`
	Featured      bool           `json:"featured"`
	Prerequisites []string       `json:"prerequisites"`
	Materials     []string       `json:"materials"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CollaborationSubmission represents a research collaboration request
// awaiting moderation.
type CollaborationSubmission struct {
	ID                 int64               `json:"id"`
	ProjectTitle       string              `json:"projectTitle"`
	ProjectDescription string              `json:"projectDescription"`
	Institution        string              `json:"institution"`
	ProjectLead        string              `json:"projectLead"`
	ContactEmail       string              `json:"contactEmail"`
	SkillsNeeded       []string            `json:"skillsNeeded"`
	CommitmentLevel    string              `json:"commitmentLevel"`
	Duration           string              `json:"duration"`
	AdditionalNotes    string              `json:"additionalNotes,omitempty"`
	SubmittedAt        time.Time           `json:"submittedAt"`
	Status             CollaborationStatus `json:"status"`
}

// IsValid reports whether t is a known content type.
func (t ContentType) IsValid() bool {
	switch t {
	case TypePolicyBelief, TypePositionalStatement:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is a known content status.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusPublished, ContentStatusDraft, ContentStatusArchived:
		return true
	default:
		return false
	}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// IsValid reports whether t is a known workshop type.
func (t WorkshopType) IsValid() bool {
	switch t {
	case WorkshopTypeOnline, WorkshopTypeInPerson, WorkshopTypeHybrid:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is a known workshop status.
func (s WorkshopStatus) IsValid() bool {
	switch s {
	case WorkshopStatusPlanning, WorkshopStatusRegistrationOpen,
		WorkshopStatusInProgress, WorkshopStatusCompleted, WorkshopStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is a known collaboration status.
func (s CollaborationStatus) IsValid() bool {
	switch s {
	case CollaborationStatusPending, CollaborationStatusApproved,
		CollaborationStatusRejected, CollaborationStatusNeedsInfo:
		return true
	default:
		return false
	}
}

// ParseContentType converts a raw value to a ContentType. The legacy
// snake_case wire tags are accepted; anything else is an error.
func ParseContentType(s string) (ContentType, error) {
	switch s {
	case string(TypePolicyBelief), "policy_belief":
		return TypePolicyBelief, nil
	case string(TypePositionalStatement), "positional_statement":
		return TypePositionalStatement, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// ParseContentStatus converts a raw value to a ContentStatus.
func ParseContentStatus(s string) (ContentStatus, error) {
	status := ContentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ParseWorkshopStatus converts a raw value to a WorkshopStatus.
func ParseWorkshopStatus(s string) (WorkshopStatus, error) {
	status := WorkshopStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ParseCollaborationStatus converts a raw value to a CollaborationStatus.
func ParseCollaborationStatus(s string) (CollaborationStatus, error) {
	status := CollaborationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
