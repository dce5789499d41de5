package policycontent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// ImageFile is a file attachment for a content or workshop image upload.
type ImageFile struct {
	Name   string
	Reader io.Reader
}

// ContentInput is the client-side input for creating a content item. The
// variant field groups mirror ContentItem; only the group selected by Type is
// serialized.
type ContentInput struct {
	Type     ContentType   `json:"type" validate:"required"`
	Title    string        `json:"title" validate:"required"`
	Category string        `json:"category" validate:"required"`
	Summary  string        `json:"summary" validate:"required"`
	Status   ContentStatus `json:"status"`
	Tags     []string      `json:"tags"`
	ImageURL string        `json:"imageUrl"`
	Image    *ImageFile    `json:"-"`

	// PolicyBelief fields
	Priority           Priority `json:"priority"`
	TargetAudience     []string `json:"targetAudience"`
	KeyRecommendations []string `json:"keyRecommendations"`
	Region             []string `json:"region"`

	// PositionalStatement fields
	KeyPoints       []string `json:"keyPoints"`
	PageCount       int      `json:"pageCount"`
	CountryFocus    []string `json:"countryFocus"`
	RelatedPolicies []string `json:"relatedPolicies"`
}

// ContentPatch is a partial update for a content item. Nil fields are not
// serialized at all, so an omitted field can never overwrite server state.
type ContentPatch struct {
	Title    *string        `json:"title,omitempty"`
	Category *string        `json:"category,omitempty"`
	Summary  *string        `json:"summary,omitempty"`
	Status   *ContentStatus `json:"status,omitempty"`
	Tags     *[]string      `json:"tags,omitempty"`
	ImageURL *string        `json:"imageUrl,omitempty"`
	Image    *ImageFile     `json:"-"`

	Priority           *Priority `json:"priority,omitempty"`
	TargetAudience     *[]string `json:"targetAudience,omitempty"`
	KeyRecommendations *[]string `json:"keyRecommendations,omitempty"`
	Region             *[]string `json:"region,omitempty"`

	KeyPoints       *[]string `json:"keyPoints,omitempty"`
	PageCount       *int      `json:"pageCount,omitempty"`
	CountryFocus    *[]string `json:"countryFocus,omitempty"`
	RelatedPolicies *[]string `json:"relatedPolicies,omitempty"`
}

// WorkshopInput is the client-side input for creating a workshop.
type WorkshopInput struct {
	Title         string         `json:"title" validate:"required"`
	Instructor    string         `json:"instructor" validate:"required"`
	Date          string         `json:"date" validate:"required"`
	Time          string         `json:"time" validate:"required"`
	Duration      string         `json:"duration"`
	Location      string         `json:"location" validate:"required"`
	Venue         string         `json:"venue"`
	Type          WorkshopType   `json:"type"`
	Status        WorkshopStatus `json:"status"`
	Description   string         `json:"description" validate:"required"`
	ImageURL      string         `json:"imageUrl"`
	Capacity      int            `json:"capacity" validate:"min=1"`
	Price         float64        `json:"price"`
	Prerequisites []string       `json:"prerequisites"`
	Materials     []string       `json:"materials"`
}

// WorkshopPatch is a partial update for a workshop.
type WorkshopPatch struct {
	Title         *string         `json:"title,omitempty"`
	Instructor    *string         `json:"instructor,omitempty"`
	Date          *string         `json:"date,omitempty"`
	Time          *string         `json:"time,omitempty"`
	Duration      *string         `json:"duration,omitempty"`
	Location      *string         `json:"location,omitempty"`
	Venue         *string         `json:"venue,omitempty"`
	Type          *WorkshopType   `json:"type,omitempty"`
	Status        *WorkshopStatus `json:"status,omitempty"`
	Description   *string         `json:"description,omitempty"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	Capacity      *int            `json:"capacity,omitempty"`
	Price         *float64        `json:"price,omitempty"`
	Prerequisites *[]string       `json:"prerequisites,omitempty"`
	Materials     *[]string       `json:"materials,omitempty"`
}

// CollaborationInput is the client-side input for submitting a collaboration
// request.
type CollaborationInput struct {
	ProjectTitle       string   `json:"projectTitle" validate:"required"`
	ProjectDescription string   `json:"projectDescription" validate:"required"`
	Institution        string   `json:"institution" validate:"required"`
	ProjectLead        string   `json:"projectLead" validate:"required"`
	ContactEmail       string   `json:"contactEmail" validate:"required,email"`
	SkillsNeeded       []string `json:"skillsNeeded"`
	CommitmentLevel    string   `json:"commitmentLevel"`
	Duration           string   `json:"duration"`
	AdditionalNotes    string   `json:"additionalNotes"`
}

// CollaborationPatch is a partial update for a collaboration submission.
type CollaborationPatch struct {
	ProjectTitle       *string              `json:"projectTitle,omitempty"`
	ProjectDescription *string              `json:"projectDescription,omitempty"`
	Institution        *string              `json:"institution,omitempty"`
	ProjectLead        *string              `json:"projectLead,omitempty"`
	ContactEmail       *string              `json:"contactEmail,omitempty"`
	SkillsNeeded       *[]string            `json:"skillsNeeded,omitempty"`
	CommitmentLevel    *string              `json:"commitmentLevel,omitempty"`
	Duration           *string              `json:"duration,omitempty"`
	AdditionalNotes    *string              `json:"additionalNotes,omitempty"`
	Status             *CollaborationStatus `json:"status,omitempty"`
}

// EncodeContentCreate serializes a full content create into a multipart form.
// List fields are written as JSON-encoded strings inside their parts, which is
// what the backend expects. The type discriminant is always emitted. An
// attached image file is written under "image"; a retained URL under
// "image_url"; both at once is an error.
func EncodeContentCreate(input ContentInput) (*bytes.Buffer, string, error) {
	if input.Image != nil && input.ImageURL != "" {
		return nil, "", ErrConflictingImageState
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := map[string]string{
		"type":     string(input.Type),
		"title":    input.Title,
		"category": input.Category,
		"summary":  input.Summary,
		"status":   string(input.Status),
	}
	if err := writeListField(fields, "tags", input.Tags); err != nil {
		return nil, "", err
	}

	switch input.Type {
	case TypePolicyBelief:
		fields["priority"] = string(input.Priority)
		for name, list := range map[string][]string{
			"target_audience":     input.TargetAudience,
			"key_recommendations": input.KeyRecommendations,
			"region":              input.Region,
		} {
			if err := writeListField(fields, name, list); err != nil {
				return nil, "", err
			}
		}
	case TypePositionalStatement:
		fields["page_count"] = strconv.Itoa(input.PageCount)
		for name, list := range map[string][]string{
			"key_points":       input.KeyPoints,
			"country_focus":    input.CountryFocus,
			"related_policies": input.RelatedPolicies,
		} {
			if err := writeListField(fields, name, list); err != nil {
				return nil, "", err
			}
		}
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidContentType, input.Type)
	}

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := writeImage(mw, input.Image, input.ImageURL); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}

// EncodeContentPatch serializes a partial content update into a multipart
// form containing only the fields set on the patch, plus the discriminant so
// the server can select the concrete shape.
func EncodeContentPatch(typ ContentType, patch ContentPatch) (*bytes.Buffer, string, error) {
	if !typ.IsValid() {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidContentType, typ)
	}
	if patch.Image != nil && patch.ImageURL != nil && *patch.ImageURL != "" {
		return nil, "", ErrConflictingImageState
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := map[string]string{"type": string(typ)}
	setString := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	setList := func(name string, v *[]string) error {
		if v == nil {
			return nil
		}
		return writeListField(fields, name, *v)
	}

	setString("title", patch.Title)
	setString("category", patch.Category)
	setString("summary", patch.Summary)
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}
	if err := setList("tags", patch.Tags); err != nil {
		return nil, "", err
	}

	if patch.Priority != nil {
		fields["priority"] = string(*patch.Priority)
	}
	if patch.PageCount != nil {
		fields["page_count"] = strconv.Itoa(*patch.PageCount)
	}
	for name, list := range map[string]*[]string{
		"target_audience":     patch.TargetAudience,
		"key_recommendations": patch.KeyRecommendations,
		"region":              patch.Region,
		"key_points":          patch.KeyPoints,
		"country_focus":       patch.CountryFocus,
		"related_policies":    patch.RelatedPolicies,
	} {
		if err := setList(name, list); err != nil {
			return nil, "", err
		}
	}

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if patch.Image != nil {
		if err := writeImage(mw, patch.Image, ""); err != nil {
			return nil, "", err
		}
	} else if patch.ImageURL != nil {
		if err := mw.WriteField("image_url", *patch.ImageURL); err != nil {
			return nil, "", fmt.Errorf("write field image_url: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}

// WirePayload converts a workshop create into the backend's snake_case JSON
// shape.
func (in WorkshopInput) WirePayload() map[string]any {
	payload := map[string]any{
		"title":         in.Title,
		"instructor":    in.Instructor,
		"date":          in.Date,
		"time":          in.Time,
		"duration":      in.Duration,
		"location":      in.Location,
		"type":          string(in.Type),
		"status":        string(in.Status),
		"description":   in.Description,
		"capacity":      in.Capacity,
		"prerequisites": emptyIfNil(in.Prerequisites),
		"materials":     emptyIfNil(in.Materials),
	}
	if in.Venue != "" {
		payload["venue"] = in.Venue
	}
	if in.ImageURL != "" {
		payload["image_url"] = in.ImageURL
	}
	if in.Price != 0 {
		payload["price"] = in.Price
	}
	return payload
}

// WirePayload converts a workshop patch into the backend's snake_case JSON
// shape, emitting only the fields explicitly set.
func (p WorkshopPatch) WirePayload() map[string]any {
	payload := map[string]any{}
	put := func(name string, v any, set bool) {
		if set {
			payload[name] = v
		}
	}
	put("title", deref(p.Title), p.Title != nil)
	put("instructor", deref(p.Instructor), p.Instructor != nil)
	put("date", deref(p.Date), p.Date != nil)
	put("time", deref(p.Time), p.Time != nil)
	put("duration", deref(p.Duration), p.Duration != nil)
	put("location", deref(p.Location), p.Location != nil)
	put("venue", deref(p.Venue), p.Venue != nil)
	if p.Type != nil {
		payload["type"] = string(*p.Type)
	}
	if p.Status != nil {
		payload["status"] = string(*p.Status)
	}
	put("description", deref(p.Description), p.Description != nil)
	if p.ImageURL != nil {
		payload["image_url"] = *p.ImageURL
	}
	if p.Capacity != nil {
		payload["capacity"] = *p.Capacity
	}
	if p.Price != nil {
		payload["price"] = *p.Price
	}
	if p.Prerequisites != nil {
		payload["prerequisites"] = *p.Prerequisites
	}
	if p.Materials != nil {
		payload["materials"] = *p.Materials
	}
	return payload
}

// WirePayload converts a collaboration submission into the backend's
// snake_case JSON shape.
func (in CollaborationInput) WirePayload() map[string]any {
	payload := map[string]any{
		"project_title":       in.ProjectTitle,
		"project_description": in.ProjectDescription,
		"institution":         in.Institution,
		"project_lead":        in.ProjectLead,
		"contact_email":       in.ContactEmail,
		"skills_needed":       emptyIfNil(in.SkillsNeeded),
		"commitment_level":    in.CommitmentLevel,
		"duration":            in.Duration,
	}
	if in.AdditionalNotes != "" {
		payload["additional_notes"] = in.AdditionalNotes
	}
	return payload
}

// WirePayload converts a collaboration patch into the backend's snake_case
// JSON shape, emitting only the fields explicitly set.
func (p CollaborationPatch) WirePayload() map[string]any {
	payload := map[string]any{}
	put := func(name string, v *string) {
		if v != nil {
			payload[name] = *v
		}
	}
	put("project_title", p.ProjectTitle)
	put("project_description", p.ProjectDescription)
	put("institution", p.Institution)
	put("project_lead", p.ProjectLead)
	put("contact_email", p.ContactEmail)
	put("commitment_level", p.CommitmentLevel)
	put("duration", p.Duration)
	put("additional_notes", p.AdditionalNotes)
	if p.SkillsNeeded != nil {
		payload["skills_needed"] = *p.SkillsNeeded
	}
	if p.Status != nil {
		payload["status"] = string(*p.Status)
	}
	return payload
}

func writeListField(fields map[string]string, name string, list []string) error {
	encoded, err := json.Marshal(emptyIfNil(list))
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	fields[name] = string(encoded)
	return nil
}

func writeImage(mw *multipart.Writer, image *ImageFile, imageURL string) error {
	if image != nil {
		part, err := mw.CreateFormFile("image", image.Name)
		if err != nil {
			return fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return fmt.Errorf("copy image data: %w", err)
		}
		return nil
	}
	if imageURL != "" {
		if err := mw.WriteField("image_url", imageURL); err != nil {
			return fmt.Errorf("write field image_url: %w", err)
		}
	}
	return nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
