package policycontent

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parsedForm struct {
	values map[string]string
	files  map[string][]byte
}

func parseMultipart(t *testing.T, body *bytes.Buffer, contentType string) parsedForm {
	t.Helper()

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form := parsedForm{values: map[string]string{}, files: map[string][]byte{}}
	mr := multipart.NewReader(body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			form.files[part.FormName()] = data
		} else {
			form.values[part.FormName()] = string(data)
		}
	}
	return form
}

func decodeListPart(t *testing.T, raw string) []string {
	t.Helper()
	var list []string
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	return list
}

func TestEncodeContentCreatePolicyBelief(t *testing.T) {
	input := validPolicyBeliefInput()
	input.Status = ContentStatusPublished

	body, contentType, err := EncodeContentCreate(input)
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	assert.Equal(t, "PolicyBelief", form.values["type"])
	assert.Equal(t, input.Title, form.values["title"])
	assert.Equal(t, "Published", form.values["status"])
	assert.Equal(t, "High", form.values["priority"])
	assert.Equal(t, input.TargetAudience, decodeListPart(t, form.values["target_audience"]))
	assert.Equal(t, input.KeyRecommendations, decodeListPart(t, form.values["key_recommendations"]))
	assert.Equal(t, input.Region, decodeListPart(t, form.values["region"]))
	assert.Equal(t, input.ImageURL, form.values["image_url"])

	// Variant fields of the other shape never leak into the form.
	assert.NotContains(t, form.values, "key_points")
	assert.NotContains(t, form.values, "page_count")
}

func TestEncodeContentCreatePositionalStatement(t *testing.T) {
	input := validPositionalStatementInput()
	input.ImageURL = ""
	input.Image = &ImageFile{Name: "cover.png", Reader: strings.NewReader("png-bytes")}

	body, contentType, err := EncodeContentCreate(input)
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	assert.Equal(t, "PositionalStatement", form.values["type"])
	assert.Equal(t, "8", form.values["page_count"])
	assert.Equal(t, input.KeyPoints, decodeListPart(t, form.values["key_points"]))
	assert.Equal(t, input.CountryFocus, decodeListPart(t, form.values["country_focus"]))
	assert.Equal(t, []string{}, decodeListPart(t, form.values["related_policies"]))
	assert.Equal(t, []byte("png-bytes"), form.files["image"])
	assert.NotContains(t, form.values, "image_url")
	assert.NotContains(t, form.values, "priority")
}

func TestEncodeContentCreateConflictingImage(t *testing.T) {
	input := validPolicyBeliefInput()
	input.Image = &ImageFile{Name: "cover.png", Reader: strings.NewReader("png")}

	_, _, err := EncodeContentCreate(input)
	assert.ErrorIs(t, err, ErrConflictingImageState)
}

func TestEncodeContentCreateUnknownType(t *testing.T) {
	input := validPolicyBeliefInput()
	input.Type = "Whitepaper"

	_, _, err := EncodeContentCreate(input)
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestEncodeContentPatchOnlySetFields(t *testing.T) {
	status := ContentStatusArchived
	body, contentType, err := EncodeContentPatch(TypePolicyBelief, ContentPatch{Status: &status})
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	assert.Equal(t, map[string]string{
		"type":   "PolicyBelief",
		"status": "Archived",
	}, form.values, "an omitted field must never appear in the form")
	assert.Empty(t, form.files)
}

func TestEncodeContentPatchLists(t *testing.T) {
	tags := []string{"stigma", "awareness"}
	pages := 14
	body, contentType, err := EncodeContentPatch(TypePositionalStatement, ContentPatch{
		Tags:      &tags,
		PageCount: &pages,
	})
	require.NoError(t, err)

	form := parseMultipart(t, body, contentType)
	assert.Equal(t, tags, decodeListPart(t, form.values["tags"]))
	assert.Equal(t, "14", form.values["page_count"])
	assert.Equal(t, "PositionalStatement", form.values["type"])
	assert.Len(t, form.values, 3)
}

func TestEncodeContentPatchInvalidType(t *testing.T) {
	_, _, err := EncodeContentPatch("", ContentPatch{})
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestWorkshopInputWirePayload(t *testing.T) {
	input := WorkshopInput{
		Title:      "Ketogenic diet in practice",
		Instructor: "Dr. Sow",
		Date:       "2026-09-20",
		Time:       "09:00",
		Location:   "Dakar",
		Type:       WorkshopTypeOnline,
		Capacity:   25,
	}

	payload := input.WirePayload()

	assert.Equal(t, "Ketogenic diet in practice", payload["title"])
	assert.Equal(t, "Online", payload["type"])
	assert.Equal(t, 25, payload["capacity"])
	assert.Equal(t, []string{}, payload["prerequisites"], "nil lists serialize as empty arrays")
	assert.Equal(t, []string{}, payload["materials"])
	assert.NotContains(t, payload, "venue")
	assert.NotContains(t, payload, "price")
}

func TestWorkshopPatchWirePayload(t *testing.T) {
	status := WorkshopStatusCompleted
	registeredDate := "2026-09-21"
	payload := WorkshopPatch{Status: &status, Date: &registeredDate}.WirePayload()

	assert.Equal(t, map[string]any{
		"status": "Completed",
		"date":   "2026-09-21",
	}, payload)
}

func TestCollaborationWirePayloads(t *testing.T) {
	input := CollaborationInput{
		ProjectTitle:       "EEG tele-reading network",
		ProjectDescription: "Shared remote EEG interpretation.",
		Institution:        "Teaching Hospital",
		ProjectLead:        "B. Tadesse",
		ContactEmail:       "b.tadesse@example.org",
	}
	payload := input.WirePayload()
	assert.Equal(t, "EEG tele-reading network", payload["project_title"])
	assert.Equal(t, []string{}, payload["skills_needed"])
	assert.NotContains(t, payload, "additional_notes")

	status := CollaborationStatusApproved
	patch := CollaborationPatch{Status: &status}.WirePayload()
	assert.Equal(t, map[string]any{"status": "Approved"}, patch)
}
