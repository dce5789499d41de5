package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassn/policy-content/pkg/policycontent"
	"github.com/medassn/policy-content/pkg/policycontent/client"
)

func TestCreateCollaboration(t *testing.T) {
	_, c := newTestServer(t)

	input := policycontent.CollaborationInput{
		ProjectTitle:       "Seizure registry",
		ProjectDescription: "National registry for seizure disorders.",
		Institution:        "Teaching Hospital",
		ProjectLead:        "A. Okafor",
		ContactEmail:       "a.okafor@example.org",
		SkillsNeeded:       []string{"Biostatistics"},
	}

	created, err := c.CreateCollaboration(context.Background(), input)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, policycontent.CollaborationStatusPending, created.Status, "submissions start in moderation")
	assert.False(t, created.SubmittedAt.IsZero())
	assert.Equal(t, []string{"Biostatistics"}, created.SkillsNeeded)
}

func TestCreateCollaborationValidation(t *testing.T) {
	_, c := newTestServer(t)

	input := policycontent.CollaborationInput{
		ProjectTitle:       "Seizure registry",
		ProjectDescription: "National registry.",
		Institution:        "Teaching Hospital",
		ProjectLead:        "A. Okafor",
		ContactEmail:       "not-an-email",
	}

	_, err := c.CreateCollaboration(context.Background(), input)
	var valErr *client.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Result.Errors, "contactEmail")
}

func TestUpdateCollaborationStatus(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedCollaboration(map[string]any{"project_title": "Registry", "status": "Pending"})

	sub, err := c.UpdateCollaborationStatus(context.Background(), id, policycontent.CollaborationStatusNeedsInfo)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, policycontent.CollaborationStatusNeedsInfo, sub.Status)

	_, err = c.UpdateCollaborationStatus(context.Background(), id, "Escalated")
	assert.ErrorIs(t, err, policycontent.ErrInvalidStatus)
}

func TestUpdateCollaborationPartialPatch(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedCollaboration(map[string]any{
		"project_title": "Registry",
		"project_lead":  "A. Okafor",
		"status":        "Pending",
	})

	lead := "B. Tadesse"
	updated, err := c.UpdateCollaboration(context.Background(), id, policycontent.CollaborationPatch{ProjectLead: &lead})
	require.NoError(t, err)
	assert.Equal(t, "B. Tadesse", updated.ProjectLead)
	assert.Equal(t, "Registry", updated.ProjectTitle)
}

func TestDeleteCollaboration(t *testing.T) {
	api, c := newTestServer(t)
	id := api.SeedCollaboration(map[string]any{"project_title": "Registry"})

	require.NoError(t, c.DeleteCollaboration(context.Background(), id))

	_, err := c.GetCollaboration(context.Background(), id)
	assert.ErrorIs(t, err, policycontent.ErrCollaborationNotFound)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}
