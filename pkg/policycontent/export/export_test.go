package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medassn/policy-content/pkg/policycontent"
)

func contentFixtures() []policycontent.ContentItem {
	return []policycontent.ContentItem{
		{
			ID:        1,
			Type:      policycontent.TypePolicyBelief,
			Title:     "Medication access",
			Category:  "Advocacy",
			Status:    policycontent.ContentStatusPublished,
			Tags:      []string{"medication", "access"},
			ViewCount: 42,
		},
		{
			ID:            2,
			Type:          policycontent.TypePositionalStatement,
			Title:         "Telemedicine position",
			Category:      "Research",
			Status:        policycontent.ContentStatusDraft,
			DownloadCount: 7,
		},
	}
}

func TestWriteContentCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteContentCSV(buf, contentFixtures()))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "type", "title", "category", "status", "tags", "views", "downloads"}, rows[0])
	assert.Equal(t, []string{"1", "PolicyBelief", "Medication access", "Advocacy", "Published", "medication; access", "42", "0"}, rows[1])
	assert.Equal(t, "7", rows[2][7])
}

func TestWriteContentCSVEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteContentCSV(buf, nil))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteWorkshopsCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	workshops := []policycontent.Workshop{
		{
			ID:         3,
			Title:      "EEG basics",
			Instructor: "Dr. Mwangi",
			Date:       "2026-10-01",
			Time:       "10:00",
			Location:   "Nairobi",
			Type:       policycontent.WorkshopTypeInPerson,
			Status:     policycontent.WorkshopStatusRegistrationOpen,
			Capacity:   40,
			Registered: 12,
		},
	}
	require.NoError(t, WriteWorkshopsCSV(buf, workshops))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EEG basics", rows[1][1])
	assert.Equal(t, "In-Person", rows[1][6])
	assert.Equal(t, "Registration Open", rows[1][7])
}

func TestWriteCollaborationsCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	subs := []policycontent.CollaborationSubmission{
		{
			ID:           5,
			ProjectTitle: "Seizure registry",
			Institution:  "Teaching Hospital",
			ProjectLead:  "A. Okafor",
			ContactEmail: "a.okafor@example.org",
			Status:       policycontent.CollaborationStatusPending,
		},
	}
	require.NoError(t, WriteCollaborationsCSV(buf, subs))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"5", "Seizure registry", "Teaching Hospital", "A. Okafor", "a.okafor@example.org", "Pending"}, rows[1])
}

func TestWriteContentXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteContentXLSX(buf, contentFixtures()))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Content"}, f.GetSheetList(), "default sheet is replaced")

	rows, err := f.GetRows("Content")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Type", "Title", "Category", "Status", "Tags", "Views", "Downloads"}, rows[0])
	assert.Equal(t, "Medication access", rows[1][2])
	assert.Equal(t, "42", rows[1][6])
}

func TestWriteWorkshopsXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	workshops := []policycontent.Workshop{
		{ID: 1, Title: "EEG basics", Type: policycontent.WorkshopTypeOnline, Capacity: 25},
	}
	require.NoError(t, WriteWorkshopsXLSX(buf, workshops))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Workshops")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EEG basics", rows[1][1])
}

func TestWriteCollaborationsXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	subs := []policycontent.CollaborationSubmission{
		{ID: 1, ProjectTitle: "Registry", Status: policycontent.CollaborationStatusApproved},
	}
	require.NoError(t, WriteCollaborationsXLSX(buf, subs))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Collaborations")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Approved", rows[1][5])
}
