// Package export writes content, workshop and collaboration collections to
// CSV and XLSX files, mirroring the backend's export endpoints for local use.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/medassn/policy-content/pkg/policycontent"
)

const listSeparator = "; "

type contentRow struct {
	ID        int64  `csv:"id"`
	Type      string `csv:"type"`
	Title     string `csv:"title"`
	Category  string `csv:"category"`
	Status    string `csv:"status"`
	Tags      string `csv:"tags"`
	Views     int    `csv:"views"`
	Downloads int    `csv:"downloads"`
}

type workshopRow struct {
	ID         int64  `csv:"id"`
	Title      string `csv:"title"`
	Instructor string `csv:"instructor"`
	Date       string `csv:"date"`
	Time       string `csv:"time"`
	Location   string `csv:"location"`
	Type       string `csv:"type"`
	Status     string `csv:"status"`
	Capacity   int    `csv:"capacity"`
	Registered int    `csv:"registered"`
}

type collaborationRow struct {
	ID           int64  `csv:"id"`
	ProjectTitle string `csv:"project_title"`
	Institution  string `csv:"institution"`
	ProjectLead  string `csv:"project_lead"`
	ContactEmail string `csv:"contact_email"`
	Status       string `csv:"status"`
}

// WriteContentCSV writes content items as CSV.
func WriteContentCSV(w io.Writer, items []policycontent.ContentItem) error {
	rows := make([]contentRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, contentRow{
			ID:        item.ID,
			Type:      string(item.Type),
			Title:     item.Title,
			Category:  item.Category,
			Status:    string(item.Status),
			Tags:      strings.Join(item.Tags, listSeparator),
			Views:     item.ViewCount,
			Downloads: item.DownloadCount,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// WriteWorkshopsCSV writes workshops as CSV.
func WriteWorkshopsCSV(w io.Writer, workshops []policycontent.Workshop) error {
	rows := make([]workshopRow, 0, len(workshops))
	for _, ws := range workshops {
		rows = append(rows, workshopRow{
			ID:         ws.ID,
			Title:      ws.Title,
			Instructor: ws.Instructor,
			Date:       ws.Date,
			Time:       ws.Time,
			Location:   ws.Location,
			Type:       string(ws.Type),
			Status:     string(ws.Status),
			Capacity:   ws.Capacity,
			Registered: ws.Registered,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// WriteCollaborationsCSV writes collaboration submissions as CSV.
func WriteCollaborationsCSV(w io.Writer, subs []policycontent.CollaborationSubmission) error {
	rows := make([]collaborationRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, collaborationRow{
			ID:           sub.ID,
			ProjectTitle: sub.ProjectTitle,
			Institution:  sub.Institution,
			ProjectLead:  sub.ProjectLead,
			ContactEmail: sub.ContactEmail,
			Status:       string(sub.Status),
		})
	}
	return gocsv.Marshal(&rows, w)
}

// WriteContentXLSX writes content items as an XLSX workbook with a single
// "Content" sheet.
func WriteContentXLSX(w io.Writer, items []policycontent.ContentItem) error {
	header := []any{"ID", "Type", "Title", "Category", "Status", "Tags", "Views", "Downloads"}
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{
			item.ID, string(item.Type), item.Title, item.Category, string(item.Status),
			strings.Join(item.Tags, listSeparator), item.ViewCount, item.DownloadCount,
		})
	}
	return writeSheet(w, "Content", header, rows)
}

// WriteWorkshopsXLSX writes workshops as an XLSX workbook with a single
// "Workshops" sheet.
func WriteWorkshopsXLSX(w io.Writer, workshops []policycontent.Workshop) error {
	header := []any{"ID", "Title", "Instructor", "Date", "Time", "Location", "Type", "Status", "Capacity", "Registered"}
	rows := make([][]any, 0, len(workshops))
	for _, ws := range workshops {
		rows = append(rows, []any{
			ws.ID, ws.Title, ws.Instructor, ws.Date, ws.Time, ws.Location,
			string(ws.Type), string(ws.Status), ws.Capacity, ws.Registered,
		})
	}
	return writeSheet(w, "Workshops", header, rows)
}

// WriteCollaborationsXLSX writes submissions as an XLSX workbook with a
// single "Collaborations" sheet.
func WriteCollaborationsXLSX(w io.Writer, subs []policycontent.CollaborationSubmission) error {
	header := []any{"ID", "Project Title", "Institution", "Project Lead", "Contact Email", "Status"}
	rows := make([][]any, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, []any{
			sub.ID, sub.ProjectTitle, sub.Institution, sub.ProjectLead, sub.ContactEmail, string(sub.Status),
		})
	}
	return writeSheet(w, "Collaborations", header, rows)
}

func writeSheet(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
