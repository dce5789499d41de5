package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/medassn/policy-content/pkg/policycontent"
	"github.com/medassn/policy-content/pkg/policycontent/export"
)

func (s *Server) listWorkshops(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	out := []map[string]any{}
	for _, id := range s.workshopOrder {
		record, ok := s.workshops[id]
		if !ok {
			continue
		}
		if v := q.Get("status"); v != "" && recString(record, "status") != v {
			continue
		}
		if v := q.Get("type"); v != "" && recString(record, "type", "workshop_type") != v {
			continue
		}
		if v := q.Get("search"); v != "" && !recMatches(record, v, "title", "description", "instructor") {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	render.JSON(w, r, out)
}

func (s *Server) getWorkshop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.workshops[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "workshop not found")
		return
	}
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) createWorkshop(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if recString(record, "title") == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC().Format(time.RFC3339)
	record["created_at"] = now
	record["updated_at"] = now
	record["registered"] = int64(0)
	if _, ok := record["featured"]; !ok {
		record["featured"] = false
	}
	if recString(record, "status") == "" {
		record["status"] = "Planning"
	}

	id := s.assignID(record)
	s.workshops[id] = record
	s.workshopOrder = append(s.workshopOrder, id)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) patchWorkshop(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.workshops[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "workshop not found")
		return
	}
	for key, value := range patch {
		record[key] = value
	}
	record["updated_at"] = s.now().UTC().Format(time.RFC3339)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) deleteWorkshop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r)
	if _, ok := s.workshops[id]; !ok {
		writeError(w, r, http.StatusNotFound, "workshop not found")
		return
	}
	delete(s.workshops, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) featuredWorkshops(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []map[string]any{}
	for _, id := range s.workshopOrder {
		record, ok := s.workshops[id]
		if !ok {
			continue
		}
		if featured, _ := record["featured"].(bool); featured {
			out = append(out, cloneRecord(record))
		}
	}
	render.JSON(w, r, out)
}

func (s *Server) upcomingWorkshops(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Format("2006-01-02")
	out := []map[string]any{}
	for _, id := range s.workshopOrder {
		record, ok := s.workshops[id]
		if !ok {
			continue
		}
		if recString(record, "date") >= today {
			out = append(out, cloneRecord(record))
		}
	}
	render.JSON(w, r, out)
}

func (s *Server) toggleWorkshopFeatured(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.workshops[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "workshop not found")
		return
	}
	featured, _ := record["featured"].(bool)
	record["featured"] = !featured
	record["updated_at"] = s.now().UTC().Format(time.RFC3339)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) updateWorkshopStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, r, http.StatusBadRequest, "status is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.workshops[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "workshop not found")
		return
	}
	record["status"] = body.Status
	record["updated_at"] = s.now().UTC().Format(time.RFC3339)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) workshopAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := map[string]int64{}
	byType := map[string]int64{}
	var total, registered, capacity int64
	for _, id := range s.workshopOrder {
		record, ok := s.workshops[id]
		if !ok {
			continue
		}
		total++
		registered += recInt(record, "registered")
		capacity += recInt(record, "capacity")
		byStatus[recString(record, "status")]++
		byType[recString(record, "type", "workshop_type")]++
	}

	render.JSON(w, r, map[string]any{
		"total_workshops":  total,
		"total_registered": registered,
		"total_capacity":   capacity,
		"by_status":        byStatus,
		"by_type":          byType,
	})
}

func (s *Server) uploadWorkshopImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		writeError(w, r, http.StatusBadRequest, "image file is required")
		return
	}
	render.JSON(w, r, map[string]string{"url": "/media/workshops/" + files[0].Filename})
}

func (s *Server) exportWorkshops(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	workshops := make([]policycontent.Workshop, 0, len(s.workshopOrder))
	for _, id := range s.workshopOrder {
		if record, ok := s.workshops[id]; ok {
			workshops = append(workshops, policycontent.NormalizeWorkshop(record))
		}
	}
	s.mu.Unlock()

	writeExport(w, r, r.URL.Query().Get("format"), "workshops",
		func(buf *bytes.Buffer) error { return export.WriteWorkshopsCSV(buf, workshops) },
		func(buf *bytes.Buffer) error { return export.WriteWorkshopsXLSX(buf, workshops) },
	)
}

func writeExport(w http.ResponseWriter, r *http.Request, format, name string, csv, xlsx func(*bytes.Buffer) error) {
	buf := &bytes.Buffer{}
	switch format {
	case "", "csv":
		if err := csv(buf); err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+name+".csv")
	case "xlsx":
		if err := xlsx(buf); err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+name+".xlsx")
	default:
		writeError(w, r, http.StatusBadRequest, "unsupported format: "+format)
		return
	}
	w.Write(buf.Bytes())
}
