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

func (s *Server) listCollaborations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	out := []map[string]any{}
	for _, id := range s.collabOrder {
		record, ok := s.collaborations[id]
		if !ok {
			continue
		}
		if v := q.Get("status"); v != "" && recString(record, "status") != v {
			continue
		}
		if v := q.Get("search"); v != "" && !recMatches(record, v, "project_title", "project_description", "institution", "project_lead") {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	render.JSON(w, r, out)
}

func (s *Server) getCollaboration(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collaborations[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "collaboration not found")
		return
	}
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) createCollaboration(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if recString(record, "project_title") == "" {
		writeError(w, r, http.StatusBadRequest, "project_title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record["submitted_at"] = s.now().UTC().Format(time.RFC3339)
	if recString(record, "status") == "" {
		record["status"] = "Pending"
	}

	id := s.assignID(record)
	s.collaborations[id] = record
	s.collabOrder = append(s.collabOrder, id)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) patchCollaboration(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collaborations[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "collaboration not found")
		return
	}
	for key, value := range patch {
		record[key] = value
	}
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) deleteCollaboration(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r)
	if _, ok := s.collaborations[id]; !ok {
		writeError(w, r, http.StatusNotFound, "collaboration not found")
		return
	}
	delete(s.collaborations, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateCollaborationStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, r, http.StatusBadRequest, "status is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collaborations[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "collaboration not found")
		return
	}
	record["status"] = body.Status
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) exportCollaborations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	subs := make([]policycontent.CollaborationSubmission, 0, len(s.collabOrder))
	for _, id := range s.collabOrder {
		if record, ok := s.collaborations[id]; ok {
			subs = append(subs, policycontent.NormalizeCollaboration(record))
		}
	}
	s.mu.Unlock()

	writeExport(w, r, r.URL.Query().Get("format"), "collaborations",
		func(buf *bytes.Buffer) error { return export.WriteCollaborationsCSV(buf, subs) },
		func(buf *bytes.Buffer) error { return export.WriteCollaborationsXLSX(buf, subs) },
	)
}
