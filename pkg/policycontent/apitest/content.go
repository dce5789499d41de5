package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxUploadBytes = 32 << 20

// contentListFields are the multipart parts carrying JSON-encoded lists.
var contentListFields = map[string]bool{
	"tags":                true,
	"target_audience":     true,
	"key_recommendations": true,
	"region":              true,
	"key_points":          true,
	"country_focus":       true,
	"related_policies":    true,
}

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	out := []map[string]any{}
	for _, id := range s.contentOrder {
		record, ok := s.content[id]
		if !ok {
			continue
		}
		if v := q.Get("status"); v != "" && recString(record, "status") != v {
			continue
		}
		if v := q.Get("category"); v != "" && recString(record, "category") != v {
			continue
		}
		if v := q.Get("type"); v != "" && recString(record, "type", "content_type") != v {
			continue
		}
		if v := q.Get("search"); v != "" && !recMatches(record, v, "title", "summary") {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	render.JSON(w, r, out)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.content[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "content not found")
		return
	}
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) createContent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	record := map[string]any{}
	s.applyContentForm(record, r)

	if recString(record, "type") == "" {
		writeError(w, r, http.StatusBadRequest, "type is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC().Format(time.RFC3339)
	record["created_at"] = now
	record["updated_at"] = now
	record["view_count"] = int64(0)
	record["download_count"] = int64(0)
	if recString(record, "status") == "" {
		record["status"] = "Draft"
	}

	id := s.assignID(record)
	s.content[id] = record
	s.contentOrder = append(s.contentOrder, id)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) patchContent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.content[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "content not found")
		return
	}

	s.applyContentForm(record, r)
	record["updated_at"] = s.now().UTC().Format(time.RFC3339)
	render.JSON(w, r, cloneRecord(record))
}

// applyContentForm copies the multipart parts present in the request onto the
// record: list parts are JSON-decoded, page_count parsed, an uploaded image
// replaces image_url.
func (s *Server) applyContentForm(record map[string]any, r *http.Request) {
	for name, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch {
		case contentListFields[name]:
			var list []any
			if err := json.Unmarshal([]byte(value), &list); err != nil {
				list = []any{}
			}
			record[name] = list
		case name == "page_count":
			n, _ := strconv.ParseInt(value, 10, 64)
			record[name] = n
		default:
			record[name] = value
		}
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		record["image_url"] = "/media/content/" + files[0].Filename
	}
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r)
	if _, ok := s.content[id]; !ok {
		writeError(w, r, http.StatusNotFound, "content not found")
		return
	}
	delete(s.content, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateContentStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, r, http.StatusBadRequest, "status is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.content[pathID(r)]
	if !ok {
		writeError(w, r, http.StatusNotFound, "content not found")
		return
	}
	record["status"] = body.Status
	record["updated_at"] = s.now().UTC().Format(time.RFC3339)
	render.JSON(w, r, cloneRecord(record))
}

func (s *Server) incrementCounter(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		record, ok := s.content[pathID(r)]
		if !ok {
			writeError(w, r, http.StatusNotFound, "content not found")
			return
		}
		record[field] = recInt(record, field) + 1
		render.JSON(w, r, map[string]any{field: record[field]})
	}
}

func (s *Server) contentTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	tags := []string{}
	for _, id := range s.contentOrder {
		record, ok := s.content[id]
		if !ok {
			continue
		}
		for _, tag := range recList(record, "tags") {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	render.JSON(w, r, tags)
}

func (s *Server) contentAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := map[string]int64{}
	byCategory := map[string]int64{}
	byType := map[string]int64{}
	var total, views, downloads int64
	for _, id := range s.contentOrder {
		record, ok := s.content[id]
		if !ok {
			continue
		}
		total++
		views += recInt(record, "view_count")
		downloads += recInt(record, "download_count")
		byStatus[recString(record, "status")]++
		byCategory[recString(record, "category")]++
		byType[recString(record, "type", "content_type")]++
	}

	render.JSON(w, r, map[string]any{
		"total_items":     total,
		"total_views":     views,
		"total_downloads": downloads,
		"by_status":       byStatus,
		"by_category":     byCategory,
		"by_type":         byType,
	})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func recString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok {
			return s
		}
	}
	return ""
}

func recInt(record map[string]any, key string) int64 {
	switch n := record[key].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func recList(record map[string]any, key string) []string {
	out := []string{}
	switch list := record[key].(type) {
	case []any:
		for _, entry := range list {
			if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range list {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

func recMatches(record map[string]any, term string, keys ...string) bool {
	needle := strings.ToLower(term)
	for _, key := range keys {
		if strings.Contains(strings.ToLower(recString(record, key)), needle) {
			return true
		}
	}
	for _, tag := range recList(record, "tags") {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
