package http

import (
	"net/http"

	"github.com/aretw0/pictograph"
	"github.com/go-chi/chi/v5"
)

// ListDocuments handles the GET /documents request.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.fail(w, r, pictograph.ErrNoStore)
		return
	}
	names, err := s.docs.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// SaveDocument handles the PUT /documents/{name} request, storing the current graph.
func (s *Server) SaveDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.fail(w, r, pictograph.ErrNoStore)
		return
	}
	name := chi.URLParam(r, "name")

	doc := s.Engine.Snapshot()
	if err := s.docs.Save(r.Context(), name, doc); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("document saved", "document", name, "nodes", len(doc.Nodes))
	s.writeJSON(w, http.StatusOK, doc)
}

// OpenDocument handles the POST /documents/{name}/open request, replacing the graph.
func (s *Server) OpenDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.fail(w, r, pictograph.ErrNoStore)
		return
	}
	doc, err := s.docs.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.Engine.Load(doc); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Nodes())
}

// DeleteDocument handles the DELETE /documents/{name} request.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.fail(w, r, pictograph.ErrNoStore)
		return
	}
	if err := s.docs.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
