package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/pictograph/internal/presentation/graph"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// CreateNodeRequest is the body of POST /nodes.
type CreateNodeRequest struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ParameterRequest is the body of PUT /nodes/{id}/parameters/{name}.
type ParameterRequest struct {
	Value any `json:"value"`
}

// ConnectRequest is the body of PUT /nodes/{id}/inputs/{key}.
type ConnectRequest struct {
	Producer string `json:"producer"`
}

// ParseNodeID accepts both "3" and "n3".
func ParseNodeID(s string) (domain.NodeID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "n"), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: invalid node id %q", domain.ErrNodeNotFound, s)
	}
	return domain.NodeID(v), nil
}

func (s *Server) nodeID(w http.ResponseWriter, r *http.Request) (domain.NodeID, bool) {
	id, err := ParseNodeID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return 0, false
	}
	return id, true
}

// replyNode writes the node snapshot; err from the preceding edit wins.
func (s *Server) replyNode(w http.ResponseWriter, r *http.Request, id domain.NodeID, status int) {
	info, err := s.Engine.Inspect(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, status, info)
}

// ListNodes handles the GET /nodes request.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Nodes())
}

// CreateNode handles the POST /nodes request.
// Initial parameters are validated before the node is created.
func (s *Server) CreateNode(w http.ResponseWriter, r *http.Request) {
	var body CreateNodeRequest
	if !s.decode(w, r, &body) {
		return
	}

	id, err := s.Engine.AddNode(body.Type)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := document.ApplyParameters(s.Engine, id, body.Parameters); err != nil {
		// Leave no half-configured node behind.
		_ = s.Engine.RemoveNode(id)
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusCreated)
}

// GetNode handles the GET /nodes/{id} request.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.nodeID(w, r); ok {
		s.replyNode(w, r, id, http.StatusOK)
	}
}

// DeleteNode handles the DELETE /nodes/{id} request.
func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	if err := s.Engine.RemoveNode(id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProcessNode handles the POST /nodes/{id}/process request.
func (s *Server) ProcessNode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	if err := s.Engine.Process(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusOK)
}

// InvalidateNode handles the POST /nodes/{id}/invalidate request.
func (s *Server) InvalidateNode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	if err := s.Engine.Invalidate(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusOK)
}

// AdjustParameter handles the PUT /nodes/{id}/parameters/{name} request.
func (s *Server) AdjustParameter(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	var body ParameterRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := document.ApplyParameters(s.Engine, id, map[string]any{chi.URLParam(r, "name"): body.Value}); err != nil {
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusOK)
}

// ConnectInput handles the PUT /nodes/{id}/inputs/{key} request.
func (s *Server) ConnectInput(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	var body ConnectRequest
	if !s.decode(w, r, &body) {
		return
	}
	producer, err := ParseNodeID(body.Producer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Engine.ConnectInput(id, chi.URLParam(r, "key"), producer); err != nil {
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusOK)
}

// DisconnectInput handles the DELETE /nodes/{id}/inputs/{key} request.
func (s *Server) DisconnectInput(w http.ResponseWriter, r *http.Request) {
	id, ok := s.nodeID(w, r)
	if !ok {
		return
	}
	if err := s.Engine.DisconnectInput(id, chi.URLParam(r, "key")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.replyNode(w, r, id, http.StatusOK)
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Snapshot())
}

// PutGraph handles the PUT /graph request, replacing the whole graph.
func (s *Server) PutGraph(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if !s.decode(w, r, &doc) {
		return
	}
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
	}
	if _, err := s.Engine.Load(&doc); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Nodes())
}

// GetMermaid handles the GET /graph/mermaid request.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request) {
	opts := graph.Options{
		ShowValues:   r.URL.Query().Get("values") != "false",
		ShowValidity: r.URL.Query().Get("validity") != "false",
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.Engine.Nodes(), opts)))
}
