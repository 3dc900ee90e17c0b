package server

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
	"github.com/LauJosefsen/mysql-admin-web/internal/monitor"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Instances []string
	}{Instances: s.instanceNames()}

	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}

// instancePage is the template payload for one snapshot.
type instancePage struct {
	Instance string
	TakenAt  time.Time
	Sessions []domain.EnrichedSession
	Err      string
}

func (s *Server) handleInstance(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	backend, ok := s.backends[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	page := instancePage{Instance: name, TakenAt: time.Now()}
	sessions, err := monitor.SnapshotView(r.Context(), backend)
	if err != nil {
		// The page still renders so the operator sees what failed.
		s.logger.Error("snapshot", zap.String("instance", name), zap.Error(err))
		page.Err = err.Error()
	}
	page.Sessions = sessions

	if err := s.tmpl.ExecuteTemplate(w, "instance.html", page); err != nil {
		s.logger.Error("render instance", zap.String("instance", name), zap.Error(err))
	}
}

type sessionsResponse struct {
	Instance string                   `json:"instance"`
	TakenAt  string                   `json:"taken_at"`
	Sessions []domain.EnrichedSession `json:"sessions"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	backend, ok := s.backends[name]
	if !ok {
		writeError(w, http.StatusNotFound, "INSTANCE_NOT_FOUND", "no such instance: "+name)
		return
	}

	sessions, err := monitor.SnapshotView(r.Context(), backend)
	if err != nil {
		s.logger.Error("snapshot", zap.String("instance", name), zap.Error(err))
		writeError(w, http.StatusBadGateway, "SNAPSHOT_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionsResponse{
		Instance: name,
		TakenAt:  time.Now().UTC().Format(time.RFC3339),
		Sessions: sessions,
	})
}

type killResponse struct {
	Instance  string `json:"instance"`
	SessionID int64  `json:"session_id"`
	OK        bool   `json:"ok"`
}

func (s *Server) handleKill(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	backend, ok := s.backends[name]
	if !ok {
		writeError(w, http.StatusNotFound, "INSTANCE_NOT_FOUND", "no such instance: "+name)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be an integer")
		return
	}

	if err := backend.Kill(r.Context(), id); err != nil {
		s.logger.Error("kill", zap.String("instance", name), zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusBadGateway, "KILL_FAILED", err.Error())
		return
	}

	s.logger.Info("session killed", zap.String("instance", name), zap.Int64("id", id))
	writeJSON(w, http.StatusOK, killResponse{Instance: name, SessionID: id, OK: true})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
