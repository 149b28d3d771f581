package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/plotsample/plotsample/pkg/geom"
	"github.com/plotsample/plotsample/pkg/sample"
)

// =============================================================================
// Wire types
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
}

type randomRunRequest struct {
	// Samples is the requested count per region; ByArea switches to
	// area-proportional allocation.
	Samples int  `json:"samples"`
	ByArea  bool `json:"by_area"`
}

type pointPayload struct {
	Label  string  `json:"label"`
	Order  int     `json:"order"`
	Region string  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type shortfallPayload struct {
	Region    string `json:"region"`
	Requested int    `json:"requested"`
	Generated int    `json:"generated"`
	Attempts  int    `json:"attempts"`
}

type runResponse struct {
	ID         string             `json:"id"`
	Points     []pointPayload     `json:"points"`
	Attempts   int                `json:"attempts,omitempty"`
	Shortfalls []shortfallPayload `json:"shortfalls,omitempty"`
}

type gridRunRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type addPointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPointPayloads(points []sample.SamplePoint) []pointPayload {
	out := make([]pointPayload, len(points))
	for i, p := range points {
		out[i] = pointPayload{
			Label:  p.Label,
			Order:  p.Order,
			Region: p.Region.String(),
			X:      p.X,
			Y:      p.Y,
		}
	}
	return out
}

func toRunResponse(result *sample.RunResult) runResponse {
	resp := runResponse{
		ID:       result.ID.String(),
		Points:   toPointPayloads(result.Points),
		Attempts: result.Attempts,
	}
	for key, sf := range result.Shortfalls {
		resp.Shortfalls = append(resp.Shortfalls, shortfallPayload{
			Region:    key.String(),
			Requested: sf.Requested,
			Generated: sf.Generated,
			Attempts:  sf.Attempts,
		})
	}
	return resp
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"state": s.engine.State().String()})
}

// handleRandomRun starts a random design and blocks until it finishes.
// The engine runs it on a background worker either way, so a concurrent
// request observes ErrRunInProgress instead of queueing.
func (s *Server) handleRandomRun(w http.ResponseWriter, r *http.Request) {
	var req randomRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Samples <= 0 {
		s.writeError(w, http.StatusBadRequest, sample.ErrInvalidTarget)
		return
	}

	targets, err := s.engine.AllocateCounts(req.Samples, req.ByArea)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	run, err := s.engine.StartRandomRun(r.Context(), targets)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	result, err := run.Wait()
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	s.logger.Info("random run complete", "id", result.ID, "points", len(result.Points))
	s.writeJSON(w, http.StatusCreated, toRunResponse(result))
}

// handleGridRun generates the lattice, applies the requested shift, and
// finalizes in one step.
func (s *Server) handleGridRun(w http.ResponseWriter, r *http.Request) {
	var req gridRunRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if _, err := s.engine.GenerateGrid(s.config.Grid); err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	if req.DX != 0 || req.DY != 0 {
		if err := s.engine.TranslateGrid(req.DX, req.DY); err != nil {
			s.writeError(w, statusForError(err), err)
			return
		}
	}
	result, err := s.engine.FinalizeGrid()
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	s.logger.Info("grid run complete", "id", result.ID, "points", len(result.Points))
	s.writeJSON(w, http.StatusCreated, toRunResponse(result))
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.engine.ExportSnapshot()
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPointPayloads(points))
}

func (s *Server) handleAddPoint(w http.ResponseWriter, r *http.Request) {
	var req addPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	added, err := s.engine.AddManual(geom.Point{X: req.X, Y: req.Y})
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPointPayloads([]sample.SamplePoint{added})[0])
}

func (s *Server) handleRemovePoint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y query parameters are required", http.StatusBadRequest)
		return
	}
	tolerance := 0.0
	if t := q.Get("tolerance"); t != "" {
		var err error
		if tolerance, err = strconv.ParseFloat(t, 64); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	removed, ok, err := s.engine.RemoveNearest(geom.Point{X: x, Y: y}, tolerance)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no point within tolerance"})
		return
	}
	s.writeJSON(w, http.StatusOK, toPointPayloads([]sample.SamplePoint{removed})[0])
}

// handleReset discards the current run and restores the configured state,
// so the next run does not need a reconfiguration round trip.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.engine.Reset()
	if err := s.engine.Configure(s.config.Regions, s.config.Exclusions, s.config.Constraints); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
