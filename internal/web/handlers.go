package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"pingclock/internal/chart"
	"pingclock/internal/config"
	"pingclock/internal/models"
	"pingclock/internal/monitor"
)

// Chart size limits for query parameters
const (
	minChartSize = 100
	maxChartSize = 4000
)

type stateResponse struct {
	SessionID  string          `json:"session_id,omitempty"`
	Host       string          `json:"host"`
	IntervalMs int64           `json:"interval_ms"`
	Running    bool            `json:"running"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	LatestMs   *float64        `json:"latest_ms"`
	Level      models.Level    `json:"level"`
	Display    string          `json:"display"`
	Samples    []models.Sample `json:"samples"`
}

type startRequest struct {
	Host       string `json:"host" validate:"required,hostname_rfc1123|ip"`
	IntervalMs int64  `json:"interval_ms" validate:"gte=100,lte=86400000"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func (s *Server) stateOf(snap monitor.Snapshot) stateResponse {
	resp := stateResponse{
		Running: snap.Running,
		Level:   snap.Level(),
		Display: models.Display(snap.Latest, snap.LatestOK),
		Samples: snap.History,
	}
	if snap.Running {
		resp.SessionID = snap.SessionID
		resp.Host = snap.Host
		resp.IntervalMs = snap.Interval.Milliseconds()
		started := snap.StartedAt
		resp.StartedAt = &started
	} else {
		d := s.currentDefaults()
		resp.Host = d.Host
		resp.IntervalMs = d.Interval.Milliseconds()
	}
	if snap.LatestOK {
		ms := models.Milliseconds(snap.Latest)
		resp.LatestMs = &ms
	}
	if resp.Samples == nil {
		resp.Samples = []models.Sample{}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response failed: %v", err)
	}
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	writeJSON(w, status, errorResponse{Errors: msgs})
}

// handleState handles /api/state requests
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stateOf(s.ctl.Snapshot()))
}

// handleStart handles /api/start requests
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := config.Struct(req); err != nil {
		msgs := config.Messages(err)
		if len(msgs) == 0 {
			msgs = []string{err.Error()}
		}
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	interval := time.Duration(req.IntervalMs) * time.Millisecond
	if err := s.ctl.Start(req.Host, interval); err != nil {
		switch {
		case errors.Is(err, monitor.ErrEmptyHost), errors.Is(err, monitor.ErrInvalidInterval):
			writeErrors(w, http.StatusBadRequest, err.Error())
		default:
			log.Errorf("Start failed: %v", err)
			writeErrors(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, s.stateOf(s.ctl.Snapshot()))
}

// handleStop handles /api/stop requests
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.ctl.Stop()
	writeJSON(w, http.StatusOK, s.stateOf(s.ctl.Snapshot()))
}

// handleChart handles /api/chart.png and /api/chart.svg requests
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opts := chart.DefaultOptions()
	opts.Format = mux.Vars(r)["format"]

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		v := r.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < minChartSize || n > maxChartSize {
			writeErrors(w, http.StatusBadRequest,
				p.name+" must be an integer between "+strconv.Itoa(minChartSize)+" and "+strconv.Itoa(maxChartSize))
			return
		}
		*p.dst = n
	}

	// render into a buffer so a failure can still become a 500
	var buf bytes.Buffer
	if err := chart.Render(&buf, s.ctl.Snapshot().History, opts); err != nil {
		log.Errorf("Chart render failed: %v", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}

	contentType := "image/png"
	if opts.Format == chart.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
