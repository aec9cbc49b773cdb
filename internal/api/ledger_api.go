package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forgeledger/forgeledger/internal/domain"
)

// ─── Progression reads ──────────────────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":         sum.Level,
		"xp":            sum.XP,
		"next_level_xp": sum.NextLevelXP,
		"xp_to_next":    sum.XPToNext,
		"progress_pct":  sum.ProgressPct,
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Streak())
}

// ─── Points ─────────────────────────────────────────────────────────────────

type addPointsRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

func (s *Server) handleAddPoints(w http.ResponseWriter, r *http.Request) {
	var req addPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.ledger.AddPoints(req.Amount, req.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrNonPositivePoints) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.ledger.Badges()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if badges == nil {
		badges = []domain.Badge{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

type earnBadgeRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
}

func (s *Server) handleEarnBadge(w http.ResponseWriter, r *http.Request) {
	var req earnBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	earned, err := s.ledger.EarnBadge(domain.Badge{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBadgeIDRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"earned": earned})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.ledger.Achievements(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []domain.Achievement{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": entries})
}

type recordAchievementRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Points      int64           `json:"points"`
	Category    domain.Category `json:"category"`
}

func (s *Server) handleRecordAchievement(w http.ResponseWriter, r *http.Request) {
	var req recordAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.ledger.RecordAchievement(domain.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ─── Streak check-in ────────────────────────────────────────────────────────

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	res, err := s.ledger.CheckIn(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Dashboard stats ────────────────────────────────────────────────────────

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	week, err := s.ledger.WeeklyStats(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": week})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	totals, err := s.ledger.CategoryBreakdown()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": totals})
}

// ─── Celebration events ─────────────────────────────────────────────────────

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := s.ledger.PendingEvents(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (s *Server) handleEventShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := s.ledger.MarkEventShown(id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
