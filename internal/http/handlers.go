package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kassenbuch/internal/core"
	"kassenbuch/internal/ledger"
	"kassenbuch/internal/services"
)

// createTransactionRequest carries a new ledger entry. Amount is a decimal
// string ("12.34" or "12,34"), never a float.
type createTransactionRequest struct {
	Amount      string   `json:"amount"`
	Type        string   `json:"type"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsRecurring bool     `json:"isRecurring,omitempty"`
	Recurrence  string   `json:"recurrence,omitempty"`
	NextDueDate string   `json:"nextDueDate,omitempty"`
}

type updateProfileRequest struct {
	CurrentBalance *core.Money         `json:"currentBalance,omitempty"`
	MonthlyIncome  *core.Money         `json:"monthlyIncome,omitempty"`
	Categories     *[]core.Category    `json:"categories,omitempty"`
	SavingsGoals   *[]core.SavingsGoal `json:"savingsGoals,omitempty"`
}

type applySuggestionRequest struct {
	Category core.CategoryTag `json:"category"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, s.ledger.Transactions())
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Decode transaction request failed", "error", err)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "invalid date")
			return
		}
		date = parsed
	}

	candidate := core.Transaction{
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Date:        date,
		Description: sanitizeInput(req.Description),
		Category:    core.CategoryTag(strings.TrimSpace(req.Category)),
		Tags:        req.Tags,
		IsRecurring: req.IsRecurring,
		Recurrence:  core.Recurrence(strings.TrimSpace(req.Recurrence)),
	}
	if req.NextDueDate != "" {
		if due, err := parseDate(req.NextDueDate); err == nil {
			candidate.NextDueDate = due
		}
	}

	tx, err := s.ledger.CreateTransaction(r.Context(), candidate)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	s.ledger.DeleteTransaction(r.Context(), id)
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, s.ledger.Profile())
	case http.MethodPut:
		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SavingsGoals != nil {
			for _, goal := range *req.SavingsGoals {
				if err := goal.Validate(); err != nil {
					respondError(w, http.StatusUnprocessableEntity, "invalid savings goal: "+err.Error())
					return
				}
			}
		}
		s.ledger.UpdateProfile(r.Context(), ledger.ProfileUpdate{
			CurrentBalance: req.CurrentBalance,
			MonthlyIncome:  req.MonthlyIncome,
			Categories:     req.Categories,
			SavingsGoals:   req.SavingsGoals,
		})
		respondJSON(w, http.StatusOK, s.ledger.Profile())
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	respondJSON(w, http.StatusOK, s.ledger.Suggestions())
}

func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req applySuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !core.IsBudgetTag(req.Category) {
		respondError(w, http.StatusUnprocessableEntity, "unknown budget category")
		return
	}

	applied, err := s.ledger.ApplySuggestion(r.Context(), req.Category)
	if err != nil {
		if errors.Is(err, services.ErrNoSuggestion) {
			respondError(w, http.StatusNotFound, "no active suggestion for category")
			return
		}
		slog.ErrorContext(r.Context(), "Apply suggestion failed", "error", err, "category", req.Category)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, applied)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	respondJSON(w, http.StatusOK, s.ledger.Alerts())
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	respondJSON(w, http.StatusOK, s.ledger.Overview())
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
