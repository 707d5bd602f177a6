package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/etnz/clientbook"
	"github.com/etnz/clientbook/date"
	"github.com/etnz/clientbook/quote"
	"github.com/etnz/clientbook/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListClients(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "record store unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type clientRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := s.store.CreateClient(r.Context(), req.Name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleRenameClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := s.store.RenameClient(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Client(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	q := r.URL.Query()
	f := store.Filter{Stock: q.Get("stock")}
	if v := q.Get("type"); v != "" {
		if f.Type, err = clientbook.ParseTransactionType(v); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if f.Range, err = date.ParseRange(q.Get("from"), q.Get("to")); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	txs, err := s.store.ListTransactions(r.Context(), c.ID, f)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var tx clientbook.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	tx.ID = 0
	tx.ClientID = chi.URLParam(r, "id")

	tx, err := s.store.AddTransaction(r.Context(), tx)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

type updateRequest struct {
	Price    clientbook.Money    `json:"price"`
	Quantity clientbook.Quantity `json:"quantity"`
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.transactionID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	tx, err := s.store.UpdateTransaction(r.Context(), id, req.Price, req.Quantity)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.transactionID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := s.store.Client(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	txs, err := s.store.ListTransactions(ctx, c.ID, store.Filter{})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	prices := quote.Fetch(ctx, s.quotes, clientbook.StocksHeld(txs), s.workers)
	s.writeJSON(w, http.StatusOK, clientbook.NewInsights(c, s.currency, txs, prices))
}

func (s *Server) transactionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid transaction id")
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps record store errors to http statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrClientExists):
		s.writeError(w, http.StatusConflict, err.Error())
	case clientbook.IsValidationError(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Msg("record store failure")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
