package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"patronage/internal/domain"
	"patronage/internal/ledger"
)

type donateRequest struct {
	Patron string       `json:"patron"`
	Funds  domain.Funds `json:"funds"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Patron == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "patron is required")
		return
	}
	if err := req.Funds.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}

	res, err := a.Ledger.Execute(r.Context(), domain.Address(req.Patron), req.Funds, ledger.DonateMsg{ProjectID: projectID})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	transfers := res.Transfers
	if transfers == nil {
		transfers = []domain.Transfer{}
	}
	a.json(w, http.StatusOK, map[string]any{"transfers": transfers})
}

func (a *App) DonationsByPatron(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}
	patron := r.URL.Query().Get("patron")
	if patron == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "patron is required")
		return
	}

	res, err := a.Ledger.Query(r.Context(), ledger.ListDonationsForProjectByPatronMsg{
		ProjectID: projectID,
		Patron:    domain.Address(patron),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	list := res.(ledger.ListDonationsResult)
	donations := list.Donations
	if donations == nil {
		donations = []domain.DonationRecord{}
	}
	a.json(w, http.StatusOK, map[string]any{"donations": donations})
}

func projectIDParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 64)
}
