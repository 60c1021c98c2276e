package handlers

import (
	"encoding/json"
	"net/http"

	"patronage/internal/domain"
	"patronage/internal/ledger"
)

type createProjectRequest struct {
	Name    string `json:"name"`
	Creator string `json:"creator"`
}

type projectItem struct {
	ProjectID uint64 `json:"project_id"`
	Name      string `json:"name"`
	Creator   string `json:"creator"`
}

func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Creator == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "creator is required")
		return
	}

	res, err := a.Ledger.Execute(r.Context(), domain.Address(req.Creator), nil, ledger.CreateProjectMsg{Name: req.Name})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"project_id": *res.ProjectID})
}

func (a *App) ProjectsList(w http.ResponseWriter, r *http.Request) {
	res, err := a.Ledger.Query(r.Context(), ledger.ListProjectsMsg{})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	list := res.(ledger.ListProjectsResult)
	items := make([]projectItem, len(list.Projects))
	for i, p := range list.Projects {
		items[i] = projectItem{ProjectID: uint64(i), Name: p.Name, Creator: p.Creator.String()}
	}
	a.json(w, http.StatusOK, map[string]any{"projects": items})
}
