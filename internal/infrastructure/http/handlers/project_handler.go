package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/project"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type ProjectHandler struct {
	create   *project.Create
	get      *project.Get
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectHandler(create *project.Create, get *project.Get, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{create: create, get: get, validate: validator.New(), log: log}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title     string `json:"title" validate:"required,max=200"`
		Status    string `json:"status" validate:"omitempty,max=20"`
		CompanyID string `json:"company_id" validate:"omitempty,max=64"`
		HourlyPay *int   `json:"hourly_pay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.create.Execute(r.Context(), project.CreateInput{
		Title:     body.Title,
		Status:    domain.ProjectStatus(body.Status),
		CompanyID: body.CompanyID,
		HourlyPay: body.HourlyPay,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidProject) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("create project failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.get.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domerrors.ErrProjectNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("get project failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
