package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/worklog"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type WorkLogHandler struct {
	create   *worklog.Create
	update   *worklog.Update
	validate *validator.Validate
	log      zerolog.Logger
}

func NewWorkLogHandler(create *worklog.Create, update *worklog.Update, log zerolog.Logger) *WorkLogHandler {
	return &WorkLogHandler{create: create, update: update, validate: validator.New(), log: log}
}

// workLogBody is shared by create and update; times are RFC3339.
type workLogBody struct {
	ProjectID         string     `json:"project_id" validate:"required,len=24,hexadecimal"`
	StartTime         time.Time  `json:"start_time" validate:"required"`
	EndTime           *time.Time `json:"end_time"`
	BreakTime         *int       `json:"break_time"`
	ActualWorkMinutes *int       `json:"actual_work_minutes"`
	Memo              string     `json:"memo" validate:"omitempty,max=1000"`
}

func (h *WorkLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body workLogBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.create.Execute(r.Context(), worklog.CreateInput{
		ProjectID:         body.ProjectID,
		StartTime:         body.StartTime,
		EndTime:           body.EndTime,
		BreakTime:         body.BreakTime,
		ActualWorkMinutes: body.ActualWorkMinutes,
		Memo:              body.Memo,
	})
	if err != nil {
		h.writeWorkLogErr(w, err, "create work log failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *WorkLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body workLogBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.update.Execute(r.Context(), id, worklog.UpdateInput{
		ProjectID:         body.ProjectID,
		StartTime:         body.StartTime,
		EndTime:           body.EndTime,
		BreakTime:         body.BreakTime,
		ActualWorkMinutes: body.ActualWorkMinutes,
		Memo:              body.Memo,
	}); err != nil {
		h.writeWorkLogErr(w, err, "update work log failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkLogHandler) writeWorkLogErr(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domerrors.ErrProjectNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrWorkLogNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrInvalidWorkLog):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg(logMsg)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
