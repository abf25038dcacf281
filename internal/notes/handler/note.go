package handler

import (
	"net/http"

	"futsal/internal/notes/service"
	"futsal/pkg/auth"
	httputil "futsal/pkg/http"
	"futsal/pkg/logger"
	"futsal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type NoteHandler struct {
	service  service.NoteService
	verifier auth.Verifier
	log      *logger.Logger
}

func NewNoteHandler(service service.NoteService, verifier auth.Verifier, log *logger.Logger) *NoteHandler {
	return &NoteHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

func (h *NoteHandler) Set(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SetNoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Set", err)
		return
	}

	note, err := h.service.Set(r.Context(), req.OwnerID, req.Content)
	if err != nil {
		h.writeError(w, "Set", err)
		return
	}

	if err := httputil.WriteSuccess(w, note); err != nil {
		h.log.Error("failed to write success response", "handler", "Set", "operation", "WriteSuccess", "error", err)
	}
}

func (h *NoteHandler) GetByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	notes, err := h.service.GetByOwner(r.Context(), ps.ByName("idUser"))
	if err != nil {
		h.writeError(w, "GetByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, notes); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *NoteHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *NoteHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/info", auth.Guard(h.verifier, h.log, h.Set))
	router.GET("/info/:idUser", h.GetByOwner)
}
