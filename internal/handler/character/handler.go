package character

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/dexter-show/backend/internal/service/catalog"
	"github.com/zhouzirui/dexter-show/backend/pkg/utils"
)

const (
	msgNotFound = "Personagem não encontrado!"
	msgDeleted  = "Personagem deletado com sucesso!"

	// maxBodyBytes caps create and update payloads.
	maxBodyBytes = 1 << 20
)

// Handler 角色资源的HTTP处理器
type Handler struct {
	svc    *catalogService.Service
	logger *zap.Logger
}

// New 创建角色处理器
func New(svc *catalogService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes 注册角色相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personagens", h.handleList)
	r.Post("/personagens", h.handleCreate)
	r.Get("/personagens/{id}", h.handleGet)
	r.Put("/personagens/{id}", h.handleUpdate)
	r.Delete("/personagens/{id}", h.handleDelete)
}

// characterPayload is the request body of create and update.
type characterPayload struct {
	Nome   *string `json:"nome"`
	Status *string `json:"status"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.ListCharacters(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	character, err := h.svc.GetCharacter(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, character)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	created := h.svc.CreateCharacter(r.Context(), input)
	w.Header().Set("Location", "/personagens/"+strconv.Itoa(created.ID))
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateCharacter(r.Context(), id, input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.DeleteCharacter(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"detail": msgDeleted})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrCharacterNotFound) {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.logger.Error("unexpected catalog error", zap.Error(err))
	utils.RespondError(w, http.StatusInternalServerError, "internal server error")
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (catalog.CharacterInput, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var payload characterPayload
	err := dec.Decode(&payload)
	if err == nil {
		// The body must hold exactly one JSON value.
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("trailing data after request body")
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return catalog.CharacterInput{}, false
		}
		utils.RespondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return catalog.CharacterInput{}, false
	}

	switch {
	case payload.Nome == nil:
		utils.RespondError(w, http.StatusUnprocessableEntity, "nome is required")
		return catalog.CharacterInput{}, false
	case payload.Status == nil:
		utils.RespondError(w, http.StatusUnprocessableEntity, "status is required")
		return catalog.CharacterInput{}, false
	}

	return catalog.CharacterInput{Name: *payload.Nome, Status: *payload.Status}, true
}
