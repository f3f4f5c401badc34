package season

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/dexter-show/backend/internal/service/catalog"
	"github.com/zhouzirui/dexter-show/backend/pkg/utils"
)

// Handler 季度资源的HTTP处理器
type Handler struct {
	svc    *catalogService.Service
	logger *zap.Logger
}

// New 创建季度处理器
func New(svc *catalogService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes 注册季度相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/seasons", h.handleListSeasons)
	r.Get("/seasons/{seasonNumber}/personagens", h.handleListCharacters)
}

func (h *Handler) handleListSeasons(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.ListSeasons(r.Context()))
}

func (h *Handler) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "seasonNumber"))
	if err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "seasonNumber must be an integer")
		return
	}

	characters, err := h.svc.CharactersBySeason(r.Context(), number)
	if err != nil {
		if errors.Is(err, catalog.ErrSeasonNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Temporada não encontrada!")
			return
		}
		h.logger.Error("unexpected catalog error", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.RespondJSON(w, http.StatusOK, characters)
}
