package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/handler/character"
	eventsHandler "github.com/zhouzirui/dexter-show/backend/internal/handler/events"
	"github.com/zhouzirui/dexter-show/backend/internal/handler/season"
	middlewarePkg "github.com/zhouzirui/dexter-show/backend/internal/middleware"
	catalogService "github.com/zhouzirui/dexter-show/backend/internal/service/catalog"
	"github.com/zhouzirui/dexter-show/backend/pkg/utils"
)

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	PingInterval   time.Duration
	Logger         *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(catalogSvc *catalogService.Service, hub eventsHandler.Subscriber, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", handleWelcome)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	character.New(catalogSvc, logger).RegisterRoutes(r)
	season.New(catalogSvc, logger).RegisterRoutes(r)

	if hub != nil {
		eventsHandler.New(hub, opts.PingInterval, logger).RegisterRoutes(r)
	}

	return r
}

// handleWelcome lists the entry points of the API.
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"welcome":              "Bem-vindo à API do Dexter Show!",
		"personagens_endpoint": "/personagens",
		"temporadas_endpoint":  "/seasons",
	})
}
