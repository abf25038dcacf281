package health

import (
	"context"
	"net/http"
	"time"

	httputil "futsal/pkg/http"
	"futsal/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const readyTimeout = 2 * time.Second

type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Pinger is one dependency checked by /ready.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	pingers []Pinger
	log     *logger.Logger
}

func NewHealthHandler(log *logger.Logger, pingers ...Pinger) *HealthHandler {
	return &HealthHandler{
		pingers: pingers,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status, code := "ready", http.StatusOK
	deps := make(map[string]string, len(h.pingers))
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.log.Error("Dependency health check failed",
				"dependency", p.Name(),
				"error", err,
				"path", r.URL.Path,
			)
			deps[p.Name()] = "error"
			status, code = "unavailable", http.StatusServiceUnavailable
			continue
		}
		deps[p.Name()] = "ok"
	}

	if err := httputil.WriteJSON(w, code, HealthResponse{
		Status:       status,
		Dependencies: deps,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

type mongoPinger struct{ client *mongo.Client }

func MongoPinger(client *mongo.Client) Pinger { return mongoPinger{client: client} }

func (p mongoPinger) Name() string { return "database" }

func (p mongoPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx, nil) }

type redisPinger struct{ client *redis.Client }

func RedisPinger(client *redis.Client) Pinger { return redisPinger{client: client} }

func (p redisPinger) Name() string { return "cache" }

func (p redisPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx).Err() }
