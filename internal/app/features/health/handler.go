package health

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/academyhub/internal/app/academy"
	"github.com/dalemusser/academyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client // nil when the audit sink is not configured
	Svc    *academy.Service
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. client may be nil.
func NewHandler(client *mongo.Client, svc *academy.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Svc:    svc,
		Log:    logger,
	}
}

type healthResponse struct {
	Status   string       `json:"status"`
	Database string       `json:"database"`
	Records  *recordCount `json:"records,omitempty"`
	Message  string       `json:"message,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type recordCount struct {
	Demos    int `json:"demos"`
	Batches  int `json:"batches"`
	Students int `json:"students"`
	Coaches  int `json:"coaches"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "records":{"demos":6,...} }
//
// database is "not_configured" when no MongoDB URI was given. On ping
// failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok", Database: "not_configured"}

	if h.Client != nil {
		ctx, cancel := timeouts.WithPing(r.Context())
		defer cancel()
		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	if h.Svc != nil {
		c := h.Svc.Counts()
		resp.Records = &recordCount{Demos: c.Demos, Batches: c.Batches, Students: c.Students, Coaches: c.Coaches}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
