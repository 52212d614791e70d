package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"librosml-tf/internal/pipeline"
	"librosml-tf/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// AdminHandler expone el rebuild del modelo (HTTP y WebSocket con
// progreso). Solo lo monta el grupo protegido con JWT + AdminOnly.
type AdminHandler struct {
	buildSvc *service.BuildService
	params   pipeline.Params
}

func NewAdminHandler(b *service.BuildService, defaults pipeline.Params) *AdminHandler {
	return &AdminHandler{buildSvc: b, params: defaults}
}

// MountAdminRoutes cuelga las rutas de mantenimiento bajo /admin.
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/admin/model", func(r chi.Router) {
		r.Post("/rebuild", h.Rebuild)
		r.Get("/ws/rebuild", h.RebuildWS)
	})
}

type rebuildRequest struct {
	MinVotes      int `json:"minVotes"`
	TopN          int `json:"topN"`
	ActiveUserMin int `json:"activeUserMin"`
	FamousBookMin int `json:"famousBookMin"`
	Workers       int `json:"workers"`
}

// los campos en 0 del body caen a los defaults de config
func (h *AdminHandler) mergeParams(req rebuildRequest) pipeline.Params {
	p := h.params
	if req.MinVotes > 0 {
		p.MinVotes = req.MinVotes
	}
	if req.TopN > 0 {
		p.TopN = req.TopN
	}
	if req.ActiveUserMin > 0 {
		p.ActiveUserMin = req.ActiveUserMin
	}
	if req.FamousBookMin > 0 {
		p.FamousBookMin = req.FamousBookMin
	}
	if req.Workers > 0 {
		p.Workers = req.Workers
	}
	return p
}

// @Summary Rebuild completo del modelo (bloqueante)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body rebuildRequest false "umbrales (0 = default de config)"
// @Success 200 {object} pipeline.BuildStats
// @Router /admin/model/rebuild [post]
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req rebuildRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // body vacío = defaults

	stats, err := h.buildSvc.Run(r.Context(), h.mergeParams(req), nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stats)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Rebuild con progreso en tiempo real (WebSocket)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/model/ws/rebuild [get]
func (h *AdminHandler) RebuildWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	_ = conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando rebuild…",
	})

	// reporta avance de la etapa de similitud cada ~5%. El callback llega
	// desde varios workers y gorilla no permite escrituras concurrentes,
	// así que se serializa con un mutex.
	var mu sync.Mutex
	lastPct := -1
	progress := func(done, total int) {
		if total == 0 {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		pct := done * 100 / total
		if lastPct >= 0 && pct/5 == lastPct/5 {
			return
		}
		lastPct = pct
		if err := conn.WriteJSON(map[string]any{
			"type": "progress",
			"done": done, "total": total, "pct": pct,
		}); err != nil {
			log.Printf("[admin] ws progress: %v", err)
		}
	}

	stats, err := h.buildSvc.Run(r.Context(), h.params, progress)
	if err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":  "done",
		"stats": stats,
	})
}
