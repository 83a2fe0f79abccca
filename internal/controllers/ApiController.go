package controllers

import (
	"net/http"
	"spd/internal/models"
	"spd/internal/providers"
	"spd/internal/services"
	"spd/internal/storage"
	"spd/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	conf     *structures.Config
	logger   providers.Logger
	service  services.StandServiceInterface
	names    *services.NameGenerator
	cooldown *services.CooldownManager
	panel    *services.PanelAPIService
	migrator *storage.Migrator
	cache    providers.CacheProviderInterface
	metrics  providers.MetricsProviderInterface
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.StandServiceInterface, names *services.NameGenerator, cooldown *services.CooldownManager, panel *services.PanelAPIService, migrator *storage.Migrator, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		conf:     conf,
		logger:   logger,
		service:  service,
		names:    names,
		cooldown: cooldown,
		panel:    panel,
		migrator: migrator,
		cache:    cache,
		metrics:  metrics,
	}
}

type standRequest struct {
	OwnerID   string `json:"owner_id"`
	Abilities string `json:"abilities"`
	Name      string `json:"name"`
}

type awakenRequest struct {
	OwnerID  string `json:"owner_id"`
	Reawaken bool   `json:"reawaken"`
}

type standResponse struct {
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name,omitempty"`
	Abilities   string `json:"abilities"`
	Formatted   string `json:"formatted"`
	Acquisition string `json:"acquisition"`
	CreatedAt   string `json:"created_at"`
	PanelURL    string `json:"panel_url"`
}

type awakenResponse struct {
	Stand      standResponse `json:"stand"`
	TodayCount int           `json:"today_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SetStand stores a custom stand for the owner, replacing any previous one.
func (ac *ApiController) SetStand(w http.ResponseWriter, r *http.Request) {
	req, ok := ac.decodeStandRequest(w, r)
	if !ok {
		return
	}

	abilities, err := models.ParseAbilities(req.Abilities)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "abilities must be exactly 6 letters A-E, e.g. AABCDE"})
		return
	}

	rec, err := ac.service.SaveStand(req.OwnerID, abilities, req.Name, models.MethodManual)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "SetStand failed for %s: %s", req.OwnerID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: services.MsgSystemUnavailable})
		return
	}

	ac.cache.Del(standCacheKey(req.OwnerID))
	writeJSON(w, http.StatusOK, ac.standResponse(req.OwnerID, rec))
}

// GetStand serves the owner's stand, cached. Absence is a 404, not cached.
func (ac *ApiController) GetStand(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner parameter is required"})
		return
	}

	cacheKey := standCacheKey(owner)
	if data, ok := ac.cache.Get(cacheKey); ok {
		ac.metrics.IncCacheHits()
		writeRawJSON(w, http.StatusOK, data)
		return
	}
	ac.metrics.IncCacheMisses()

	rec, err := ac.service.GetStand(owner)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "GetStand failed for %s: %s", owner, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: services.MsgSystemUnavailable})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stand yet, awaken one first"})
		return
	}

	gson, err := json.Marshal(ac.standResponse(owner, rec))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(cacheKey, gson)
	writeRawJSON(w, http.StatusOK, gson)
}

// Awaken rolls a brand-new stand. First awaken requires a clean slate;
// reawaken replaces an existing stand and is gated by the daily limit.
func (ac *ApiController) Awaken(w http.ResponseWriter, r *http.Request) {
	if !ac.conf.Awaken.Enabled {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: services.MsgAwakenDisabled})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req awakenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OwnerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner_id is required"})
		return
	}

	existing, err := ac.service.GetStand(req.OwnerID)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Awaken lookup failed for %s: %s", req.OwnerID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: services.MsgSystemUnavailable})
		return
	}

	if !req.Reawaken && existing != nil {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: "you already have a stand; reawaken to replace it",
		})
		return
	}
	if req.Reawaken {
		if existing == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stand yet, awaken one first"})
			return
		}
		allowed, msg := ac.service.CheckAwakenLimit(req.OwnerID, ac.conf.Awaken.DailyLimit)
		if !allowed {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msg})
			return
		}
	}

	rec, err := ac.service.AwakenStand(req.OwnerID, ac.names.Generate())
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Awaken failed for %s: %s", req.OwnerID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: services.MsgSystemUnavailable})
		return
	}
	if req.Reawaken {
		if err := ac.service.RecordAwaken(req.OwnerID); err != nil {
			ac.logger.Errorf(providers.TypePost, "Recording awaken failed for %s: %s", req.OwnerID, err)
		}
	}

	ac.cache.Del(standCacheKey(req.OwnerID))
	writeJSON(w, http.StatusOK, awakenResponse{
		Stand:      ac.standResponse(req.OwnerID, rec),
		TodayCount: ac.service.TodayAwakenCount(req.OwnerID),
	})
}

// RandomStand previews a throwaway stand without persisting anything,
// behind the per-owner cooldown.
func (ac *ApiController) RandomStand(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner parameter is required"})
		return
	}

	allowed, remaining := ac.cooldown.Check(owner)
	if !allowed {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: services.FormatCooldownWait(remaining)})
		return
	}

	name := ac.names.Generate()
	abilities := ac.service.RollAbilities()
	letters, _ := models.AbilityLetters(abilities)
	writeJSON(w, http.StatusOK, standResponse{
		OwnerID:   owner,
		Name:      name,
		Abilities: letters,
		Formatted: models.FormatAbilities(letters),
		PanelURL:  ac.panel.ImageURL(name, abilities),
	})
}

// GetUsage reports today's reawaken count and the configured limit.
func (ac *ApiController) GetUsage(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner parameter is required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"owner_id":    owner,
		"date":        time.Now().In(ac.service.Location()).Format("2006-01-02"),
		"count":       ac.service.TodayAwakenCount(owner),
		"daily_limit": ac.conf.Awaken.DailyLimit,
	})
}

// Migrate runs the legacy→file migration and returns its result.
func (ac *ApiController) Migrate(w http.ResponseWriter, r *http.Request) {
	result := ac.migrator.Run()
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

func (ac *ApiController) decodeStandRequest(w http.ResponseWriter, r *http.Request) (*standRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req standRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return nil, false
	}
	if req.OwnerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner_id is required"})
		return nil, false
	}
	return &req, true
}

func (ac *ApiController) standResponse(ownerID string, rec *models.StandRecord) standResponse {
	letters, err := models.AbilityLetters(rec.Abilities)
	if err != nil {
		// old data may carry malformed abilities; surface what we have
		letters = rec.Abilities
	}
	return standResponse{
		OwnerID:     ownerID,
		Name:        rec.Name,
		Abilities:   letters,
		Formatted:   models.FormatAbilities(letters),
		Acquisition: models.MethodDisplay(rec.AcquisitionMethod),
		CreatedAt:   rec.CreatedAt,
		PanelURL:    ac.panel.ImageURL(rec.Name, rec.Abilities),
	}
}

func standCacheKey(ownerID string) string {
	return "stand:" + ownerID
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, gson)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
