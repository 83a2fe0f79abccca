package controllers

import (
	"fmt"
	"net/http"
	"spd/internal/storage"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	legacy    *storage.LegacyStore
	files     *storage.FileStore
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StorageMode   string  `json:"storage_mode"`
	Stands        int     `json:"stands"`
	UsageOwners   int     `json:"usage_owners"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := "legacy"
	stands, usageOwners := hc.legacy.Counts()
	if hc.files != nil {
		mode = "file"
		stands, usageOwners = hc.files.Counts()
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		StorageMode:   mode,
		Stands:        stands,
		UsageOwners:   usageOwners,
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(legacy *storage.LegacyStore, files *storage.FileStore) *HealthController {
	return &HealthController{
		legacy:    legacy,
		files:     files,
		startTime: time.Now(),
	}
}
