package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// HealthService reports process liveness plus host resource pressure.
type HealthService struct {
	logger  *logging.Logger
	started time.Time
}

func NewHealthService(logger *logging.Logger) *HealthService {
	return &HealthService{logger: logger, started: time.Now()}
}

func (s *HealthService) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/health", s.handleHealth)
	s.logger.InfoTag("HTTP", "health routes registered")
	return nil
}

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

func (s *HealthService) handleHealth(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
	}

	// Resource metrics are best effort; the endpoint stays green without
	// them.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemoryPercent = vm.UsedPercent
	}

	RespondSuccess(c, http.StatusOK, resp, "")
}
