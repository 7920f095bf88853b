package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tmakino/opskit/internal/domain/interfaces"
	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

// runPlaybookRequest is the POST /run-playbook body
type runPlaybookRequest struct {
	Playbook  string            `json:"playbook" binding:"required"`
	Inventory string            `json:"inventory"`
	Limit     string            `json:"limit"`
	Tags      []string          `json:"tags"`
	ExtraVars map[string]string `json:"extra_vars"`
	Check     bool              `json:"check"`
}

// runPlaybookResponse mirrors the subprocess result. The ansible exit
// code lands in returncode regardless of success.
type runPlaybookResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Returncode int    `json:"returncode"`
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": "opskit-api",
			"version": serverVersion,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/run-playbook", s.requireAuth(), s.handleRunPlaybook)
}

// handleRunPlaybook runs one playbook synchronously. A failing playbook
// is still a successful API call; only a run that could not start at
// all becomes an HTTP error.
func (s *Server) handleRunPlaybook(c *gin.Context) {
	var req runPlaybookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	runID := uuid.New().String()
	c.Header("X-Opskit-Run-ID", runID)

	s.logger.Info("playbook run requested",
		interfaces.F("run_id", runID),
		interfaces.F("playbook", req.Playbook),
		interfaces.F("inventory", req.Inventory))

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.runner.RunPlaybook(ctx, ansible.PlaybookRequest{
		Playbook:  req.Playbook,
		Inventory: req.Inventory,
		Limit:     req.Limit,
		Tags:      req.Tags,
		ExtraVars: req.ExtraVars,
		Check:     req.Check,
	})
	if err != nil {
		s.logger.Error("playbook run failed to start",
			interfaces.F("run_id", runID),
			interfaces.F("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordPlaybookRun(report.ExitCode, time.Since(start))
	s.logger.Info("playbook run finished",
		interfaces.F("run_id", runID),
		interfaces.F("returncode", report.ExitCode),
		interfaces.F("duration", report.Duration.String()))

	c.JSON(http.StatusOK, runPlaybookResponse{
		Stdout:     report.Stdout,
		Stderr:     report.Stderr,
		Returncode: report.ExitCode,
	})
}
