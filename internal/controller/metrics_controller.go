package controller

import (
	"henna-assistant-be/internal/pkg/logger"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IMetricsController interface {
	RegisterRoutes(r fiber.Router)
	GetMetrics(ctx *fiber.Ctx) error
}

type metricsController struct {
	// Built once; promhttp handlers are safe for concurrent use
	handler fiber.Handler
	logger  logger.ILogger
}

// NewMetricsController serves everything registered on gatherer in the
// Prometheus text format.
func NewMetricsController(gatherer prometheus.Gatherer, log logger.ILogger) IMetricsController {
	return &metricsController{
		handler: adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		logger:  log,
	}
}

func (c *metricsController) RegisterRoutes(r fiber.Router) {
	r.Get("/metrics", c.GetMetrics)
}

func (c *metricsController) GetMetrics(ctx *fiber.Ctx) error {
	err := c.handler(ctx)
	if err != nil {
		c.logger.Error("METRICS", "Metrics handler error", map[string]interface{}{
			"status": ctx.Response().StatusCode(),
			"error":  err.Error(),
		})
	}
	return err
}
