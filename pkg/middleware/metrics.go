package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/infra/prometheus"
)

type metricsMiddleware struct {
	logger   *logrus.Logger
	taskChan chan func()
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	m := &metricsMiddleware{
		logger:   logger,
		taskChan: make(chan func(), 1000),
	}
	go m.startWorkers(5)
	return m
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		method := c.Method()
		// Route pattern, not the raw path, to keep label cardinality bounded.
		path := c.Route().Path
		statusCode := c.Response().StatusCode()

		m.enqueueTask(func() {
			prometheus.HTTPRequestTotal.WithLabelValues(
				method,
				path,
				statusClass(statusCode),
			).Inc()
		})

		return err
	}
}

func (m *metricsMiddleware) startWorkers(n int) {
	for i := 0; i < n; i++ {
		go func() {
			for task := range m.taskChan {
				task()
			}
		}()
	}
}

func (m *metricsMiddleware) enqueueTask(task func()) {
	select {
	case m.taskChan <- task:
	default:
		m.logger.Warn("taskChan is full, dropping metrics task")
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
