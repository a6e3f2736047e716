package bootstrap

import (
	"context"

	"henna-assistant-be/internal/config"
	"henna-assistant-be/internal/controller"
	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/repository/memory"
	"henna-assistant-be/internal/service"
	"henna-assistant-be/internal/websocket"

	pktNats "henna-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const EventsTopic = "henna.events"

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	PackageController controller.IPackageController
	FAQController     controller.IFAQController
	StatsController   controller.IStatsController
	MetricsController controller.IMetricsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	Core        *Core
	SessionRepo *memory.SessionRepository
	Metrics     *prometheus.Registry

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	core, err := NewCore(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	sessionRepo := memory.NewSessionRepository(cfg.App.SessionTTL, core.NewSession)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		logger.NewWatermillAdapter(sysLogger, "EVENTS"),
	)
	c := &Container{Core: core, SessionRepo: sessionRepo}
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(ctx, cfg.App.NatsURL, pktNats.WithLogger(logger.ZapOf(sysLogger)))
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
			natsPub = nil
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(EventsTopic, pubSub, natsPub, sysLogger)
	// Own registry so each container starts from zero
	c.Metrics = prometheus.NewRegistry()
	c.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	statsService := service.NewStatsService(c.Metrics, sessionRepo.Count)
	consumerService := service.NewConsumerService(pubSub, EventsTopic, statsService, sysLogger)

	chatbotService := service.NewChatbotService(sessionRepo, core.Matcher, publisherService, sysLogger)
	packageService := service.NewPackageService(sessionRepo, core.Catalog, publisherService, sysLogger)
	faqService := service.NewFAQService(core.Matcher)

	// WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	// 4. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, wsHub)
	c.PackageController = controller.NewPackageController(packageService)
	c.FAQController = controller.NewFAQController(faqService)
	c.StatsController = controller.NewStatsController(statsService)
	c.MetricsController = controller.NewMetricsController(c.Metrics, sysLogger)
	c.ConsumerService = consumerService
	c.WebSocketHub = wsHub

	return c, nil
}

// Close releases the event bus and the NATS connection.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
