package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"henna-assistant-be/internal/config"
	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/pkg/transport"
	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/ai/prompt"
	"henna-assistant-be/pkg/ai/router"
	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/faq"
	"henna-assistant-be/pkg/llm"
	"henna-assistant-be/pkg/llm/factory"
	"henna-assistant-be/pkg/store"
)

// Core is the knowledge and generation stack shared by the HTTP server and
// the terminal client.
type Core struct {
	Knowledge *config.Knowledge
	Matcher   *faq.Matcher
	Catalog   *catalog.Catalog
	Provider  llm.ChatProvider

	cfg     *config.Config
	log     logger.ILogger
	builder *prompt.Builder
}

// NewCore loads the knowledge file and prompt instructions and selects the
// generation backend. A backend that cannot be built is logged and replaced
// by one that reports the cause on every request.
func NewCore(ctx context.Context, cfg *config.Config, log logger.ILogger) (*Core, error) {
	knowledge, err := config.LoadKnowledge(cfg.App.KnowledgeFile)
	if err != nil {
		return nil, err
	}
	for _, w := range knowledge.Warnings {
		log.Warn("BOOTSTRAP", "Knowledge incomplete", map[string]interface{}{"warning": w, "file": knowledge.Source})
	}

	ins, err := prompt.LoadInstructions(cfg.App.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt instructions: %w", err)
	}
	if missing := ins.MissingLinks(); len(missing) > 0 {
		log.Warn("BOOTSTRAP", "Prompt instructions have no URL for some links", map[string]interface{}{
			"missing": strings.Join(missing, ", "),
			"file":    cfg.App.PromptFile,
		})
	}

	settings := factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.APIKeyFor(knowledge.GenAIKey),
		BaseURL:  cfg.BaseURLFor(),
	}
	httpClient := transport.NewHTTPClient(cfg.Ai.RequestTimeout, log)
	provider, err := factory.NewChatProviderOrUnavailable(ctx, settings, httpClient)
	if err != nil {
		log.Error("BOOTSTRAP", "LLM provider unavailable", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
	} else {
		log.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	log.Info("BOOTSTRAP", "Knowledge loaded", map[string]interface{}{
		"faqs":     len(knowledge.FAQ),
		"packages": len(knowledge.Packages),
		"file":     knowledge.Source,
	})

	return &Core{
		Knowledge: knowledge,
		Matcher:   faq.NewMatcher(knowledge.FAQ),
		Catalog:   catalog.New(knowledge.Packages),
		Provider:  provider,
		cfg:       cfg,
		log:       log,
		builder:   prompt.NewBuilder(ins),
	}, nil
}

// NewAgent builds an agent holding its own remote session.
func (c *Core) NewAgent() *agent.Agent {
	return agent.New(c.Provider,
		agent.Context{FAQ: c.Knowledge.FAQ, Personal: c.Knowledge.Personal},
		agent.WithLogger(c.log),
		agent.WithPromptBuilder(c.builder),
		agent.WithTimeout(c.cfg.Ai.RequestTimeout),
		agent.WithModel(c.cfg.Ai.LLMModel),
	)
}

// NewSession is the factory for per-user state.
func (c *Core) NewSession(id string) *store.Session {
	return store.NewSession(id, c.NewAgent, c.Catalog)
}

// NewRouter wires a router over a dedicated agent.
func (c *Core) NewRouter() *router.QueryRouter {
	return router.NewQueryRouter(c.Matcher, c.NewAgent(), c.log)
}
