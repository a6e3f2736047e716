package service

import (
	"context"
	"strings"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/repository/memory"
	"henna-assistant-be/pkg/ai/router"
	"henna-assistant-be/pkg/events"
	"henna-assistant-be/pkg/faq"
	"henna-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	SendChat(ctx context.Context, sessionId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
	ResetSession(ctx context.Context, sessionId string) (*dto.ResetSessionResponse, error)
}

type chatbotService struct {
	sessionRepo *memory.SessionRepository
	matcher     *faq.Matcher
	publisher   IEventPublisher
	logger      logger.ILogger
}

func NewChatbotService(
	sessionRepo *memory.SessionRepository,
	matcher *faq.Matcher,
	publisher IEventPublisher,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessionRepo: sessionRepo,
		matcher:     matcher,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *chatbotService) session(ctx context.Context, sessionId string) *store.Session {
	sess, created := s.sessionRepo.GetOrCreate(sessionId)
	if created {
		s.publisher.Publish(ctx, events.New(events.SessionStarted, map[string]interface{}{"session_id": sessionId}))
	}
	return sess
}

// SendChat answers one query. The session stays locked for the whole turn so
// concurrent requests of one session are answered in order.
func (s *chatbotService) SendChat(ctx context.Context, sessionId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(request.Chat)
	if text == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "chat must not be empty")
	}

	sess := s.session(ctx, sessionId)
	sess.Lock()
	defer sess.Unlock()

	sent := sess.Append(store.RoleUser, text, "")

	reply := router.NewQueryRouter(s.matcher, sess.Agent(), s.logger).Process(ctx, text)
	replyTurn := sess.Append(store.RoleAssistant, reply.Text, string(reply.Source))

	res := &dto.SendChatResponse{
		SessionId: sessionId,
		Sent:      toChatTurnDTO(sent),
		Reply:     toChatTurnDTO(replyTurn),
		Source:    string(reply.Source),
		Question:  reply.Question,
		Score:     reply.Score,
	}

	details := map[string]interface{}{
		"session_id": sessionId,
		"source":     string(reply.Source),
	}
	if reply.Source == router.SourceAI {
		res.Outcome = reply.Result.Kind.String()
		res.Language = reply.Result.Language
		details["kind"] = res.Outcome
		details["language"] = res.Language
		details["attempts"] = reply.Result.Attempts
	}
	s.publisher.Publish(ctx, events.New(events.ChatAnswered, details))

	return res, nil
}

func (s *chatbotService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	res := &dto.GetChatHistoryResponse{SessionId: sessionId, Turns: []*dto.ChatTurnDTO{}}

	sess, ok := s.sessionRepo.Get(sessionId)
	if !ok {
		return res, nil
	}
	sess.Lock()
	defer sess.Unlock()

	for _, turn := range sess.Turns() {
		res.Turns = append(res.Turns, toChatTurnDTO(turn))
	}
	return res, nil
}

// ResetSession clears the history and gives the agent a fresh remote session.
// A failed reconfiguration is reported but the history is still cleared.
func (s *chatbotService) ResetSession(ctx context.Context, sessionId string) (*dto.ResetSessionResponse, error) {
	sess := s.session(ctx, sessionId)
	sess.Lock()
	defer sess.Unlock()

	res := &dto.ResetSessionResponse{SessionId: sessionId, Configured: true}
	if err := sess.Reset(ctx); err != nil {
		s.logger.Warn("CHATBOT", "Agent could not be reconfigured", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		res.Configured = false
		res.Message = err.Error()
	}

	s.publisher.Publish(ctx, events.New(events.ChatReset, map[string]interface{}{"session_id": sessionId}))
	return res, nil
}

func toChatTurnDTO(turn store.ChatTurn) *dto.ChatTurnDTO {
	return &dto.ChatTurnDTO{
		Role:      turn.Role,
		Chat:      turn.Content,
		Source:    turn.Source,
		CreatedAt: turn.CreatedAt,
	}
}
