// Package chat manages conversations and drives the assistant for each user turn.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lawyerconnect/database/repository/session"
	"lawyerconnect/metrics"
	"lawyerconnect/models"
	"lawyerconnect/services/assistant"

	"go.uber.org/zap"
)

// DefaultTitle is used when a first question yields no usable title words.
const DefaultTitle = "Legal Consultation"

const titleWords = 6

// Responder produces the assistant's reply for one question.
type Responder interface {
	Respond(ctx context.Context, question string, history []string) assistant.Reply
}

// ConversationService is the chat API exposed to the HTTP layer.
type ConversationService interface {
	// CreateConversation opens an empty conversation for ownerID.
	CreateConversation(ctx context.Context, ownerID, title string) (*models.Conversation, error)

	// ListConversations returns ownerID's conversations, most recently updated first.
	ListConversations(ctx context.Context, ownerID string) ([]models.Conversation, error)

	// GetConversation returns one conversation or models.ErrNotFound.
	GetConversation(ctx context.Context, id int64) (*models.Conversation, error)

	// PostUserMessage stores the user's text, asks the assistant, stores its
	// reply and returns both messages.
	PostUserMessage(ctx context.Context, conversationID int64, text string) (*models.Exchange, error)

	// ListMessages returns a conversation's messages oldest first.
	ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error)

	// ListAllConversations returns every conversation, most recently updated
	// first. It backs the lawyer inbox.
	ListAllConversations(ctx context.Context) ([]models.Conversation, error)

	// PostLawyerReply stores a lawyer's message in a conversation without
	// asking the assistant.
	PostLawyerReply(ctx context.Context, conversationID int64, text string) (*models.Message, error)
}

// DefaultConversationService keeps conversations in the session store.
type DefaultConversationService struct {
	Conversations *session.Table[models.Conversation]
	Messages      *session.Table[models.Message]
	Responder     Responder
	Logger        *zap.Logger
}

func NewConversationService(store *session.Store, responder Responder, logger *zap.Logger) *DefaultConversationService {
	return &DefaultConversationService{
		Conversations: store.Conversations,
		Messages:      store.Messages,
		Responder:     responder,
		Logger:        logger,
	}
}

func (s *DefaultConversationService) CreateConversation(ctx context.Context, ownerID, title string) (*models.Conversation, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner is required", models.ErrInvalidInput)
	}
	conv, err := s.Conversations.Insert(ctx, models.Conversation{
		UserID: ownerID,
		Title:  strings.TrimSpace(title),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

func (s *DefaultConversationService) ListConversations(ctx context.Context, ownerID string) ([]models.Conversation, error) {
	return mostRecentFirst(s.Conversations.FindByOwner(ctx, ownerID)), nil
}

func (s *DefaultConversationService) ListAllConversations(ctx context.Context) ([]models.Conversation, error) {
	all := s.Conversations.Filter(ctx, func(models.Conversation) bool { return true })
	return mostRecentFirst(all), nil
}

func mostRecentFirst(convs []models.Conversation) []models.Conversation {
	sort.SliceStable(convs, func(i, j int) bool {
		if !convs[i].UpdatedAt.Equal(convs[j].UpdatedAt) {
			return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
		}
		return convs[i].ID > convs[j].ID
	})
	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs
}

func (s *DefaultConversationService) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	conv, err := s.Conversations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *DefaultConversationService) PostUserMessage(ctx context.Context, conversationID int64, text string) (*models.Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message content is required", models.ErrInvalidInput)
	}
	conv, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.Messages.Insert(ctx, models.Message{
		ConversationID: conversationID,
		Role:           models.MessageRoleUser,
		Content:        text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues(models.MessageRoleUser).Inc()

	reply := s.Responder.Respond(ctx, text, s.historyBefore(ctx, conversationID, userMsg.ID))
	if reply.Degraded {
		s.Logger.Info("assistant degraded for conversation", zap.Int64("conversationId", conversationID))
	}

	assistantMsg, err := s.Messages.Insert(ctx, models.Message{
		ConversationID: conversationID,
		Role:           models.MessageRoleAssistant,
		Content:        reply.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues(models.MessageRoleAssistant).Inc()

	s.touch(ctx, conv.ID, text)
	return &models.Exchange{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (s *DefaultConversationService) PostLawyerReply(ctx context.Context, conversationID int64, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message content is required", models.ErrInvalidInput)
	}
	if !s.Conversations.Exists(ctx, conversationID) {
		return nil, fmt.Errorf("conversation %d: %w", conversationID, models.ErrNotFound)
	}

	msg, err := s.Messages.Insert(ctx, models.Message{
		ConversationID: conversationID,
		Role:           models.MessageRoleLawyer,
		Content:        text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store lawyer message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues(models.MessageRoleLawyer).Inc()

	s.touch(ctx, conversationID, "")
	return &msg, nil
}

// touch bumps updatedAt and gives an untitled conversation a title derived
// from firstQuestion, when one is given.
func (s *DefaultConversationService) touch(ctx context.Context, id int64, firstQuestion string) {
	if _, err := s.Conversations.Update(ctx, id, func(c *models.Conversation) error {
		c.UpdatedAt = time.Now().UTC()
		if c.Title == "" && firstQuestion != "" {
			c.Title = TitleFrom(firstQuestion)
		}
		return nil
	}); err != nil {
		s.Logger.Warn("failed to touch conversation", zap.Int64("conversationId", id), zap.Error(err))
	}
}

func (s *DefaultConversationService) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	if !s.Conversations.Exists(ctx, conversationID) {
		return nil, fmt.Errorf("conversation %d: %w", conversationID, models.ErrNotFound)
	}
	msgs := s.Messages.FindByOwner(ctx, models.Message{ConversationID: conversationID}.OwnerKey())
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// historyBefore renders the conversation's messages with ids below before.
func (s *DefaultConversationService) historyBefore(ctx context.Context, conversationID, before int64) []string {
	key := models.Message{ConversationID: conversationID}.OwnerKey()
	var history []string
	for _, m := range s.Messages.FindByOwner(ctx, key) {
		if m.ID >= before {
			break
		}
		history = append(history, m.HistoryLine())
	}
	return history
}

// TitleFrom derives a short conversation title from the first question.
func TitleFrom(question string) string {
	words := strings.Fields(question)
	if len(words) == 0 {
		return DefaultTitle
	}
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	title := strings.TrimRight(strings.Join(words, " "), "?.!,;:")
	if title == "" {
		return DefaultTitle
	}
	return title
}
