package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/google/uuid"
)

// faqEntry pairs a keyword set with its canned answer. The first matching
// entry wins, so order mirrors how specific the topics are.
type faqEntry struct {
	keywords []string
	reply    models.ChatReply
}

var faqEntries = []faqEntry{
	{
		keywords: []string{"price", "cost", "eur", "euro", "money", "expensive", "cheap"},
		reply: models.ChatReply{
			Message: "Our yacht racing experience costs EUR 199 per person and includes " +
				"professional skipper, all equipment, racing medal, certificate, and professional photos. " +
				"This is excellent value for a full day of authentic yacht racing on beautiful Lake Garda!",
			Suggestions: []string{"What's included?", "How to book?", "Group discounts?"},
		},
	},
	{
		keywords: []string{"include", "package", "what", "contain"},
		reply: models.ChatReply{
			Message: "The EUR 199 package includes: professional skipper and instruction, all safety " +
				"equipment, racing medal and certificate, professional photos and videos, light refreshments, " +
				"and a full racing experience with multiple races!",
			Suggestions: []string{"Do I need experience?", "What to bring?", "Weather policy?"},
		},
	},
	{
		keywords: []string{"experience", "beginner", "learn", "know", "skill"},
		reply: models.ChatReply{
			Message: "No sailing experience required! Our certified skippers provide complete instruction. " +
				"We welcome absolute beginners - you'll learn basic sailing, participate in real races, " +
				"and leave feeling like a champion!",
			Suggestions: []string{"What's the schedule?", "How many people per boat?", "Age requirements?"},
		},
	},
	{
		keywords: []string{"weather", "rain", "wind", "sun", "storm"},
		reply: models.ChatReply{
			Message: "We sail in most conditions! Lake Garda has excellent sailing weather with consistent " +
				"thermal winds. If it's unsafe, we'll reschedule at no cost. Light rain doesn't stop us - " +
				"it's part of the adventure!",
			Suggestions: []string{"Cancellation policy?", "What to wear?", "Best season?"},
		},
	},
	{
		keywords: []string{"book", "reserve", "how", "when", "schedule"},
		reply: models.ChatReply{
			Message: "Easy booking! Book online at our website, call +39 345 678 9012, or email " +
				"info@gardaracing.com. We recommend booking 2-3 days in advance, especially during peak " +
				"season (June-September).",
			Suggestions: []string{"Available dates?", "Group bookings?", "Payment options?"},
		},
	},
	{
		keywords: []string{"group", "discount", "corporate", "team", "family"},
		reply: models.ChatReply{
			Message: "Great for groups! We offer discounts for 6+ people and special corporate packages. " +
				"Each yacht accommodates up to 8 participants. Perfect for team building, celebrations, " +
				"or family adventures!",
			Suggestions: []string{"Corporate events?", "Team building?", "Private charters?"},
		},
	},
}

var fallbackReply = models.ChatReply{
	Message: "Thank you for your message! For specific questions, please call us at +39 345 678 9012 " +
		"or email info@gardaracing.com. Our team will be happy to help!",
	Suggestions: []string{"Do I need experience?", "What to bring?", "Weather policy?"},
}

type chatService struct {
	messages ports.MessageRepository
	logger   *slog.Logger
}

func NewChatService(messages ports.MessageRepository, logger *slog.Logger) *chatService {
	return &chatService{messages: messages, logger: logger}
}

// Reply routes the message through the keyword FAQ and records both sides of
// the exchange when a session id is present. Persistence is best effort: a
// failed insert never blocks the reply.
func (s *chatService) Reply(ctx context.Context, sessionID, text string) models.ChatReply {
	if sessionID != "" {
		s.store(ctx, sessionID, "user", text)
	}

	reply := fallbackReply
	lower := strings.ToLower(text)
	for _, entry := range faqEntries {
		if matchesKeywords(lower, entry.keywords) {
			reply = entry.reply
			break
		}
	}

	if sessionID != "" {
		s.store(ctx, sessionID, "bot", reply.Message)
	}
	return reply
}

func (s *chatService) QuickReplies() []string {
	return []string{
		"What's included in the EUR 199 package?",
		"Do I need sailing experience?",
		"How do I book?",
		"Weather policy?",
		"Group discounts available?",
	}
}

func (s *chatService) NewSessionID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("chat_%d_%s", time.Now().UnixMilli(), suffix)
}

func (s *chatService) store(ctx context.Context, sessionID, sender, text string) {
	err := s.messages.Insert(ctx, models.ChatMessage{
		SessionID: sessionID,
		Sender:    sender,
		Text:      text,
	})
	if err != nil {
		s.logger.Warn("chat message not persisted", "session_id", sessionID, "sender", sender, "error", err)
	}
}

func matchesKeywords(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
