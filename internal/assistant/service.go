// Package assistant bridges the user's data to the external completion API.
// Every call re-sends the serialized snapshot context plus the conversation so
// far; there is no server-side session.
package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/meganziesemer/taskapp-final/internal/config"
	"github.com/meganziesemer/taskapp-final/internal/dates"
	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/sync"
)

const systemPrompt = "You are the user's project assistant. You help organize tasks, " +
	"brainstorm project names, and provide productivity tips. Keep responses concise and encouraging."

// Bounds on how much snapshot context is serialized into the prompt.
const (
	maxContextProjects     = 20
	maxOpenTasksPerProject = 3
	maxContextHabits       = 20
)

// NewClient builds the completion-API client from config. The endpoint speaks
// the OpenAI-compatible surface, so the base URL decides which provider
// actually answers.
func NewClient(cfg config.AssistantConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.Key),
		openai.WithModel(cfg.Model),
	}
	if cfg.URL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.URL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating assistant client: %w", err)
	}
	return llm, nil
}

// Service holds the conversation log and serializes access to the completion
// API: at most one request in flight, new sends rejected until it settles.
type Service struct {
	llm    llms.Model
	logger *slog.Logger

	mu      stdsync.Mutex
	busy    bool
	history []Message
}

// NewService creates an assistant service around an LLM client.
func NewService(llm llms.Model, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{llm: llm, logger: logger}
}

// History returns a copy of the conversation log.
func (s *Service) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Busy reports whether a request is in flight.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Ask sends the user's message with the snapshot serialized as context and
// appends both sides of the exchange to the log. On failure an inline error
// bubble is appended in place of the reply; the in-flight flag always clears,
// success or failure.
func (s *Service) Ask(ctx context.Context, text string, snap sync.Snapshot) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.busy = true
	prior := make([]Message, len(s.history))
	copy(prior, s.history)
	s.append(Message{ID: uuid.NewString(), Role: RoleUser, Text: text, Timestamp: time.Now()})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	messages := buildMessages(prior, text, snap)

	resp, err := s.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("completion call failed", "error", err)
		s.mu.Lock()
		s.append(Message{
			ID:        uuid.NewString(),
			Role:      RoleModel,
			Text:      "Sorry, I couldn't reach the assistant. Please try again.",
			Timestamp: time.Now(),
		})
		s.mu.Unlock()
		return "", fmt.Errorf("asking assistant: %w", err)
	}

	reply := "I'm sorry, I couldn't process that."
	if len(resp.Choices) > 0 && resp.Choices[0].Content != "" {
		reply = resp.Choices[0].Content
	}

	s.mu.Lock()
	s.append(Message{ID: uuid.NewString(), Role: RoleModel, Text: reply, Timestamp: time.Now()})
	s.mu.Unlock()
	return reply, nil
}

// append assumes s.mu is held.
func (s *Service) append(m Message) {
	s.history = append(s.history, m)
}

func buildMessages(prior []Message, text string, snap sync.Snapshot) []llms.MessageContent {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeSystem, ContextBlock(snap)),
	}
	for _, m := range prior {
		role := schema.ChatMessageTypeHuman
		if m.Role == RoleModel {
			role = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Text))
	}
	return append(messages, llms.TextParts(schema.ChatMessageTypeHuman, text))
}

// ContextBlock serializes a bounded description of the snapshot for the
// prompt: per-project pending/completed counts with a few open task titles,
// and habit names with current streaks.
func ContextBlock(snap sync.Snapshot) string {
	var b strings.Builder
	b.WriteString("Current data for the user, as of ")
	b.WriteString(dates.Today())
	b.WriteString(".\n")

	if len(snap.Projects) == 0 {
		b.WriteString("No projects yet.\n")
	} else {
		b.WriteString("Projects:\n")
		for i, p := range snap.Projects {
			if i == maxContextProjects {
				fmt.Fprintf(&b, "- and %d more projects\n", len(snap.Projects)-i)
				break
			}
			pending, completed := project.Partition(p)
			fmt.Fprintf(&b, "- %s: %d open, %d done", p.Name, len(pending), len(completed))
			for j, t := range pending {
				if j == maxOpenTasksPerProject {
					break
				}
				if j == 0 {
					b.WriteString(" (next: ")
				} else {
					b.WriteString("; ")
				}
				fmt.Fprintf(&b, "%s due %s", t.Title, t.DueDate)
				if j == len(pending)-1 || j == maxOpenTasksPerProject-1 {
					b.WriteString(")")
				}
			}
			b.WriteString("\n")
		}
	}

	if len(snap.Habits) > 0 {
		b.WriteString("Habits:\n")
		today := dates.Today()
		for i, h := range snap.Habits {
			if i == maxContextHabits {
				fmt.Fprintf(&b, "- and %d more habits\n", len(snap.Habits)-i)
				break
			}
			fmt.Fprintf(&b, "- %s: %d day streak\n", h.Name, habit.Streak(h, today))
		}
	}
	return b.String()
}
