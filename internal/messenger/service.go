package messenger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// Contact is a chat partner in the session's contact list.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Message is one chat entry. Outbound reports whether the session user
// sent it.
type Message struct {
	ID       string    `json:"id"`
	Body     string    `json:"body"`
	Outbound bool      `json:"outbound"`
	SentAt   time.Time `json:"sent_at"`
}

// Service holds the in-memory conversations for the demo messenger.
type Service struct {
	mu       sync.Mutex
	contacts []Contact
	threads  map[string][]Message
	now      func() time.Time
}

// NewService seeds the demo contacts and their histories.
func NewService() *Service {
	s := &Service{threads: map[string][]Message{}, now: time.Now}
	seededAt := time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC)
	s.seed(
		Contact{ID: "c-orapa", Name: "Orapa", Status: "online"},
		Message{Body: "Hey, did the wallet arrive yet?", SentAt: seededAt},
		Message{Body: "Yes! Looks even better in person.", Outbound: true, SentAt: seededAt.Add(2 * time.Minute)},
	)
	s.seed(
		Contact{ID: "c-portes", Name: "Portes", Status: "away"},
		Message{Body: "Sending you the mug link later.", SentAt: seededAt.Add(time.Hour)},
	)
	return s
}

func (s *Service) seed(contact Contact, history ...Message) {
	s.contacts = append(s.contacts, contact)
	thread := make([]Message, 0, len(history))
	for _, msg := range history {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		thread = append(thread, msg)
	}
	s.threads[contact.ID] = thread
}

// Contacts lists the contact roster in seed order.
func (s *Service) Contacts() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Messages returns a copy of the conversation with the given contact.
func (s *Service) Messages(contactID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[contactID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}
	out := make([]Message, len(thread))
	copy(out, thread)
	return out, nil
}

// Send appends an outbound message to the contact's thread. Blank
// bodies are rejected after trimming.
func (s *Service) Send(contactID, body string) (Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	thread, ok := s.threads[contactID]
	if !ok {
		return Message{}, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}
	msg := Message{
		ID:       uuid.NewString(),
		Body:     body,
		Outbound: true,
		SentAt:   s.now().UTC(),
	}
	s.threads[contactID] = append(thread, msg)
	return msg, nil
}
