package messenger

import (
	"testing"

	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

func TestContactsSeeded(t *testing.T) {
	s := NewService()
	contacts := s.Contacts()
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Name != "Orapa" || contacts[1].Name != "Portes" {
		t.Fatalf("unexpected roster %v", contacts)
	}
}

func TestMessagesUnknownContact(t *testing.T) {
	s := NewService()
	_, err := s.Messages("ghost")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSendAppendsOutboundMessage(t *testing.T) {
	s := NewService()
	contact := s.Contacts()[0]

	before, err := s.Messages(contact.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := s.Send(contact.ID, "  on my way  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "on my way" || !msg.Outbound {
		t.Fatalf("unexpected message %+v", msg)
	}

	after, err := s.Messages(contact.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after) != len(before)+1 || after[len(after)-1].ID != msg.ID {
		t.Fatalf("expected message appended, got %v", after)
	}
}

func TestSendValidation(t *testing.T) {
	s := NewService()
	contact := s.Contacts()[0]

	if _, err := s.Send(contact.ID, "   "); err == nil {
		t.Fatal("expected blank body to fail")
	}
	if _, err := s.Send("ghost", "hello"); err == nil {
		t.Fatal("expected unknown contact to fail")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewService()
	contact := s.Contacts()[0]

	thread, err := s.Messages(contact.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	thread[0].Body = "tampered"

	fresh, err := s.Messages(contact.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh[0].Body == "tampered" {
		t.Fatal("caller mutation leaked into service state")
	}
}
