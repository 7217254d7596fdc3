package appstate

import (
	"context"
	"encoding/json"

	"github.com/dmitrymomot/mediadigest/pkg/digest"
)

// Contacts returns a copy of the contact list.
func (s *State) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Contact(nil), s.contacts...)
}

// ActiveContacts returns the recipients eligible for the next send.
func (s *State) ActiveContacts() []digest.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]digest.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if c.Active {
			active = append(active, digest.Contact{Name: c.Name, Email: c.Email})
		}
	}
	return active
}

// AddContact appends a contact and persists the list. Adding an email that
// already exists replaces the previous entry.
func (s *State) AddContact(ctx context.Context, contact Contact) error {
	s.mu.Lock()
	replaced := false
	for i, c := range s.contacts {
		if c.Email == contact.Email {
			s.contacts[i] = contact
			replaced = true
			break
		}
	}
	if !replaced {
		s.contacts = append(s.contacts, contact)
	}
	snapshot := append([]Contact(nil), s.contacts...)
	s.mu.Unlock()

	return s.persistContacts(ctx, snapshot)
}

// RemoveContact deletes the contact with the given email and persists the
// list. Removing an unknown email is a no-op.
func (s *State) RemoveContact(ctx context.Context, email string) error {
	s.mu.Lock()
	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	s.contacts = kept
	snapshot := append([]Contact(nil), s.contacts...)
	s.mu.Unlock()

	return s.persistContacts(ctx, snapshot)
}

// SetContactActive toggles a contact's send eligibility and persists the
// list.
func (s *State) SetContactActive(ctx context.Context, email string, active bool) error {
	s.mu.Lock()
	for i, c := range s.contacts {
		if c.Email == email {
			s.contacts[i].Active = active
			break
		}
	}
	snapshot := append([]Contact(nil), s.contacts...)
	s.mu.Unlock()

	return s.persistContacts(ctx, snapshot)
}

func (s *State) persistContacts(ctx context.Context, contacts []Contact) error {
	data, err := json.Marshal(contacts)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyContacts, string(data))
}
