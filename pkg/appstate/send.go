package appstate

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mediadigest/pkg/digest"
	"github.com/dmitrymomot/mediadigest/pkg/logger"
)

// SelectedItems derives digest entries for the currently selected media
// keys, in recently-added order.
func (s *State) SelectedItems() []digest.Item {
	s.mu.RLock()
	selected := make(map[string]bool, len(s.selectedMedia))
	for _, key := range s.selectedMedia {
		selected[key] = true
	}

	var machineID string
	if len(s.servers) > 0 {
		machineID = s.servers[0].MachineIdentifier
	}

	items := make([]digest.Item, 0, len(s.selectedMedia))
	for _, m := range s.recentlyAdded {
		if selected[m.Key] {
			items = append(items, digest.NewItem(s.server, machineID, m))
		}
	}
	s.mu.RUnlock()
	return items
}

// SendDigest dispatches the selected items to the named provider, falling
// back to the persisted provider selection when name is empty. An empty
// active-contact set aborts before any network call; the error is logged
// and returned.
func (s *State) SendDigest(ctx context.Context, name, subject, intro string) error {
	if name == "" {
		name = s.Provider()
	}

	provider, err := s.providers.Get(name)
	if err != nil {
		return err
	}

	req := digest.SendRequest{
		Items:      s.SelectedItems(),
		Recipients: s.ActiveContacts(),
		Subject:    subject,
		Intro:      intro,
	}

	if err := provider.Send(ctx, req); err != nil {
		s.log.ErrorContext(ctx, "digest send failed",
			logger.Provider(name),
			slog.Int("items", len(req.Items)),
			slog.Int("recipients", len(req.Recipients)),
			logger.Error(err),
		)
		return err
	}

	s.log.InfoContext(ctx, "digest sent",
		logger.Provider(name),
		slog.Int("items", len(req.Items)),
		slog.Int("recipients", len(req.Recipients)),
	)
	return nil
}
