package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/logging"
	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
	"github.com/zhouzirui/dexter-show/backend/internal/service/events"
)

// Publisher receives catalog change events.
type Publisher interface {
	Publish(events.Event)
}

// Service orchestrates catalog reads and writes on top of a Store.
type Service struct {
	store     catalog.Store
	publisher Publisher
	logger    *zap.Logger
}

// NewService wires the catalog service. publisher and logger may be nil.
func NewService(store catalog.Store, publisher Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger.Named("catalog"),
	}
}

// ListCharacters returns the full character collection.
func (s *Service) ListCharacters(_ context.Context) []catalog.Character {
	return s.store.ListCharacters()
}

// GetCharacter returns a single character.
func (s *Service) GetCharacter(_ context.Context, id int) (catalog.Character, error) {
	return s.store.FindCharacter(id)
}

// CreateCharacter stores a new character and announces it.
func (s *Service) CreateCharacter(ctx context.Context, input catalog.CharacterInput) catalog.Character {
	created := s.store.CreateCharacter(input)
	logging.WithRequest(ctx, s.logger).Info("character created",
		zap.Int("character_id", created.ID),
		zap.String("status", created.Status),
	)
	s.publish(events.TypeCharacterCreated, created)
	return created
}

// UpdateCharacter replaces a character's name and status.
func (s *Service) UpdateCharacter(ctx context.Context, id int, input catalog.CharacterInput) (catalog.Character, error) {
	updated, err := s.store.UpdateCharacter(id, input)
	if err != nil {
		return catalog.Character{}, err
	}
	logging.WithRequest(ctx, s.logger).Info("character updated",
		zap.Int("character_id", updated.ID),
		zap.String("status", updated.Status),
	)
	s.publish(events.TypeCharacterUpdated, updated)
	return updated, nil
}

// DeleteCharacter removes a character. Season mappings keep the stale id.
func (s *Service) DeleteCharacter(ctx context.Context, id int) (catalog.Character, error) {
	removed, err := s.store.DeleteCharacter(id)
	if err != nil {
		return catalog.Character{}, err
	}
	logging.WithRequest(ctx, s.logger).Info("character deleted", zap.Int("character_id", removed.ID))
	s.publish(events.TypeCharacterDeleted, removed)
	return removed, nil
}

// ListSeasons returns the season numbers.
func (s *Service) ListSeasons(_ context.Context) []catalog.SeasonSummary {
	return s.store.ListSeasons()
}

// CharactersBySeason returns the live characters of a season.
func (s *Service) CharactersBySeason(_ context.Context, number int) ([]catalog.Character, error) {
	return s.store.CharactersBySeason(number)
}

func (s *Service) publish(eventType string, character catalog.Character) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.NewEvent(eventType, character))
}
