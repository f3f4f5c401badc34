package catalog

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is matched by every lookup failure in the catalog.
	ErrNotFound          = errors.New("not found")
	ErrCharacterNotFound = fmt.Errorf("character %w", ErrNotFound)
	ErrSeasonNotFound    = fmt.Errorf("season %w", ErrNotFound)
)

// Store exposes the character and season collections to services and handlers.
type Store interface {
	ListCharacters() []Character
	FindCharacter(id int) (Character, error)
	CreateCharacter(input CharacterInput) Character
	UpdateCharacter(id int, input CharacterInput) (Character, error)
	DeleteCharacter(id int) (Character, error)
	ListSeasons() []SeasonSummary
	FindSeason(number int) (Season, error)
	CharactersBySeason(number int) ([]Character, error)
}

// MemoryStore implements Store with in-memory slices guarded by a single lock.
// Deleting a character leaves its id in season mappings; reads filter it out.
//
// New ids come from a counter that starts at max(seed ids)+1 and never moves
// backwards. This intentionally differs from a plain max(existing)+1: after
// the highest character is deleted its id is not handed out again, so every
// created id is greater than any id assigned before it.
type MemoryStore struct {
	mu         sync.RWMutex
	characters []Character
	seasons    []Season
	nextID     int
}

// NewMemoryStore returns a MemoryStore preloaded with a copy of seed.
func NewMemoryStore(seed Seed) *MemoryStore {
	s := &MemoryStore{
		characters: make([]Character, 0, len(seed.Characters)),
		seasons:    make([]Season, 0, len(seed.Seasons)),
		nextID:     1,
	}
	for _, c := range seed.Characters {
		s.characters = append(s.characters, c)
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	for _, season := range seed.Seasons {
		s.seasons = append(s.seasons, Season{
			Number:       season.Number,
			CharacterIDs: append([]int(nil), season.CharacterIDs...),
		})
	}
	return s
}

// ListCharacters returns every character in insertion order.
func (s *MemoryStore) ListCharacters() []Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Character, 0, len(s.characters)), s.characters...)
}

// FindCharacter looks up a character by id.
func (s *MemoryStore) FindCharacter(id int) (Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.characters[i], nil
	}
	return Character{}, fmt.Errorf("%w: id %d", ErrCharacterNotFound, id)
}

// CreateCharacter appends a new character with the next free id.
func (s *MemoryStore) CreateCharacter(input CharacterInput) Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	// nextID never moves backwards, so an id freed by a delete is not handed out again.
	if floor := s.maxID() + 1; floor > s.nextID {
		s.nextID = floor
	}
	created := Character{ID: s.nextID, Name: input.Name, Status: input.Status}
	s.nextID++
	s.characters = append(s.characters, created)
	return created
}

// UpdateCharacter replaces name and status of an existing character in place.
func (s *MemoryStore) UpdateCharacter(id int, input CharacterInput) (Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Character{}, fmt.Errorf("%w: id %d", ErrCharacterNotFound, id)
	}
	s.characters[i] = Character{ID: id, Name: input.Name, Status: input.Status}
	return s.characters[i], nil
}

// DeleteCharacter removes a character and returns the removed record.
func (s *MemoryStore) DeleteCharacter(id int) (Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Character{}, fmt.Errorf("%w: id %d", ErrCharacterNotFound, id)
	}
	removed := s.characters[i]
	s.characters = append(s.characters[:i], s.characters[i+1:]...)
	return removed, nil
}

// ListSeasons returns the season numbers in seed order.
func (s *MemoryStore) ListSeasons() []SeasonSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SeasonSummary, 0, len(s.seasons))
	for _, season := range s.seasons {
		out = append(out, SeasonSummary{Season: season.Number})
	}
	return out
}

// FindSeason looks up a season by number.
func (s *MemoryStore) FindSeason(number int) (Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, season := range s.seasons {
		if season.Number == number {
			return Season{
				Number:       season.Number,
				CharacterIDs: append([]int(nil), season.CharacterIDs...),
			}, nil
		}
	}
	return Season{}, fmt.Errorf("%w: season %d", ErrSeasonNotFound, number)
}

// CharactersBySeason returns the characters referenced by a season, in
// collection order. Ids without a matching character are skipped.
func (s *MemoryStore) CharactersBySeason(number int) ([]Character, error) {
	season, err := s.FindSeason(number)
	if err != nil {
		return nil, err
	}

	out := make([]Character, 0, len(season.CharacterIDs))
	if len(season.CharacterIDs) == 0 {
		return out, nil
	}

	wanted := make(map[int]struct{}, len(season.CharacterIDs))
	for _, id := range season.CharacterIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.characters {
		if _, ok := wanted[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) indexOf(id int) int {
	for i, c := range s.characters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) maxID() int {
	highest := 0
	for _, c := range s.characters {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest
}
