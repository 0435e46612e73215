package main

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/hexclash/engine/internal/game"
)

// gameStore is the wrapper's in-memory table of live games, keyed by the
// uuid minted at creation: the core itself assigns no id and defines no
// on-disk format beyond the Snapshot document, leaving storage entirely
// to the collaborator. Grounded on the teacher's repository.GameRepository
// (internal/repository), a mutex-guarded map serving the same role.
type gameStore struct {
	mu    sync.Mutex
	games map[string]*game.Game
}

func newGameStore() *gameStore {
	return &gameStore{games: make(map[string]*game.Game)}
}

// create mints a fresh uuid for both the game id and its RNG seed. The
// seed only needs to be reproducible from the stored Snapshot, never
// guessable, so deriving it from a second uuid is enough.
func (s *gameStore) create(playerCount int, civilizations []string) *game.Game {
	id := uuid.NewString()
	seedBytes := uuid.New()
	seed := int64(binary.BigEndian.Uint64(seedBytes[:8]))

	g := game.NewGame(id, playerCount, seed, demoSetup(civilizations))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = g
	return g
}

func (s *gameStore) get(id string) (*game.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

// withLock runs fn holding the store's lock, which the dispatcher
// requires for exclusive ownership of the game for the duration of one
// Execute call.
func (s *gameStore) withLock(id string, fn func(g *game.Game) error) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, errGameNotFound
	}
	if err := fn(g); err != nil {
		return g, err
	}
	return g, nil
}
