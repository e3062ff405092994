package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"commfeed/internal/models"

	"go.uber.org/zap"
)

// ErrMalformedStore is returned when the persisted bytes do not decode as a document.
var ErrMalformedStore = errors.New("malformed store")

// Store keeps the whole feed document under one slot key.
type Store struct {
	slots  Slots
	key    string
	logger *zap.Logger
}

func NewStore(slots Slots, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slots: slots, key: key, logger: logger}
}

// Initialize writes the seed document if the slot is empty. An existing document is never touched.
func (s *Store) Initialize(ctx context.Context) error {
	_, _, err := s.slots.Get(ctx, s.key)
	if err == nil {
		s.logger.Debug("Document already initialized, skipping", zap.String("key", s.key))
		return nil
	}
	if !errors.Is(err, ErrSlotNotFound) {
		return err
	}

	raw, err := encode(SeedDocument())
	if err != nil {
		return err
	}
	if _, err := s.slots.Put(ctx, s.key, raw, 0); err != nil {
		if errors.Is(err, ErrConflict) {
			// another writer created it first
			return nil
		}
		return fmt.Errorf("initialize %s: %w", s.key, err)
	}
	s.logger.Info("Seed document created", zap.String("key", s.key))
	return nil
}

// Load returns the current document. A missing slot is seeded and persisted first.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	raw, rev, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, ErrSlotNotFound) {
		if err := s.Initialize(ctx); err != nil {
			return nil, err
		}
		raw, rev, err = s.slots.Get(ctx, s.key)
	}
	if err != nil {
		return nil, err
	}

	doc, err := decode(raw)
	if err != nil {
		s.logger.Error("Stored document does not decode", zap.String("key", s.key), zap.Error(err))
		return nil, err
	}
	doc.Revision = rev
	return doc, nil
}

// Save replaces the stored document. doc.Revision must match the stored revision or
// ErrConflict is returned; on success doc.Revision is advanced. Saving bytes identical to
// what is stored writes nothing.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	raw, err := encode(doc)
	if err != nil {
		return err
	}

	current, rev, err := s.slots.Get(ctx, s.key)
	switch {
	case errors.Is(err, ErrSlotNotFound):
		rev = 0
	case err != nil:
		return err
	}
	if rev != doc.Revision {
		return fmt.Errorf("save %s at revision %d, stored %d: %w", s.key, doc.Revision, rev, ErrConflict)
	}
	if rev != 0 && bytes.Equal(current, raw) {
		return nil
	}

	next, err := s.slots.Put(ctx, s.key, raw, doc.Revision)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return fmt.Errorf("save %s at revision %d: %w", s.key, doc.Revision, err)
		}
		return err
	}
	doc.Revision = next
	return nil
}

func encode(doc *models.Document) ([]byte, error) {
	doc.Normalize()
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// documentKeys must all be present in a stored document. A null collection reads as empty.
var documentKeys = []string{"posts", "users", "communities"}

func decode(raw []byte) (*models.Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedStore)
	}
	for _, key := range documentKeys {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedStore, key)
		}
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	doc.Normalize()
	return &doc, nil
}
