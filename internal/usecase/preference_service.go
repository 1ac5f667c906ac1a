package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safeeat/backend/internal/domain"
)

// suggestedIngredients are offered on the settings screen as one-tap additions
var suggestedIngredients = []string{
	"lök", "vitlök", "laktos", "gluten", "mjölk", "ägg", "nötter",
	"soja", "fisk", "skaldjur", "sesam", "selleri", "senap",
	"fruktsocker", "socker", "aspartam", "konserveringsmedel",
}

// PreferenceService persists the avoid-list in a key-value backend.
// The read-modify-write in AddIngredient and RemoveIngredient is not atomic;
// callers serialize access.
type PreferenceService struct {
	store    domain.KeyValueStore
	recorder domain.ScanRecorder
	log      *logrus.Entry
}

// NewPreferenceService creates a preference service over store.
// recorder may be nil.
func NewPreferenceService(store domain.KeyValueStore, recorder domain.ScanRecorder) *PreferenceService {
	return &PreferenceService{
		store:    store,
		recorder: recorder,
		log:      logrus.WithField("component", "preferences"),
	}
}

// GetAvoidList returns the stored avoid-list. A missing, unreadable or
// malformed value yields an empty list.
func (s *PreferenceService) GetAvoidList(ctx context.Context) []string {
	list, err := s.load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("treating stored avoid-list as empty")
		return []string{}
	}
	return list
}

func (s *PreferenceService) load(ctx context.Context) ([]string, error) {
	raw, found, err := s.store.Get(ctx, domain.AvoidedIngredientsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if !found || raw == "" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if list == nil {
		// stored JSON null
		list = []string{}
	}
	return list, nil
}

// Operation labels passed to the recorder
const (
	OpReplace = "replace"
	OpAdd     = "add"
	OpRemove  = "remove"
)

// SaveAvoidList overwrites the stored avoid-list
func (s *PreferenceService) SaveAvoidList(ctx context.Context, list []string) error {
	return s.save(ctx, OpReplace, list)
}

func (s *PreferenceService) save(ctx context.Context, op string, list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encoding avoid-list: %v", domain.ErrStorage, err)
	}

	err = s.store.Set(ctx, domain.AvoidedIngredientsKey, string(data))
	if s.recorder != nil {
		s.recorder.RecordPreferenceWrite(op, err)
	}
	if err != nil {
		s.log.WithError(err).WithField("op", op).Error("failed to save avoid-list")
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	s.log.WithField("count", len(list)).Debug("avoid-list saved")
	return nil
}

// AddIngredient appends the normalized term unless it is blank or already present
func (s *PreferenceService) AddIngredient(ctx context.Context, term string) error {
	normalized := NormalizeIngredient(term)
	if normalized == "" {
		return nil
	}

	current, err := s.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing == normalized {
			return nil
		}
	}

	return s.save(ctx, OpAdd, append(current, normalized))
}

// RemoveIngredient drops every entry equal to term. term is compared as given,
// so callers pass the normalized form stored in the list.
func (s *PreferenceService) RemoveIngredient(ctx context.Context, term string) error {
	current, err := s.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	updated := make([]string, 0, len(current))
	for _, existing := range current {
		if existing != term {
			updated = append(updated, existing)
		}
	}
	return s.save(ctx, OpRemove, updated)
}

// loadForUpdate reads the list ahead of a write. A malformed value reads as
// empty; a storage error aborts the write.
func (s *PreferenceService) loadForUpdate(ctx context.Context) ([]string, error) {
	list, err := s.load(ctx)
	if err == nil {
		return list, nil
	}
	if errors.Is(err, domain.ErrStorage) {
		s.log.WithError(err).Error("failed to read avoid-list before update")
		return nil, err
	}
	s.log.WithError(err).Warn("treating stored avoid-list as empty")
	return []string{}, nil
}

// Health reports whether the preference backend is reachable
func (s *PreferenceService) Health(ctx context.Context) error {
	if err := s.store.Health(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

// SuggestedIngredients returns common ingredients users tend to avoid
func (s *PreferenceService) SuggestedIngredients() []string {
	out := make([]string, len(suggestedIngredients))
	copy(out, suggestedIngredients)
	return out
}
