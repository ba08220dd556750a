package ragconfig

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

const defaultTTL = 60 * time.Second

// Store serves retrieval parameters with a TTL cache in front of the
// repository. Construction seeds any missing catalog keys with defaults.
type Store struct {
	repo   storage.ConfigRepository
	cache  *entryCache
	logger *slog.Logger
	clock  func() time.Time
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store) error

// WithTTL sets the cache TTL. Default is 60 seconds.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) error {
		if ttl <= 0 {
			return fmt.Errorf("%w: ttl must be positive", ErrInvalidValue)
		}
		s.ttl = ttl
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock overrides the time source, used by tests to age the cache.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) error {
		if clock != nil {
			s.clock = clock
		}
		return nil
	}
}

// NewStore creates a configuration store and seeds defaults for any catalog
// key the repository does not hold yet.
func NewStore(ctx context.Context, repo storage.ConfigRepository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrConfigRepositoryRequired
	}

	s := &Store{
		repo:   repo,
		logger: slog.Default(),
		clock:  time.Now,
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "ragconfig")
	s.cache = newEntryCache(s.ttl, s.clock)

	if err := s.seedDefaults(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) seedDefaults(ctx context.Context) error {
	for _, def := range defaultEntries {
		_, err := s.repo.GetConfigEntry(ctx, def.Key)
		if err == nil {
			continue
		}
		if err != storage.ErrNotFound {
			return err
		}
		entry := def
		entry.UpdatedAt = s.clock().UTC()
		if err := s.repo.PutConfigEntry(ctx, &entry); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the entry for key, serving from the cache when fresh.
func (s *Store) Get(ctx context.Context, key string) (core.ConfigEntry, error) {
	if entry, ok := s.cache.get(key); ok {
		return entry, nil
	}

	entries, err := s.reload(ctx)
	if err != nil {
		return core.ConfigEntry{}, err
	}
	entry, ok := entries[key]
	if !ok {
		return core.ConfigEntry{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return entry, nil
}

func (s *Store) reload(ctx context.Context) (map[string]core.ConfigEntry, error) {
	list, err := s.repo.ListConfigEntries(ctx)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]core.ConfigEntry, len(list))
	for _, e := range list {
		entries[e.Key] = *e
	}
	s.cache.fill(entries)
	return entries, nil
}

// GetInt returns the integer value for key, falling back to the catalog
// default when the stored value is unreadable.
func (s *Store) GetInt(ctx context.Context, key string) int {
	entry, err := s.Get(ctx, key)
	if err == nil {
		if v, perr := strconv.Atoi(entry.Value); perr == nil {
			return v
		}
	}
	def, ok := defaultEntry(key)
	if !ok {
		return 0
	}
	s.logger.Warn("falling back to default config value", "key", key, "err", err)
	v, _ := strconv.Atoi(def.Value)
	return v
}

// GetFloat returns the float value for key, falling back to the catalog
// default when the stored value is unreadable.
func (s *Store) GetFloat(ctx context.Context, key string) float64 {
	entry, err := s.Get(ctx, key)
	if err == nil {
		if v, perr := strconv.ParseFloat(entry.Value, 64); perr == nil {
			return v
		}
	}
	def, ok := defaultEntry(key)
	if !ok {
		return 0
	}
	s.logger.Warn("falling back to default config value", "key", key, "err", err)
	v, _ := strconv.ParseFloat(def.Value, 64)
	return v
}

// GetString returns the string value for key, falling back to the catalog
// default when the key is unreadable.
func (s *Store) GetString(ctx context.Context, key string) string {
	entry, err := s.Get(ctx, key)
	if err == nil {
		return entry.Value
	}
	def, ok := defaultEntry(key)
	if !ok {
		return ""
	}
	s.logger.Warn("falling back to default config value", "key", key, "err", err)
	return def.Value
}

// Settings is a point-in-time view of every retrieval parameter, read once
// per operation so one request never mixes two configurations.
type Settings struct {
	ChunkSize      int
	ChunkOverlap   int
	ChunkingMethod string
	TopK           int
	MinSimilarity  float64
	MinHybridScore float64
	VectorWeight   float64
	LexicalWeight  float64
}

// Settings reads all parameters from one cache snapshot. A stale cache is
// reloaded once; unreadable values fall back to their catalog defaults.
func (s *Store) Settings(ctx context.Context) Settings {
	entries, ok := s.cache.snapshot()
	if !ok {
		reloaded, err := s.reload(ctx)
		if err != nil {
			s.logger.Warn("serving default settings", "err", err)
		}
		entries = reloaded
	}
	return Settings{
		ChunkSize:      intFrom(entries, KeyChunkSize),
		ChunkOverlap:   intFrom(entries, KeyChunkOverlap),
		ChunkingMethod: stringFrom(entries, KeyChunkingMethod),
		TopK:           intFrom(entries, KeyTopK),
		MinSimilarity:  floatFrom(entries, KeyMinSimilarity),
		MinHybridScore: floatFrom(entries, KeyMinHybridScore),
		VectorWeight:   floatFrom(entries, KeyVectorWeight),
		LexicalWeight:  floatFrom(entries, KeyLexicalWeight),
	}
}

func intFrom(entries map[string]core.ConfigEntry, key string) int {
	if e, ok := entries[key]; ok {
		if v, err := strconv.Atoi(e.Value); err == nil {
			return v
		}
	}
	def, _ := defaultEntry(key)
	v, _ := strconv.Atoi(def.Value)
	return v
}

func floatFrom(entries map[string]core.ConfigEntry, key string) float64 {
	if e, ok := entries[key]; ok {
		if v, err := strconv.ParseFloat(e.Value, 64); err == nil {
			return v
		}
	}
	def, _ := defaultEntry(key)
	v, _ := strconv.ParseFloat(def.Value, 64)
	return v
}

func stringFrom(entries map[string]core.ConfigEntry, key string) string {
	if e, ok := entries[key]; ok {
		return e.Value
	}
	def, _ := defaultEntry(key)
	return def.Value
}

// UpdateResult reports the outcome for one key of an update batch.
type UpdateResult struct {
	Key      string
	OldValue string
	NewValue string
	Applied  bool
	Err      error
}

// Update applies a batch of key/value updates with per-key validation.
// Invalid keys fail individually; valid keys in the same batch still apply.
// Any applied change invalidates the whole cache and appends a history row.
func (s *Store) Update(ctx context.Context, updates map[string]string, changedBy string) []UpdateResult {
	results := make([]UpdateResult, 0, len(updates))
	applied := false

	for key, value := range updates {
		result := UpdateResult{Key: key, NewValue: value}

		def, ok := defaultEntry(key)
		if !ok {
			result.Err = fmt.Errorf("%w: %s", ErrUnknownKey, key)
			results = append(results, result)
			continue
		}

		current, err := s.repo.GetConfigEntry(ctx, key)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}
		result.OldValue = current.Value

		if err := validateValue(def, value); err != nil {
			result.Err = err
			s.logger.Warn("rejected config update", "key", key, "value", value, "err", err)
			results = append(results, result)
			continue
		}

		entry := *current
		entry.Value = value
		entry.UpdatedAt = s.clock().UTC()
		entry.UpdatedBy = changedBy
		if err := s.repo.PutConfigEntry(ctx, &entry); err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		if _, err := s.repo.AppendConfigChange(ctx, &core.ConfigChange{
			Key:       key,
			OldValue:  current.Value,
			NewValue:  value,
			ChangedBy: changedBy,
			ChangedAt: s.clock().UTC(),
		}); err != nil {
			s.logger.Error("failed to append config history", "key", key, "err", err)
		}

		result.Applied = true
		applied = true
		s.logger.Info("config updated", "key", key, "old", current.Value, "new", value, "by", changedBy)
		results = append(results, result)
	}

	if applied {
		s.cache.invalidate()
	}
	return results
}

// History returns the change history, newest first. An empty key returns
// history across all keys.
func (s *Store) History(ctx context.Context, key string, limit int) ([]*core.ConfigChange, error) {
	return s.repo.ListConfigChanges(ctx, key, limit)
}

// ResetToDefaults rewrites every catalog key to its default value, recording
// a history row for each key that actually changes.
func (s *Store) ResetToDefaults(ctx context.Context, changedBy string) error {
	for _, def := range defaultEntries {
		current, err := s.repo.GetConfigEntry(ctx, def.Key)
		if err != nil && err != storage.ErrNotFound {
			return err
		}

		entry := def
		entry.UpdatedAt = s.clock().UTC()
		entry.UpdatedBy = changedBy
		if err := s.repo.PutConfigEntry(ctx, &entry); err != nil {
			return err
		}

		if current != nil && current.Value != def.Value {
			if _, err := s.repo.AppendConfigChange(ctx, &core.ConfigChange{
				Key:       def.Key,
				OldValue:  current.Value,
				NewValue:  def.Value,
				ChangedBy: changedBy,
				ChangedAt: s.clock().UTC(),
			}); err != nil {
				s.logger.Error("failed to append config history", "key", def.Key, "err", err)
			}
		}
	}
	s.cache.invalidate()
	return nil
}

// validateValue checks a proposed value against the key's type and bounds.
func validateValue(def core.ConfigEntry, value string) error {
	switch def.Type {
	case core.ConfigTypeInt:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s is not an integer", ErrInvalidValue, value)
		}
		if def.HasBounds && (float64(v) < def.Min || float64(v) > def.Max) {
			return fmt.Errorf("%w: %s must be between %g and %g", ErrOutOfBounds, def.Key, def.Min, def.Max)
		}
	case core.ConfigTypeFloat:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s is not a number", ErrInvalidValue, value)
		}
		if def.HasBounds && (v < def.Min || v > def.Max) {
			return fmt.Errorf("%w: %s must be between %g and %g", ErrOutOfBounds, def.Key, def.Min, def.Max)
		}
	case core.ConfigTypeString:
		if def.Key == KeyChunkingMethod {
			switch value {
			case "fixed", "paragraph", "sentence":
			default:
				return fmt.Errorf("%w: unknown chunking method %q", ErrInvalidValue, value)
			}
		}
	}
	return nil
}
