package executionhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-spellchain/internal/redis"
)

const (
	// Key pattern: execution_history:{caster_id}
	historyKeyPrefix = "execution_history:"

	// DefaultTTL is used when neither the append nor the config sets one
	DefaultTTL = 24 * time.Hour
	// DefaultMaxEntries caps the entries kept per caster
	DefaultMaxEntries = 50

	// Error messages
	errCasterIDEmpty = "caster ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	Clock      clock.Clock
	TTL        time.Duration
	MaxEntries int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	if c.TTL < 0 {
		vb.InvalidField("ttl", "cannot be negative")
	}
	if c.MaxEntries < 0 {
		vb.InvalidField("max_entries", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	ttl        time.Duration
	maxEntries int
}

// NewRedisRepository creates a new Redis repository for execution history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		ttl:        ttl,
		maxEntries: maxEntries,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append adds an entry and refreshes the TTL
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.CasterID == "" {
		return nil, errors.InvalidArgument(errCasterIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	history := &History{
		CasterID:  input.CasterID,
		CreatedAt: now,
	}

	existing, err := r.Get(ctx, GetInput{CasterID: input.CasterID})
	switch {
	case err == nil:
		history = existing.History
	case !errors.IsNotFound(err):
		return nil, err
	}

	entry := input.Entry
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = now
	}
	history.Entries = append(history.Entries, entry)
	if len(history.Entries) > r.maxEntries {
		history.Entries = history.Entries[len(history.Entries)-r.maxEntries:]
	}
	history.ExpiresAt = now.Add(ttl)

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal history")
	}

	key := r.buildKey(input.CasterID)
	if err := r.client.Set(ctx, key, historyJSON, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store history in Redis")
	}

	return &AppendOutput{History: history}, nil
}

// Get retrieves the history for a caster
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CasterID == "" {
		return nil, errors.InvalidArgument(errCasterIDEmpty)
	}

	key := r.buildKey(input.CasterID)

	historyJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no execution history for caster %s", input.CasterID)
		}
		return nil, errors.Wrapf(err, "failed to get history from Redis")
	}

	var history History
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal history")
	}

	// Redis expiry and the injected clock can disagree
	if r.clock.Now().After(history.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("execution history for caster %s has expired", input.CasterID)
	}

	return &GetOutput{History: &history}, nil
}

// Delete removes the history for a caster
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CasterID == "" {
		return nil, errors.InvalidArgument(errCasterIDEmpty)
	}

	key := r.buildKey(input.CasterID)

	getOutput, err := r.Get(ctx, GetInput(input))

	var entriesDeleted int32
	if err == nil && getOutput.History != nil {
		// nolint:gosec // capped by maxEntries
		entriesDeleted = int32(len(getOutput.History.Entries))
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete history from Redis")
	}

	return &DeleteOutput{EntriesDeleted: entriesDeleted}, nil
}

func (r *redisRepository) buildKey(casterID string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, casterID)
}
