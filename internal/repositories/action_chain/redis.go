package actionchain

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-spellchain/internal/redis"
)

const (
	// Key pattern: action_chain:{id}
	chainKeyPrefix = "action_chain:"
	chainIndexKey  = "action_chains"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis-backed chain repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Chain == nil {
		return nil, errors.InvalidArgument(errChainNil)
	}
	if input.Chain.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	now := r.clock.Now()
	rec := record{Chain: input.Chain, CreatedAt: now, UpdatedAt: now}

	existing, err := r.load(ctx, input.Chain.ID)
	created := true
	switch {
	case err == nil:
		rec.CreatedAt = existing.CreatedAt
		created = false
	case !errors.IsNotFound(err):
		return nil, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal chain")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, chainKeyPrefix+input.Chain.ID, data, 0)
	pipe.SAdd(ctx, chainIndexKey, input.Chain.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save chain")
	}

	return &SaveOutput{
		Chain:     input.Chain,
		Created:   created,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	rec, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{
		Chain:     rec.Chain,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, chainIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read chain index")
	}
	sort.Strings(ids)

	chains := make([]*actions.Chain, 0, len(ids))
	for _, id := range ids {
		rec, err := r.load(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "chain missing from store, cleaning up index",
					"chain_id", id)
				r.client.SRem(ctx, chainIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get chain %s", id)
		}
		if hasAffinity(rec.Chain, input.Affinity) {
			chains = append(chains, rec.Chain)
		}
	}

	return &ListOutput{Chains: chains}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errChainIDEmpty)
	}

	key := chainKeyPrefix + input.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("chain with ID %s not found", input.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, chainIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete chain")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*record, error) {
	raw, err := r.client.Get(ctx, chainKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("chain with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get chain")
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal chain")
	}
	if rec.Chain == nil {
		return nil, errors.Internalf("chain %s has no definition", id)
	}

	return &rec, nil
}
