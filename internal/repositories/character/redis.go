package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/gurps-api/internal/redis"
)

const (
	characterKeyPrefix = "gurps:character:"
	playerIndexPrefix  = "gurps:character:player:"
	allIndexKey        = "gurps:character:index"

	// listFetchLimit bounds concurrent GETs while listing
	listFetchLimit = 8
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
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

func characterKey(id string) string {
	return characterKeyPrefix + id
}

func playerKey(playerID string) string {
	return playerIndexPrefix + playerID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, characterKey(input.Character.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	stored := stamp(input.Character, input.Character.CreatedAt, r.clock.Now().UTC())
	if err := r.save(ctx, stored, nil); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	c, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	existing, err := r.load(ctx, input.Character.ID)
	if err != nil {
		return nil, err
	}

	stored := stamp(input.Character, existing.CreatedAt, r.clock.Now().UTC())
	if err := r.save(ctx, stored, existing); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: stored}, nil
}

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	existing, err := r.load(ctx, input.Character.ID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	createdAt := input.Character.CreatedAt
	if existing != nil {
		createdAt = existing.CreatedAt
	}

	stored := stamp(input.Character, createdAt, r.clock.Now().UTC())
	if err := r.save(ctx, stored, existing); err != nil {
		return nil, errors.Wrapf(err, "failed to upsert character")
	}

	return &UpsertOutput{Character: stored, Created: existing == nil}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKey(input.ID))
	pipe.SRem(ctx, allIndexKey, input.ID)
	if existing.PlayerID != "" {
		pipe.SRem(ctx, playerKey(existing.PlayerID), input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerKey(input.PlayerID)
	slog.DebugContext(ctx, "listing characters by player index",
		"player_id", input.PlayerID,
		"index_key", indexKey)

	characters, err := r.listByIndex(ctx, indexKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list characters by player index",
			"player_id", input.PlayerID,
			"error", err.Error())
		return nil, err
	}

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func (r *redisRepository) ListIDs(ctx context.Context, _ ListIDsInput) (*ListIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, allIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list character ids")
	}
	sort.Strings(ids)
	return &ListIDsOutput{IDs: ids}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*gurps.Character, error) {
	result, err := r.client.Get(ctx, characterKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", id).WithMeta("character_id", id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var c gurps.Character
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal character %s", id)
	}
	return &c, nil
}

// save writes the blob and moves index memberships in one transaction
func (r *redisRepository) save(ctx context.Context, c, existing *gurps.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal character data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, characterKey(c.ID), data, 0)
	pipe.SAdd(ctx, allIndexKey, c.ID)

	oldPlayer := ""
	if existing != nil {
		oldPlayer = existing.PlayerID
	}
	if oldPlayer != c.PlayerID {
		if oldPlayer != "" {
			pipe.SRem(ctx, playerKey(oldPlayer), c.ID)
		}
		if c.PlayerID != "" {
			pipe.SAdd(ctx, playerKey(c.PlayerID), c.ID)
		}
	}

	_, err = pipe.Exec(ctx)
	return err
}

// listByIndex fetches every member of a set index concurrently. Members
// whose record is gone are dropped from the index.
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*gurps.Character, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}
	sort.Strings(ids)

	found := make([]*gurps.Character, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listFetchLimit)
	for i, id := range ids {
		g.Go(func() error {
			c, err := r.load(gctx, id)
			if errors.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "failed to get character %s", id)
			}
			found[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	characters := make([]*gurps.Character, 0, len(ids))
	for i, c := range found {
		if c == nil {
			slog.WarnContext(ctx, "character not found, cleaning up index",
				"character_id", ids[i],
				"index_key", indexKey)
			r.client.SRem(ctx, indexKey, ids[i])
			continue
		}
		characters = append(characters, c)
	}

	return characters, nil
}
