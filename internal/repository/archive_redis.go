package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

const (
	roomKeyPrefix     = "room:"
	roomCodeKeyPrefix = "room-code:"

	snapshotField = "snapshot"
)

// saveNewerScript - stores the snapshot only when its version is newer than the stored one.
// KEYS[1] room key, ARGV[1] version, ARGV[2] snapshot json, ARGV[3] ttl in milliseconds (0 keeps the key forever).
var saveNewerScript = redis.NewScript(`
local stored = tonumber(redis.call('HGET', KEYS[1], 'version') or '-1')
if stored >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'snapshot', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

type redisArchive struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisArchive - ttl of zero keeps keys forever.
func NewRedisArchive(client *redis.Client, ttl time.Duration) RoomArchive {
	return &redisArchive{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisArchive) Reserve(ctx context.Context, code string) (bool, error) {
	ok, err := that.client.SetNX(ctx, roomCodeKeyPrefix+code, time.Now().Unix(), that.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve room code: %w", err)
	}

	return ok, nil
}

func (that *redisArchive) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	keys := []string{roomKeyPrefix + snapshot.Code}
	if err = saveNewerScript.Run(ctx, that.client, keys, snapshot.Version, snapshotJSON, that.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (that *redisArchive) Load(ctx context.Context, code string) (*entity.Snapshot, error) {
	response, err := that.client.HGet(ctx, roomKeyPrefix+code, snapshotField).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &snapshot, nil
}
