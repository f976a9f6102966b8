package seats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"busline/internal/shared/apperrors"
	"busline/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AtomicSeatHolds handles atomic redis operations for temporary seat holds.
// A hold keeps a seat off the market for one user while they complete the
// booking flow; the database ledger stays authoritative for actual claims.
type AtomicSeatHolds struct {
	redis *redis.Client
}

// NewAtomicSeatHolds creates a new atomic seat hold handler
func NewAtomicSeatHolds(redisClient *redis.Client) *AtomicSeatHolds {
	return &AtomicSeatHolds{
		redis: redisClient,
	}
}

// Lua script for atomic seat holding - prevents race conditions between two
// users holding the same seat. Re-holding by the same user refreshes the TTL.
const luaAtomicSeatHold = `
-- KEYS[1] = seat hold key
-- ARGV[1] = user_id
-- ARGV[2] = ttl_seconds

local holder = redis.call("GET", KEYS[1])
if holder and holder ~= ARGV[1] then
    return {0, holder}
end

redis.call("SETEX", KEYS[1], tonumber(ARGV[2]), ARGV[1])
return {1, "ok"}
`

// Lua script for atomic hold release - only the holder may release
const luaAtomicHoldRelease = `
-- KEYS[1] = seat hold key
-- ARGV[1] = user_id

local holder = redis.call("GET", KEYS[1])
if holder == ARGV[1] then
    redis.call("DEL", KEYS[1])
    return 1
end
return 0
`

// HoldSeat atomically holds a seat for a user. Fails with
// apperrors.ErrSeatUnavailable when another user already holds it.
func (a *AtomicSeatHolds) HoldSeat(ctx context.Context, seatID uuid.UUID, userID string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildSeatHoldKey(seatID.String())}
	args := []interface{}{userID, strconv.Itoa(int(ttl.Seconds()))}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatHold, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicSeatHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		return fmt.Errorf("seat %s held by another user: %w", seatID, apperrors.ErrSeatUnavailable)
	}

	return nil
}

// ReleaseHold atomically releases a hold if the user owns it. Releasing a
// hold that expired or never existed is not an error.
func (a *AtomicSeatHolds) ReleaseHold(ctx context.Context, seatID uuid.UUID, userID string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildSeatHoldKey(seatID.String())}

	_, err := a.redis.EvalSha(ctx, luaAtomicHoldRelease, keys, userID).Result()
	if err != nil {
		_, err = a.redis.Eval(ctx, luaAtomicHoldRelease, keys, userID).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic hold release: %w", err)
		}
	}

	return nil
}

// HolderOf returns the user id currently holding a seat, or "" when unheld.
func (a *AtomicSeatHolds) HolderOf(ctx context.Context, seatID uuid.UUID) (string, error) {
	if a.redis == nil {
		return "", nil
	}

	holder, err := a.redis.Get(ctx, constants.BuildSeatHoldKey(seatID.String())).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read seat hold: %w", err)
	}
	return holder, nil
}

// HeldSeats returns the holder for each held seat in the given set.
func (a *AtomicSeatHolds) HeldSeats(ctx context.Context, seatIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	held := make(map[uuid.UUID]string)
	if a.redis == nil || len(seatIDs) == 0 {
		return held, nil
	}

	keys := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		keys[i] = constants.BuildSeatHoldKey(id.String())
	}

	values, err := a.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read seat holds: %w", err)
	}

	for i, v := range values {
		if holder, ok := v.(string); ok && holder != "" {
			held[seatIDs[i]] = holder
		}
	}
	return held, nil
}

// HoldTTL returns the remaining duration of a seat's hold, zero when unheld.
func (a *AtomicSeatHolds) HoldTTL(ctx context.Context, seatID uuid.UUID) (time.Duration, error) {
	if a.redis == nil {
		return 0, nil
	}

	ttl, err := a.redis.TTL(ctx, constants.BuildSeatHoldKey(seatID.String())).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read hold ttl: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// PreloadScripts loads Lua scripts into redis for better performance
func (a *AtomicSeatHolds) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicSeatHold).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicHoldRelease).Result(); err != nil {
		return fmt.Errorf("failed to load hold release script: %w", err)
	}

	return nil
}
