package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"localgame-server/db"
	"localgame-server/models/venue"
)

const VENUES_CATALOG_KEY_V1 = "venues_catalog_v1"
const VENUES_CATALOG_MEMBER_FORMAT_V1 = "venues_catalog_member_v1:%s"

// LIVE_ACTIVITY_KEY_FORMAT is used to cache live check-in activity per venue.
const LIVE_ACTIVITY_KEY_FORMAT = "live_activity_v1:%s"
const LIVE_ACTIVITY_KEY_PREFIX = "live_activity_v1:"

// RedisVenueDAO handles venue catalog and live activity storage in Redis.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

// ReplaceCatalog swaps the stored catalog for venues, kept in slice order, in a single transaction.
func (dao *RedisVenueDAO) ReplaceCatalog(venues []venue.Venue) error {
	members := make([]db.SetMember, len(venues))
	for i, v := range venues {
		members[i] = db.SetMember{Key: fmt.Sprintf(VENUES_CATALOG_MEMBER_FORMAT_V1, v.ID), Data: v}
	}
	if err := dao.client.ReplaceMembersWithJSON(dao.client.GetContext(), VENUES_CATALOG_KEY_V1, members); err != nil {
		return fmt.Errorf("[RedisVenueDAO] failed to replace catalog: %w", err)
	}
	return nil
}

// ListVenues returns every stored venue in catalog order.
func (dao *RedisVenueDAO) ListVenues() ([]venue.Venue, error) {
	venuesJSON, err := dao.client.GetMembersInOrder(VENUES_CATALOG_KEY_V1)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]venue.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("[RedisVenueDAO] failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}

// SetLiveActivity caches the live activity for a venue by its ID.
func (dao *RedisVenueDAO) SetLiveActivity(a venue.LiveActivity) error {
	key := fmt.Sprintf(LIVE_ACTIVITY_KEY_FORMAT, a.VenueID)
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("[RedisVenueDAO] failed to marshal live activity for venue %s: %w", a.VenueID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("[RedisVenueDAO] failed to set live activity in redis: %w", err)
	}
	return nil
}

// GetLiveActivity retrieves the cached live activity for a venue.
// A cache miss returns (nil, nil).
func (dao *RedisVenueDAO) GetLiveActivity(venueID string) (*venue.LiveActivity, error) {
	key := fmt.Sprintf(LIVE_ACTIVITY_KEY_FORMAT, venueID)
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get live activity from redis: %w", err)
	}
	var a venue.LiveActivity
	if err := json.Unmarshal([]byte(str), &a); err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to unmarshal live activity JSON: %w", err)
	}
	return &a, nil
}

// UpdateLiveActivity applies update to the venue's cached activity as one optimistic transaction.
func (dao *RedisVenueDAO) UpdateLiveActivity(venueID string, update venue.ActivityUpdate) (venue.LiveActivity, error) {
	key := fmt.Sprintf(LIVE_ACTIVITY_KEY_FORMAT, venueID)
	stored, err := dao.client.UpdateValue(key, func(current string, found bool) (string, error) {
		var prev *venue.LiveActivity
		if found {
			prev = &venue.LiveActivity{}
			if err := json.Unmarshal([]byte(current), prev); err != nil {
				return "", fmt.Errorf("unmarshal live activity JSON: %w", err)
			}
		}
		next := update(prev)
		next.VenueID = venueID
		data, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("marshal live activity: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return venue.LiveActivity{}, fmt.Errorf("[RedisVenueDAO] failed to update live activity for venue %s: %w", venueID, err)
	}

	var a venue.LiveActivity
	if err := json.Unmarshal([]byte(stored), &a); err != nil {
		return venue.LiveActivity{}, fmt.Errorf("[RedisVenueDAO] failed to unmarshal live activity JSON: %w", err)
	}
	return a, nil
}

// ListLiveActivityVenueIDs returns the venue IDs for all cached live activity.
func (dao *RedisVenueDAO) ListLiveActivityVenueIDs() ([]string, error) {
	keys, err := dao.client.Keys(LIVE_ACTIVITY_KEY_PREFIX + "*")
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to list live activity keys: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, LIVE_ACTIVITY_KEY_PREFIX))
	}
	return ids, nil
}

func (dao *RedisVenueDAO) DeleteLiveActivity(venueID string) error {
	key := fmt.Sprintf(LIVE_ACTIVITY_KEY_FORMAT, venueID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("[RedisVenueDAO] failed to delete live activity key %s: %w", key, err)
	}
	return nil
}
