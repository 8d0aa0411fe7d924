package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// ErrTxConflict is returned when an optimistic transaction keeps losing to concurrent writers.
var ErrTxConflict = errors.New("transaction conflict")

// SetMember is one entry of an ordered set whose data lives under its own key.
type SetMember struct {
	Key  string
	Data interface{}
}

// UpdateFunc computes the next value of a key from its current one.
type UpdateFunc func(current string, found bool) (string, error)

// RedisClient defines the methods the venue DAOs need from Redis.
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	// UpdateValue applies fn to the value at key atomically and returns what was stored.
	UpdateValue(key string, fn UpdateFunc) (string, error)
	// ReplaceMembersWithJSON swaps the whole of setKey for members, scored by slice
	// index, in one transaction. Data of members dropped from the set is deleted.
	ReplaceMembersWithJSON(ctx context.Context, setKey string, members []SetMember) error
	GetMembersInOrder(setKey string) ([]string, error)
	GetContext() context.Context
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(key string) error
}
