package db_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localgame-server/db"
)

// Test the Set and Get methods of the RedisClient implementations
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// A CatalogRedisClient backed by a live Redis can be added here for integration runs.
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get("missing-key")
			assert.ErrorIs(t, err, db.ErrKeyNotFound)
		})
	}
}

func memberIDs(t *testing.T, client db.RedisClient, setKey string) []string {
	t.Helper()
	results, err := client.GetMembersInOrder(setKey)
	require.NoError(t, err)

	var got []string
	for _, raw := range results {
		var m map[string]string
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		got = append(got, m["id"])
	}
	return got
}

func TestRedisClient_ReplaceMembersKeepsSliceOrder(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	require.NoError(t, client.ReplaceMembersWithJSON(context.Background(), "venues", []db.SetMember{
		{Key: "venue:b", Data: map[string]string{"id": "b"}},
		{Key: "venue:a", Data: map[string]string{"id": "a"}},
		{Key: "venue:c", Data: map[string]string{"id": "c"}},
	}))

	assert.Equal(t, []string{"b", "a", "c"}, memberIDs(t, client, "venues"))
}

func TestRedisClient_ReplaceMembersDropsOldData(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	require.NoError(t, client.ReplaceMembersWithJSON(ctx, "venues", []db.SetMember{
		{Key: "venue:old", Data: map[string]string{"id": "old"}},
		{Key: "venue:a", Data: map[string]string{"id": "a"}},
	}))
	require.NoError(t, client.ReplaceMembersWithJSON(ctx, "venues", []db.SetMember{
		{Key: "venue:a", Data: map[string]string{"id": "a2"}},
	}))

	assert.Equal(t, []string{"a2"}, memberIDs(t, client, "venues"))
	_, err := client.Get("venue:old")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)

	require.NoError(t, client.ReplaceMembersWithJSON(ctx, "venues", nil))
	assert.Empty(t, memberIDs(t, client, "venues"))
	_, err = client.Get("venue:a")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisClient_UpdateValueIsAtomic(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	increment := func(current string, found bool) (string, error) {
		n := 0
		if found {
			var err error
			if n, err = strconv.Atoi(current); err != nil {
				return "", err
			}
		}
		return strconv.Itoa(n + 1), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.UpdateValue("counter", increment)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := client.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, "100", got)
}

func TestRedisClient_UpdateValueErrorLeavesKey(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("k", "v"))

	_, err := client.UpdateValue("k", func(string, bool) (string, error) {
		return "", errors.New("boom")
	})
	assert.Error(t, err)

	got, err := client.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("live_activity_v1:v1", "{}"))
	require.NoError(t, client.Set("live_activity_v1:v2", "{}"))
	require.NoError(t, client.Set("other", "x"))

	keys, err := client.Keys("live_activity_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"live_activity_v1:v1", "live_activity_v1:v2"}, keys)

	require.NoError(t, client.Del("live_activity_v1:v1"))
	keys, err = client.Keys("live_activity_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"live_activity_v1:v2"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient(context.Background()).Ping())
}
