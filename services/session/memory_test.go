package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"clearcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUnknownTokenIsNotReturning(t *testing.T) {
	store := NewMemoryStore()

	sc, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.False(t, sc.IsReturning)
	assert.Empty(t, sc.ZipCode)
}

func TestMemoryStorePutThenGet(t *testing.T) {
	store := NewMemoryStore()

	err := store.Put(context.Background(), "tok", &models.SessionContext{
		InsuranceInput: "Cigna PPO",
		ZipCode:        "10001",
		Greeting:       "Welcome back. Using your Cigna PPO plan.",
	})
	require.NoError(t, err)

	sc, err := store.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, sc.IsReturning)
	assert.Equal(t, "Cigna PPO", sc.InsuranceInput)
	assert.Equal(t, "10001", sc.ZipCode)
	assert.False(t, sc.UpdatedAt.IsZero())
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Put(context.Background(), "tok", &models.SessionContext{ZipCode: "10001"}))
	require.NoError(t, store.Delete(context.Background(), "tok"))
	require.NoError(t, store.Delete(context.Background(), "tok"))

	sc, err := store.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, sc.IsReturning)
}

func TestMemoryStoreNoCrossTokenInterference(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Put(context.Background(), "a", &models.SessionContext{ZipCode: "11111"}))
	require.NoError(t, store.Put(context.Background(), "b", &models.SessionContext{ZipCode: "22222"}))
	require.NoError(t, store.Delete(context.Background(), "a"))

	sc, err := store.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, sc.IsReturning)
	assert.Equal(t, "22222", sc.ZipCode)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Four shared tokens so writes genuinely overlap.
			token := fmt.Sprintf("tok-%d", i%4)
			for j := 0; j < 50; j++ {
				_ = store.Put(ctx, token, &models.SessionContext{ZipCode: fmt.Sprintf("%05d", j)})
				sc, err := store.Get(ctx, token)
				assert.NoError(t, err)
				assert.NotNil(t, sc)
				_ = store.Delete(ctx, token)
			}
		}(i)
	}
	wg.Wait()
}
