package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		c := New[int32, string](0)

		_, ok := c.Get(1)
		assert.False(t, ok)

		c.Set(1, "Lain")
		v, ok := c.Get(1)
		assert.True(t, ok)
		assert.Equal(t, "Lain", v)

		c.Set(1, "Serial Experiments Lain")
		v, _ = c.Get(1)
		assert.Equal(t, "Serial Experiments Lain", v)
		assert.Equal(t, 1, c.Size())
	})

	t.Run("take", func(t *testing.T) {
		c := New[int32, string](0)
		c.Set(1, "Lain")

		v, ok := c.Take(1)
		assert.True(t, ok)
		assert.Equal(t, "Lain", v)

		_, ok = c.Take(1)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Size())
	})

	t.Run("take is exclusive", func(t *testing.T) {
		c := New[int32, string](0)
		c.Set(1, "Lain")

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			taken int
		)
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok := c.Take(1); ok {
					mu.Lock()
					taken++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, taken)
	})

	t.Run("delete", func(t *testing.T) {
		c := New[int32, string](0)
		c.Delete(7)

		c.Set(1, "a")
		c.Set(2, "b")
		c.Delete(1)

		_, ok := c.Get(1)
		assert.False(t, ok)
		assert.Equal(t, 1, c.Size())
	})

	t.Run("expiry", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		c := New[int32, string](time.Minute)
		c.now = func() time.Time { return now }

		c.Set(1, "a")
		_, ok := c.Get(1)
		assert.True(t, ok)

		now = now.Add(2 * time.Minute)
		_, ok = c.Get(1)
		assert.False(t, ok)
	})

	t.Run("concurrent access", func(t *testing.T) {
		c := New[int, int](time.Hour)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c.Set(i, i*2)
				c.Get(i)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 50, c.Size())
	})
}
