package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)

	// overwrite
	s.Set("foo", 7)
	val, _ = s.Get("foo")
	assert.Equal(t, 7, val)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("key", "value")

	assert.True(t, s.Delete("key"))
	assert.False(t, s.Delete("key"), "second delete reports absence")

	_, ok := s.Get("key")
	assert.False(t, ok)
}

func TestStore_DeleteBatch(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	n := s.DeleteBatch([]string{"a", "c", "missing"})
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, s.Len())

	n = s.DeleteBatch([]string{"a", "c"})
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := New[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
}

func TestStore_Filter(t *testing.T) {
	s := New[string, int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		s.Set(k, i)
	}

	even := s.Filter(func(v int) bool { return v%2 == 0 })
	assert.ElementsMatch(t, []int{0, 2}, even)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, s.Values())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
			_ = s.Values()
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
