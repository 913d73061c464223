package interp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashMapPutGet(t *testing.T) {
	m := newHashMap()
	h := NewHeap()

	v1 := h.NewNumber(1)
	m.put("a", v1)
	got, ok := m.get("a")
	assert.True(t, ok)
	assert.Same(t, v1, got)

	v2 := h.NewNumber(2)
	m.put("a", v2)
	got, ok = m.get("a")
	assert.True(t, ok)
	assert.Same(t, v2, got, "put must overwrite on key equality")
}

func TestHashMapMissIsNotFound(t *testing.T) {
	m := newHashMap()
	_, ok := m.get("missing")
	assert.False(t, ok)
}

func TestHashMapResizeKeepsAllEntries(t *testing.T) {
	m := newHashMap()
	h := NewHeap()

	const n = 200
	for i := 0; i < n; i++ {
		m.put(fmt.Sprintf("key-%d", i), h.NewNumber(int64(i)))
	}
	assert.Greater(t, len(m.slots), initialHashMapCapacity, "table should have resized")
	for i := 0; i < n; i++ {
		v, ok := m.get(fmt.Sprintf("key-%d", i))
		if assert.True(t, ok) {
			assert.Equal(t, int64(i), v.Number())
		}
	}
}

func TestFnvLikeHashIsDeterministic(t *testing.T) {
	assert.Equal(t, fnvLike("foo"), fnvLike("foo"))
	assert.NotEqual(t, fnvLike("foo"), fnvLike("bar"))
}
