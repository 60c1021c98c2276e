package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestItemLoadSave(t *testing.T) {
	st, err := NewMemoryStore()
	require.NoError(t, err)
	defer st.Close()

	item := NewItem[record]("rec")
	ctx := context.Background()

	err = st.View(ctx, func(kv KV) error {
		_, err := item.Load(kv)
		require.ErrorIs(t, err, ErrKeyNotFound)

		_, ok, err := item.MayLoad(kv)
		require.NoError(t, err)
		require.False(t, ok)
		return nil
	})
	require.NoError(t, err)

	err = st.Update(ctx, func(kv KV) error {
		return item.Save(kv, record{Name: "a", Count: 2})
	})
	require.NoError(t, err)

	err = st.View(ctx, func(kv KV) error {
		got, err := item.Load(kv)
		require.NoError(t, err)
		require.Equal(t, record{Name: "a", Count: 2}, got)

		got, ok, err := item.MayLoad(kv)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, record{Name: "a", Count: 2}, got)
		return nil
	})
	require.NoError(t, err)
}

func TestMapKeysAreIndependent(t *testing.T) {
	st, err := NewMemoryStore()
	require.NoError(t, err)
	defer st.Close()

	m := NewMap[int]("counts")
	ctx := context.Background()

	err = st.Update(ctx, func(kv KV) error {
		require.NoError(t, m.Save(kv, "a", 1))
		require.NoError(t, m.Save(kv, "b", 2))
		return nil
	})
	require.NoError(t, err)

	err = st.View(ctx, func(kv KV) error {
		a, err := m.Load(kv, "a")
		require.NoError(t, err)
		require.Equal(t, 1, a)

		b, err := m.Load(kv, "b")
		require.NoError(t, err)
		require.Equal(t, 2, b)

		_, ok, err := m.MayLoad(kv, "c")
		require.NoError(t, err)
		require.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestPrefixesDoNotCollide(t *testing.T) {
	st, err := NewMemoryStore()
	require.NoError(t, err)
	defer st.Close()

	first := NewMap[int]("first")
	second := NewMap[int]("second")
	ctx := context.Background()

	err = st.Update(ctx, func(kv KV) error {
		require.NoError(t, first.Save(kv, "k", 1))
		require.NoError(t, second.Save(kv, "k", 2))
		return nil
	})
	require.NoError(t, err)

	err = st.View(ctx, func(kv KV) error {
		a, err := first.Load(kv, "k")
		require.NoError(t, err)
		require.Equal(t, 1, a)

		b, err := second.Load(kv, "k")
		require.NoError(t, err)
		require.Equal(t, 2, b)
		return nil
	})
	require.NoError(t, err)
}
