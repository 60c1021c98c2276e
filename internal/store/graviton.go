package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/deroproject/graviton"
)

const treeName = "ledger"

// GravitonStore persists the ledger keyspace in a graviton tree. Each Update
// loads the latest snapshot, mutates the tree and commits it as one version;
// on error the dirty tree is discarded. A mutex serializes invocations to
// match the single-writer execution model the ledger assumes.
type GravitonStore struct {
	mu sync.Mutex
	db *graviton.Store
}

// NewMemoryStore opens a store that lives only for the process lifetime.
func NewMemoryStore() (*GravitonStore, error) {
	db, err := graviton.NewMemStore()
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	return &GravitonStore{db: db}, nil
}

// NewDiskStore opens (or creates) a persistent store rooted at dir.
func NewDiskStore(dir string) (*GravitonStore, error) {
	db, err := graviton.NewDiskStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open disk store %s: %w", dir, err)
	}
	return &GravitonStore{db: db}, nil
}

func (s *GravitonStore) Close() error {
	s.db.Close()
	return nil
}

func (s *GravitonStore) View(ctx context.Context, fn func(KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.tree()
	if err != nil {
		return err
	}
	return fn(&gravitonKV{tree: tree})
}

func (s *GravitonStore) Update(ctx context.Context, fn func(KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.tree()
	if err != nil {
		return err
	}
	if err := fn(&gravitonKV{tree: tree}); err != nil {
		_ = tree.Discard()
		return err
	}
	if _, err := graviton.Commit(tree); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *GravitonStore) tree() (*graviton.Tree, error) {
	ss, err := s.db.LoadSnapshot(0)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	tree, err := ss.GetTree(treeName)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", treeName, err)
	}
	return tree, nil
}

type gravitonKV struct {
	tree *graviton.Tree
}

func (kv *gravitonKV) Get(key []byte) ([]byte, error) {
	value, err := kv.tree.Get(key)
	if errors.Is(err, graviton.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (kv *gravitonKV) Set(key, value []byte) error {
	return kv.tree.Put(key, value)
}
