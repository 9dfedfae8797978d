package tree

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/google/uuid"
)

/*
Model is a grown tree together with everything needed to use it
later: the features it was grown on, the feature it predicts and
when it was grown.
*/
type Model struct {
	ID        string
	Name      string
	Target    string
	Features  []feature.Feature
	Tree      *Tree
	CreatedAt time.Time
}

/*
Store is an interface to manage a store where models can be
saved, retrieved, listed and deleted.

All its methods take a context that may allow cancelling the
operation (thus forcing the return of an error) if the
implementation allows it.
*/
type Store interface {
	// Save takes a model and stores it. If the model
	// has no ID one is generated and set on it, and if
	// it has no creation time it is stamped with the
	// current one. It returns an error if the model
	// cannot be stored.
	Save(ctx context.Context, m *Model) error
	// Load takes an id and returns the model in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried.
	Load(ctx context.Context, id string) (*Model, error)
	// List returns the models in the store, oldest
	// first, or an error if the store cannot be
	// queried.
	List(ctx context.Context) ([]*Model, error)
	// Delete takes an id and removes the model with
	// that id from the store. It returns an error if
	// the model exists but the deletion cannot be
	// performed.
	Delete(ctx context.Context, id string) error
	// Close closes the store, implementations should
	// free any resources in use as well as ensure any
	// pending changes are applied before returning
	// (unless the context expires).
	Close(ctx context.Context) error
}

type memoryStore struct {
	models map[string]*Model
	lock   *sync.RWMutex
}

/*
NewMemoryStore returns an implementation of Store with the
process memory space as underlying backend.
*/
func NewMemoryStore() Store {
	return &memoryStore{
		models: make(map[string]*Model),
		lock:   &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, m *Model) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		stampModel(m)
		ms.models[m.ID] = m
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, id string) (*Model, error) {
	var m *Model
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		m = ms.models[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (ms *memoryStore) List(ctx context.Context) ([]*Model, error) {
	var models []*Model
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		for _, m := range ms.models {
			models = append(models, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortModels(models)
	return models, nil
}

func (ms *memoryStore) Delete(ctx context.Context, id string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.models, id)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}

/*
stampModel fills in the ID and creation time of a model about to
be saved, when they are missing.
*/
func stampModel(m *Model) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
}

/*
sortModels orders models oldest first, falling back to their IDs
when two models share a creation time.
*/
func sortModels(models []*Model) {
	sort.Slice(models, func(i, j int) bool {
		if !models[i].CreatedAt.Equal(models[j].CreatedAt) {
			return models[i].CreatedAt.Before(models[j].CreatedAt)
		}
		return models[i].ID < models[j].ID
	})
}
