/*
Package redisstore provides a model store backed by a redis DB.

Models are kept under <prefix>:model:<id> keys, with the set of
stored IDs under <prefix>:models so they can be listed.
*/
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	"github.com/google/uuid"
	"gopkg.in/redis.v5"
)

/*
ModelEncodeDecoder is an interface for objects that allow
encoding models into slices of bytes and decoding them back to
models.
*/
type ModelEncodeDecoder interface {

	//Encode receives a *tree.Model and returns a slice
	//of bytes with the model encoded or an error if the
	//encoding could not be performed for some reason.
	Encode(*tree.Model) ([]byte, error)

	//Decode receives a slice of bytes and returns a
	//*tree.Model decoded from the slice of bytes or an
	//error if the decoding could not be performed for
	//some reason.
	Decode([]byte) (*tree.Model, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	mencdec ModelEncodeDecoder
}

//New builds a tree.Store backed by a redis DB
func New(rc *redis.Client, prefix string, mencdec ModelEncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, mencdec}
}

func (rs *redisStore) Save(ctx context.Context, m *tree.Model) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.ID == "" {
		var ok bool
		for !ok {
			m.ID = uuid.New().String()
			data, err := rs.mencdec.Encode(m)
			if err != nil {
				return fmt.Errorf("saving model: encoding model: %v", err)
			}
			ok, err = rs.rc.SetNX(rs.keyFor(m.ID), data, 0).Result()
			if err != nil {
				return fmt.Errorf("saving model in redis: %v", err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	} else {
		data, err := rs.mencdec.Encode(m)
		if err != nil {
			return fmt.Errorf("saving model %q: encoding model: %v", m.ID, err)
		}
		_, err = rs.rc.Set(rs.keyFor(m.ID), data, 0).Result()
		if err != nil {
			return fmt.Errorf("saving model %q in redis: %v", m.ID, err)
		}
	}
	_, err := rs.rc.SAdd(rs.modelsKey(), m.ID).Result()
	if err != nil {
		return fmt.Errorf("saving model %q: registering id: %v", m.ID, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, id string) (*tree.Model, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", id, err)
	}
	m, err := rs.mencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: decoding: %v", id, err)
	}
	return m, nil
}

func (rs *redisStore) List(ctx context.Context) ([]*tree.Model, error) {
	ids, err := rs.rc.SMembers(rs.modelsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing models: %v", err)
	}
	var models []*tree.Model
	for _, id := range ids {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m, err := rs.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing models: %v", err)
		}
		if m == nil {
			continue
		}
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool {
		if !models[i].CreatedAt.Equal(models[j].CreatedAt) {
			return models[i].CreatedAt.Before(models[j].CreatedAt)
		}
		return models[i].ID < models[j].ID
	})
	return models, nil
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	_, err := rs.rc.Del(rs.keyFor(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", id, err)
	}
	_, err = rs.rc.SRem(rs.modelsKey(), id).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q: unregistering id: %v", id, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:model:%s", rs.prefix, id)
}

func (rs *redisStore) modelsKey() string {
	return fmt.Sprintf("%s:models", rs.prefix)
}
