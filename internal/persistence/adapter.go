package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
)

// Backing store keys.
const (
	KeyUsers         = "users"
	KeyTasks         = "tasks"
	KeyCurrentUserID = "currentUserId"
)

// Adapter reads and writes the persisted collections. It keeps no copy of
// what it writes.
type Adapter struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewAdapter(repo metadata.Repository, log logging.Logger) *Adapter {
	if log == nil {
		log = logging.Nop()
	}
	return &Adapter{repo: repo, log: log}
}

// Repository returns the underlying backing store.
func (a *Adapter) Repository() metadata.Repository {
	return a.repo
}

// LoadUsers returns the stored users. ok is false when the key is absent.
// err is set, wrapping common.ErrPersistence, when the key could not be
// read or decoded; callers must then treat the stored value as unknown.
func (a *Adapter) LoadUsers(ctx context.Context) (users []models.User, ok bool, err error) {
	if ok, err = a.load(ctx, KeyUsers, &users); err != nil {
		return nil, false, err
	}
	return users, ok, nil
}

// LoadTasks behaves like LoadUsers for the task collection. Tasks whose
// date could not be parsed are loaded and logged.
func (a *Adapter) LoadTasks(ctx context.Context) (tasks []models.Task, ok bool, err error) {
	if ok, err = a.load(ctx, KeyTasks, &tasks); err != nil {
		return nil, false, err
	}
	for _, t := range tasks {
		if t.RawDate != "" {
			a.log.Warn(ctx, "task date not recognized, keeping stored text", "task_id", t.TaskID, "date", t.RawDate)
		}
	}
	return tasks, ok, nil
}

// LoadCurrentUserID returns the persisted session user id.
func (a *Adapter) LoadCurrentUserID(ctx context.Context) (string, bool) {
	raw, ok, err := a.get(ctx, KeyCurrentUserID)
	if err != nil || !ok || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

func (a *Adapter) get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := a.repo.Get(ctx, key)
	if errors.Is(err, metadata.ErrKeyNotFound) {
		a.log.Debug(ctx, "key not present", "key", key)
		return nil, false, nil
	}
	if err != nil {
		a.log.Warn(ctx, "failed to load key", "key", key, "error", err)
		return nil, false, fmt.Errorf("%w: load %s: %w", common.ErrPersistence, key, err)
	}
	return raw, true, nil
}

func (a *Adapter) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := a.get(ctx, key)
	if !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		a.log.Warn(ctx, "failed to decode key", "key", key, "error", err)
		return false, fmt.Errorf("%w: decode %s: %w", common.ErrPersistence, key, err)
	}
	return true, nil
}

func (a *Adapter) SaveUsers(ctx context.Context, users []models.User) error {
	return a.save(ctx, KeyUsers, nonNil(users))
}

func (a *Adapter) SaveTasks(ctx context.Context, tasks []models.Task) error {
	return a.save(ctx, KeyTasks, nonNil(tasks))
}

// SaveCurrentUserID writes id, or deletes the key when id is empty.
func (a *Adapter) SaveCurrentUserID(ctx context.Context, id string) error {
	if id == "" {
		if err := a.repo.Delete(ctx, KeyCurrentUserID); err != nil {
			return fmt.Errorf("%w: clear %s: %w", common.ErrPersistence, KeyCurrentUserID, err)
		}
		return nil
	}
	if err := a.repo.Set(ctx, KeyCurrentUserID, []byte(id)); err != nil {
		return fmt.Errorf("%w: save %s: %w", common.ErrPersistence, KeyCurrentUserID, err)
	}
	return nil
}

// SaveAll writes both collections, in one atomic batch when the backing
// store supports it.
func (a *Adapter) SaveAll(ctx context.Context, users []models.User, tasks []models.Task) error {
	u, err := encode(KeyUsers, nonNil(users))
	if err != nil {
		return err
	}
	t, err := encode(KeyTasks, nonNil(tasks))
	if err != nil {
		return err
	}

	if bs, ok := a.repo.(metadata.BatchSetter); ok {
		if err := bs.SetMany(ctx, map[string][]byte{KeyUsers: u, KeyTasks: t}); err != nil {
			return fmt.Errorf("%w: save %s and %s: %w", common.ErrPersistence, KeyUsers, KeyTasks, err)
		}
		return nil
	}

	if err := a.set(ctx, KeyUsers, u); err != nil {
		return err
	}
	return a.set(ctx, KeyTasks, t)
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	raw, err := encode(key, v)
	if err != nil {
		return err
	}
	return a.set(ctx, key, raw)
}

func (a *Adapter) set(ctx context.Context, key string, raw []byte) error {
	if err := a.repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: save %s: %w", common.ErrPersistence, key, err)
	}
	return nil
}

func encode(key string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", common.ErrPersistence, key, err)
	}
	return raw, nil
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
