package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/persistence"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
	"github.com/dmitrijs2005/tasktracker/internal/seed"
	"github.com/dmitrijs2005/tasktracker/internal/session"
)

type Store struct {
	opts    options
	adapter *persistence.Adapter
	session *session.Manager

	usersW   *persistence.Writer
	tasksW   *persistence.Writer
	sessionW *persistence.Writer

	ready      chan struct{}
	hydrateErr error

	// Set when a stored collection exists but could not be loaded. The
	// collection is then read-only so that it is never overwritten.
	usersErr error
	tasksErr error

	mu    sync.RWMutex
	users []models.User
	tasks []models.Task

	closeOnce sync.Once
	closeErr  error
}

// New returns a Store bound to repo and starts hydrating it. The store is
// usable immediately; operations wait until hydration finishes.
func New(ctx context.Context, repo metadata.Repository, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		opts:    o,
		adapter: persistence.NewAdapter(repo, o.log),
		ready:   make(chan struct{}),
		users:   []models.User{},
		tasks:   []models.Task{},
	}

	s.usersW = persistence.NewWriter(ctx, persistence.KeyUsers, func(ctx context.Context) error {
		return s.adapter.SaveUsers(ctx, s.snapshotUsers())
	}, o.log)
	s.tasksW = persistence.NewWriter(ctx, persistence.KeyTasks, func(ctx context.Context) error {
		return s.adapter.SaveTasks(ctx, s.snapshotTasks())
	}, o.log)
	s.sessionW = persistence.NewWriter(ctx, persistence.KeyCurrentUserID, func(ctx context.Context) error {
		id, _ := s.session.CurrentUserID()
		return s.adapter.SaveCurrentUserID(ctx, id)
	}, o.log)

	s.session = session.NewManager(session.UserFinderFunc(s.findUser), s.sessionW.Schedule, o.log)

	go s.hydrate(ctx)
	return s
}

// Open is New followed by WaitReady.
func Open(ctx context.Context, repo metadata.Repository, opts ...Option) (*Store, error) {
	s := New(ctx, repo, opts...)
	if err := s.WaitReady(ctx); err != nil {
		_ = s.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return s, nil
}

// Ready is closed once startup loading and seeding are complete.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the store is ready or ctx ends. It fails with
// common.ErrNotReady if ctx ends first or hydration was interrupted.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.hydrateErr
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", common.ErrNotReady, ctx.Err())
	}
}

func (s *Store) hydrate(ctx context.Context) {
	defer close(s.ready)
	log := s.opts.log

	var (
		users              []models.User
		tasks              []models.Task
		currentID          string
		usersOK, tasksOK   bool
		usersErr, tasksErr error
		currentOK, doSeed  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, usersOK, usersErr = s.adapter.LoadUsers(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		tasks, tasksOK, tasksErr = s.adapter.LoadTasks(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		currentID, currentOK = s.adapter.LoadCurrentUserID(gctx)
		return gctx.Err()
	})
	if s.opts.seed {
		g.Go(func() error {
			doSeed = seed.Needed(gctx, s.adapter.Repository(), log)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		s.hydrateErr = fmt.Errorf("%w: hydration interrupted: %w", common.ErrNotReady, err)
		log.Error(ctx, "store hydration interrupted", "error", err)
		return
	}

	if doSeed {
		users, tasks = seed.Baseline()
		usersOK, tasksOK = true, true
		usersErr, tasksErr = nil, nil
	}
	s.usersErr, s.tasksErr = usersErr, tasksErr
	if usersErr != nil {
		log.Error(ctx, "users could not be loaded, keeping them read-only", "error", usersErr)
	}
	if tasksErr != nil {
		log.Error(ctx, "tasks could not be loaded, keeping them read-only", "error", tasksErr)
	}

	s.mu.Lock()
	if usersOK {
		s.users = users
	}
	if tasksOK {
		s.tasks = tasks
	}
	_, known := s.userByIDLocked(currentID)
	nUsers, nTasks := len(s.users), len(s.tasks)
	s.mu.Unlock()

	switch {
	case currentOK && known:
		s.session.Restore(currentID)
	case currentOK:
		log.Warn(ctx, "dropping session for unknown user", "user_id", currentID)
		if usersErr == nil {
			s.sessionW.Schedule()
		}
	}

	if doSeed {
		if err := s.adapter.SaveAll(ctx, users, tasks); err != nil {
			log.Error(ctx, "failed to persist seed data", "error", err)
		} else {
			log.Info(ctx, "seeded backing store", "users", len(users), "tasks", len(tasks))
		}
	}

	log.Debug(ctx, "store ready", "users", nUsers, "tasks", nTasks, "session", currentOK)
}

// writable reports whether the collection under key may be changed.
func (s *Store) writable(key string) error {
	var err error
	switch key {
	case persistence.KeyUsers:
		err = s.usersErr
	case persistence.KeyTasks:
		err = s.tasksErr
	}
	if err != nil {
		return fmt.Errorf("%s are read-only: %w", key, err)
	}
	return nil
}

// Flush waits for every durable write scheduled so far.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	return errors.Join(
		s.usersW.Flush(ctx),
		s.tasksW.Flush(ctx),
		s.sessionW.Flush(ctx),
	)
}

// Close flushes pending writes and stops the writers. The repository is
// not closed; it belongs to the caller.
func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		select {
		case <-s.ready:
		case <-ctx.Done():
		}
		s.closeErr = errors.Join(
			s.usersW.Close(ctx),
			s.tasksW.Close(ctx),
			s.sessionW.Close(ctx),
		)
	})
	return s.closeErr
}

// Users returns a copy of every user.
func (s *Store) Users() []models.User {
	<-s.ready
	return s.snapshotUsers()
}

// Tasks returns a copy of every task in insertion order.
func (s *Store) Tasks() []models.Task {
	<-s.ready
	return s.snapshotTasks()
}

func (s *Store) snapshotUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) snapshotTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
