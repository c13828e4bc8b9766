package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/persistence"
	"github.com/dmitrijs2005/tasktracker/internal/validation"
)

// AddTask creates a task owned by the logged-in user.
func (s *Store) AddTask(ctx context.Context, title, description string) (models.Task, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.Task{}, err
	}
	owner, ok := s.session.CurrentUserID()
	if !ok {
		return models.Task{}, common.NewValidationError("ownerId", "requires a logged-in user")
	}
	return s.AddTaskFor(ctx, owner, title, description)
}

// AddTaskFor creates an open task owned by ownerID, which must be a known
// user.
func (s *Store) AddTaskFor(ctx context.Context, ownerID, title, description string) (models.Task, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.Task{}, err
	}
	if err := s.writable(persistence.KeyTasks); err != nil {
		return models.Task{}, err
	}

	t := models.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if err := validation.Merge(
		validation.Struct(t),
		validation.Var("ownerId", ownerID, "required"),
	); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	owner, ok := s.userByIDLocked(ownerID)
	if !ok {
		s.mu.Unlock()
		return models.Task{}, common.NewValidationError("ownerId", "does not match a user")
	}
	t.TaskID = s.opts.newID()
	t.Date = s.opts.clock().UTC()
	t.OwnerName = owner.FullName()
	t.OwnerEmail = owner.Email
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.tasksW.Schedule()
	s.opts.log.Info(ctx, "task created", "task_id", t.TaskID, "owner", ownerID)
	return t, nil
}

// UpdateTask merges patch into the task. Title and description cannot be
// set to empty.
func (s *Store) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (models.Task, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.Task{}, err
	}
	if err := validatePatch(patch); err != nil {
		return models.Task{}, err
	}
	if patch.Title != nil {
		patch.Title = models.Ptr(strings.TrimSpace(*patch.Title))
	}
	if patch.Description != nil {
		patch.Description = models.Ptr(strings.TrimSpace(*patch.Description))
	}

	return s.mutateTask(ctx, taskID, func(t *models.Task) error {
		*t = patch.Apply(*t)
		return nil
	}, !patch.Empty())
}

// ArchiveTask marks the task done.
func (s *Store) ArchiveTask(ctx context.Context, taskID string) (models.Task, error) {
	return s.UpdateTask(ctx, taskID, models.TaskPatch{IsDone: models.Ptr(true)})
}

// UnarchiveTask reopens the task. Only its owner may do that; anyone else,
// including an anonymous caller, gets common.ErrPermission and the task is
// left as it was.
func (s *Store) UnarchiveTask(ctx context.Context, taskID string) (models.Task, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.Task{}, err
	}
	return s.mutateTask(ctx, taskID, func(t *models.Task) error {
		if err := s.checkOwner(ctx, "unarchive", t); err != nil {
			return err
		}
		t.IsDone = false
		return nil
	}, true)
}

// ToggleTask flips IsDone. Because reopening is an unarchive, the same
// ownership rule applies.
func (s *Store) ToggleTask(ctx context.Context, taskID string) (models.Task, error) {
	if err := s.WaitReady(ctx); err != nil {
		return models.Task{}, err
	}
	return s.mutateTask(ctx, taskID, func(t *models.Task) error {
		if err := s.checkOwner(ctx, "toggle", t); err != nil {
			return err
		}
		t.IsDone = !t.IsDone
		return nil
	}, true)
}

func (s *Store) checkOwner(ctx context.Context, op string, t *models.Task) error {
	current, ok := s.session.CurrentUserID()
	if ok && current == t.OwnerID {
		return nil
	}
	s.opts.log.Warn(ctx, "permission denied", "op", op, "task_id", t.TaskID, "owner", t.OwnerID, "user_id", current)
	return fmt.Errorf("%s task %s: %w", op, t.TaskID, common.ErrPermission)
}

// mutateTask runs fn on the task under the write lock. Nothing is changed
// when fn fails.
func (s *Store) mutateTask(ctx context.Context, taskID string, fn func(*models.Task) error, schedule bool) (models.Task, error) {
	if err := s.writable(persistence.KeyTasks); err != nil {
		return models.Task{}, err
	}
	s.mu.Lock()
	i := s.indexLocked(taskID)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("task %s: %w", taskID, common.ErrNotFound)
	}
	t := s.tasks[i]
	if err := fn(&t); err != nil {
		s.mu.Unlock()
		return models.Task{}, err
	}
	s.tasks[i] = t
	s.mu.Unlock()

	if schedule {
		s.tasksW.Schedule()
		s.opts.log.Debug(ctx, "task updated", "task_id", taskID, "is_done", t.IsDone)
	}
	return t, nil
}

func (s *Store) indexLocked(taskID string) int {
	for i := range s.tasks {
		if s.tasks[i].TaskID == taskID {
			return i
		}
	}
	return -1
}

func validatePatch(p models.TaskPatch) error {
	var errs []error
	if p.Title != nil {
		errs = append(errs, validation.Var("title", strings.TrimSpace(*p.Title), "required"))
	}
	if p.Description != nil {
		errs = append(errs, validation.Var("description", strings.TrimSpace(*p.Description), "required"))
	}
	return validation.Merge(errs...)
}

// TasksByOwner returns the owner's tasks whose IsDone equals isDone, in
// insertion order.
func (s *Store) TasksByOwner(ownerID string, isDone bool) []models.Task {
	return s.filter(func(t models.Task) bool {
		return t.OwnerID == ownerID && t.IsDone == isDone
	})
}

// TasksByOtherOwners is the complement of TasksByOwner for the same isDone.
func (s *Store) TasksByOtherOwners(ownerID string, isDone bool) []models.Task {
	return s.filter(func(t models.Task) bool {
		return t.OwnerID != ownerID && t.IsDone == isDone
	})
}

// ArchivedTasks returns every done task regardless of owner.
func (s *Store) ArchivedTasks() []models.Task {
	return s.filter(func(t models.Task) bool { return t.IsDone })
}

func (s *Store) filter(keep func(models.Task) bool) []models.Task {
	<-s.ready
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
