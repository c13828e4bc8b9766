package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

var errLoginRequired = errors.New("login required")

func (a *App) requireLogin() (string, error) {
	id, ok := a.store.CurrentUserID()
	if !ok {
		a.println("Please log in first.")
		return "", errLoginRequired
	}
	return id, nil
}

func (a *App) Add(ctx context.Context) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	t, err := a.store.AddTask(ctx, title, description)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printf("Created task %s.\n", t.TaskID)
	return nil
}

// Edit prompts for a new title and description; an empty answer keeps the
// current value.
func (a *App) Edit(ctx context.Context, id string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "New title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "New description (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	var patch models.TaskPatch
	if title != "" {
		patch.Title = &title
	}
	if description != "" {
		patch.Description = &description
	}
	if patch.Empty() {
		a.println("Nothing to change.")
		return nil
	}

	t, err := a.store.UpdateTask(ctx, id, patch)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(formatTask(t))
	return nil
}

func (a *App) Archive(ctx context.Context, id string) error {
	return a.apply(ctx, id, a.store.ArchiveTask)
}

func (a *App) Unarchive(ctx context.Context, id string) error {
	return a.apply(ctx, id, a.store.UnarchiveTask)
}

func (a *App) Toggle(ctx context.Context, id string) error {
	return a.apply(ctx, id, a.store.ToggleTask)
}

func (a *App) apply(ctx context.Context, id string, op func(context.Context, string) (models.Task, error)) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	t, err := op(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(formatTask(t))
	return nil
}

// List shows the current user's open tasks, or done ones.
func (a *App) List(ctx context.Context, done bool) error {
	id, err := a.requireLogin()
	if err != nil {
		return err
	}
	a.printTasks(a.store.TasksByOwner(id, done), false)
	return nil
}

// Others shows tasks owned by everyone else, with their owners.
func (a *App) Others(ctx context.Context, done bool) error {
	id, err := a.requireLogin()
	if err != nil {
		return err
	}
	a.printTasks(a.store.TasksByOtherOwners(id, done), true)
	return nil
}

func (a *App) Archived(ctx context.Context) error {
	a.printTasks(a.store.ArchivedTasks(), true)
	return nil
}

func (a *App) printTasks(tasks []models.Task, withOwner bool) {
	if len(tasks) == 0 {
		a.println("No tasks.")
		return
	}
	for _, t := range tasks {
		line := formatTask(t)
		if withOwner {
			if owner, ok := a.store.OwnerOf(t); ok {
				line += " by " + owner.FullName()
				if owner.FullName() != owner.Email {
					line += " <" + owner.Email + ">"
				}
			}
		}
		a.println(line)
	}
}
