package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// TaskStore is the part of *store.Store the CLI drives.
type TaskStore interface {
	AddUser(ctx context.Context, u models.User) (models.User, error)
	LoginUser(ctx context.Context, email, password string) bool
	LogoutUser(ctx context.Context) error
	CurrentUserID() (string, bool)
	UserByID(id string) (models.User, bool)
	OwnerOf(t models.Task) (models.User, bool)

	AddTask(ctx context.Context, title, description string) (models.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (models.Task, error)
	ArchiveTask(ctx context.Context, taskID string) (models.Task, error)
	UnarchiveTask(ctx context.Context, taskID string) (models.Task, error)
	ToggleTask(ctx context.Context, taskID string) (models.Task, error)

	TasksByOwner(ownerID string, isDone bool) []models.Task
	TasksByOtherOwners(ownerID string, isDone bool) []models.Task
	ArchivedTasks() []models.Task
}

type App struct {
	store  TaskStore
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

func NewApp(store TaskStore, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{store: store, reader: bufio.NewReader(in), out: out, log: log}
}

// Run greets the user and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to tasktracker (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.CurrentUserID()
	return ok
}

func (a *App) currentUser() (models.User, bool) {
	id, ok := a.store.CurrentUserID()
	if !ok {
		return models.User{}, false
	}
	return a.store.UserByID(id)
}

func (a *App) status() string {
	if u, ok := a.currentUser(); ok {
		return "(" + u.Email + ")"
	}
	return ""
}
