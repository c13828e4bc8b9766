package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report turns a store error into a message for the user and logs it.
func (a *App) report(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err)
	a.println(userMessage(err))
}

func userMessage(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		names := make([]string, 0, len(ve.Fields))
		for name := range ve.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, name+" "+ve.Fields[name])
		}
		return "Please check: " + strings.Join(parts, ", ") + "."
	case errors.Is(err, common.ErrPermission):
		return "Only the task owner can do that."
	case errors.Is(err, common.ErrNotFound):
		return "No such task."
	case errors.Is(err, common.ErrNotReady):
		return "The store is still starting, try again."
	default:
		return "Error: " + err.Error()
	}
}

func formatTask(t models.Task) string {
	mark := " "
	if t.IsDone {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %s: %s (%s)", mark, t.TaskID, t.Title, t.Description, t.DisplayDate())
}
