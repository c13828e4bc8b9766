// Package seed provides the first-run demo data and decides whether the
// backing store still needs it.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/persistence"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
)

// Needed reports whether the users or tasks key is missing. A read error
// other than absence returns false so unreadable data is never replaced.
func Needed(ctx context.Context, repo metadata.Repository, log logging.Logger) bool {
	if log == nil {
		log = logging.Nop()
	}
	for _, key := range []string{persistence.KeyUsers, persistence.KeyTasks} {
		_, err := repo.Get(ctx, key)
		if errors.Is(err, metadata.ErrKeyNotFound) {
			return true
		}
		if err != nil {
			log.Warn(ctx, "seed probe failed, skipping seed", "key", key, "error", err)
			return false
		}
	}
	return false
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Baseline returns fresh copies of the demo users and tasks.
func Baseline() ([]models.User, []models.Task) {
	users := []models.User{
		{UserID: "1", Email: "user1@example.com", Password: "password123", Tasks: []models.Task{}},
		{UserID: "2", Email: "user2@example.com", Password: "password456", Tasks: []models.Task{}},
		{UserID: "3", Email: "user3@example.com", Password: "password789", Tasks: []models.Task{}},
	}

	tasks := []models.Task{
		{
			TaskID: "1", OwnerID: "1",
			Title:       "Complete React Native Project",
			Description: "Finish the development of the React Native app",
			IsDone:      true,
			Date:        day(2024, time.October, 1),
		},
		{
			TaskID: "2", OwnerID: "1",
			Title:       "Review PRs",
			Description: "Check and review pending pull requests",
			Date:        day(2024, time.October, 2),
		},
		{
			TaskID: "3", OwnerID: "2",
			Title:       "Submit Expense Report",
			Description: "Submit the Q3 expense report",
			IsDone:      true,
			Date:        day(2024, time.September, 25),
		},
		{
			TaskID: "4", OwnerID: "2",
			Title:       "Prepare Presentation",
			Description: "Prepare slides for the next team meeting",
			Date:        day(2024, time.October, 3),
		},
		{
			TaskID: "5", OwnerID: "3",
			Title:       "Fix Bug #32",
			Description: "Resolve the issue in the login flow",
			IsDone:      true,
			Date:        day(2024, time.October, 5),
		},
	}
	return users, tasks
}
