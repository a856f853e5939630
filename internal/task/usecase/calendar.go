package usecase

import (
	"context"
	"sort"

	"ai-task-manager/internal/task"
	repo "ai-task-manager/internal/task/repository"
)

// Calendar groups tasks due in [From, To) by local day.
// Days without tasks are omitted.
func (uc *implUseCase) Calendar(ctx context.Context, input task.CalendarInput) (task.CalendarOutput, error) {
	verr := &task.ValidationError{}
	if input.From.IsZero() {
		verr.Add("from", "is required")
	}
	if input.To.IsZero() {
		verr.Add("to", "is required")
	}
	if verr.Empty() && !input.To.After(input.From) {
		verr.Add("to", "must be after from")
	}
	if !verr.Empty() {
		return task.CalendarOutput{}, verr
	}

	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{
		DueFrom: &input.From,
		DueTo:   &input.To,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Calendar ListTasks: %v", err)
		return task.CalendarOutput{}, mapRepoError(err)
	}

	byDay := make(map[int64]*task.CalendarDay)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		start := uc.dateMath.StartOfDay(*t.DueDate)
		day, ok := byDay[start.Unix()]
		if !ok {
			day = &task.CalendarDay{Date: start}
			byDay[start.Unix()] = day
		}
		day.Tasks = append(day.Tasks, t)
		day.Counts.Add(t.Status)
	}

	days := make([]task.CalendarDay, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return task.CalendarOutput{Days: days}, nil
}
