package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskjournal/internal/api"
)

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing task id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func (a *App) printTasks(title string, tasks []*api.Task) {
	a.printf("%s (%d)\n", title, len(tasks))
	if len(tasks) == 0 {
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDUE\tDONE\tTASK")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.DueDate, done, t.Task)
	}
	_ = w.Flush()
}

// Add prompts for a description and a due date (default: today).
func (a *App) Add(ctx context.Context) error {
	task, err := getSimpleText(a.reader, "Task", a.out)
	if err != nil {
		return err
	}

	today := a.now().Format(dateLayout)
	due, err := getSimpleText(a.reader, fmt.Sprintf("Due date YYYY-MM-DD [%s]", today), a.out)
	if err != nil {
		return err
	}
	if due == "" {
		due = today
	}

	t, err := a.api.AddTask(ctx, task, due)
	if err != nil {
		return err
	}
	a.printf("Added task %d due %s\n", t.ID, t.DueDate)
	return nil
}

func (a *App) Inbox(ctx context.Context) error {
	tasks, err := a.api.ListInbox(ctx)
	if err != nil {
		return err
	}
	a.printTasks("Inbox", tasks)
	return nil
}

// Today lists open tasks due on args[0], or on the local date.
func (a *App) Today(ctx context.Context, args []string) error {
	date := a.now().Format(dateLayout)
	if len(args) > 0 {
		date = args[0]
	}

	tasks, err := a.api.ListToday(ctx, date)
	if err != nil {
		return err
	}
	a.printTasks("Today "+date, tasks)
	return nil
}

func (a *App) Completed(ctx context.Context) error {
	tasks, err := a.api.ListCompleted(ctx)
	if err != nil {
		return err
	}
	a.printTasks("Completed", tasks)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	t, err := a.api.CompleteTask(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Completed task %d\n", t.ID)
	return nil
}

func (a *App) Undo(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	t, err := a.api.ReopenTask(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Reopened task %d\n", t.ID)
	return nil
}
