package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		status   string
		from, to string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := task.ListInput{Status: model.TaskStatus(status)}
			var err error
			if in.DueFrom, err = c.optionalDate(from); err != nil {
				return err
			}
			if in.DueTo, err = c.optionalDate(to); err != nil {
				return err
			}

			out, err := c.sess.uc.List(cmd.Context(), in)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), newTaskViews(out.Tasks, c.sess.dates.Location()))
			}
			if len(out.Tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(out.Tasks, c.sess.dates.Location(), c.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, in_progress, completed)")
	cmd.Flags().StringVar(&from, "from", "", "Due on or after (date or phrase like \"today\")")
	cmd.Flags().StringVar(&to, "to", "", "Due before (date or phrase like \"next monday\")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var (
		description string
		due         string
		duration    int
		status      string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task from explicit fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := task.CreateInput{
				Title:  strings.Join(args, " "),
				Status: model.TaskStatus(status),
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("duration") {
				in.Duration = &duration
			}
			var err error
			if in.DueDate, err = c.optionalDate(due); err != nil {
				return err
			}

			out, err := c.sess.uc.Create(cmd.Context(), in)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (RFC3339, YYYY-MM-DD or phrase like \"tomorrow\")")
	cmd.Flags().IntVar(&duration, "duration", 0, "Estimated duration in minutes")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default pending)")
	return cmd
}

func (c *cli) aiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ai <text>",
		Short: "Create a task from a natural-language instruction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.sess.uc.ExtractAndCreate(cmd.Context(), task.ExtractInput{Text: strings.Join(args, " ")})
			if err != nil {
				return describe(err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created task #%d\n", out.Task.ID)
			fmt.Fprint(w, formatTaskDetail(out.Task, c.sess.dates.Location()))
			if out.CalendarLink != "" {
				fmt.Fprintf(w, "Calendar:    %s\n", out.CalendarLink)
			}
			return nil
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := c.sess.uc.Detail(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), newTaskView(out.Task, c.sess.dates.Location()))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(out.Task, c.sess.dates.Location()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func (c *cli) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>...",
		Short: "Mark tasks as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				id, err := parseID(raw)
				if err != nil {
					return err
				}
				cur, err := c.sess.uc.Detail(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("task #%d: %w", id, describe(err))
				}
				t := cur.Task
				if _, err := c.sess.uc.Update(cmd.Context(), task.UpdateInput{
					ID:          t.ID,
					Title:       t.Title,
					Description: t.Description,
					DueDate:     t.DueDate,
					Duration:    t.Duration,
					Status:      model.TaskStatusCompleted,
				}); err != nil {
					return fmt.Errorf("task #%d: %w", id, describe(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d\n", id)
			}
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				id, err := parseID(raw)
				if err != nil {
					return err
				}
				out, err := c.sess.uc.Delete(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("task #%d: %w", id, describe(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d %q\n", out.Task.ID, out.Task.Title)
			}
			return nil
		},
	}
}

func (c *cli) optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := c.sess.dates.ParseDueDate(raw, c.now())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return &t, nil
}
