package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/datemath"
)

// session is what every subcommand needs from the wiring.
type session struct {
	uc    task.UseCase
	dates *datemath.Parser
	close func() error
}

type openFunc func(ctx context.Context, verbose bool) (*session, error)

type cli struct {
	open    openFunc
	now     func() time.Time
	verbose bool
	sess    *session
}

func newRootCmd(open openFunc) *cobra.Command {
	c := &cli{open: open, now: time.Now}

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage tasks from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.open(cmd.Context(), c.verbose)
			if err != nil {
				return err
			}
			c.sess = sess
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.sess == nil || c.sess.close == nil {
				return nil
			}
			return c.sess.close()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.aiCmd(),
		c.showCmd(),
		c.doneCmd(),
		c.rmCmd(),
	)
	return root
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// describe turns use-case errors into one-line CLI messages.
func describe(err error) error {
	var vErr *task.ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr
	case errors.Is(err, task.ErrNotFound):
		return errors.New("task not found")
	case errors.Is(err, task.ErrInvalidInput):
		return errors.New("nothing to do: the text is empty")
	case errors.Is(err, task.ErrGeneration):
		return fmt.Errorf("the language model is unavailable: %w", err)
	case errors.Is(err, task.ErrMalformedOutput):
		return fmt.Errorf("could not understand the model's answer: %w", err)
	}
	return err
}
