package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/log"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:00", "0 0 8 * * *", false},
		{"23:59", "0 59 23 * * *", false},
		{"0:05", "0 5 0 * * *", false},
		{"24:00", "", true},
		{"8", "", true},
		{"aa:bb", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScheduleDailyNextRun(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	s := New(loc, log.NewNop())

	id, err := s.ScheduleDaily("digest", "08:30", time.Second, func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}

	s.Start()
	defer s.Stop(context.Background())

	next := s.Next(id).In(loc)
	if next.Hour() != 8 || next.Minute() != 30 || next.Second() != 0 {
		t.Errorf("next run = %v, want 08:30:00 local", next)
	}
}

func TestScheduleDailyRejectsBadClock(t *testing.T) {
	s := New(time.UTC, log.NewNop())
	if _, err := s.ScheduleDaily("x", "25:00", time.Second, func(ctx context.Context) error { return nil }); err == nil {
		t.Error("expected error for invalid clock")
	}
}

type sent struct {
	chatID    int64
	text      string
	parseMode string
}

type mockSender struct {
	msgs []sent
	err  error
}

func (m *mockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	return m.SendMessageWithMode(ctx, chatID, text, "")
}

func (m *mockSender) SendMessageWithMode(ctx context.Context, chatID int64, text, parseMode string) error {
	m.msgs = append(m.msgs, sent{chatID, text, parseMode})
	return m.err
}

type mockUseCase struct {
	task.UseCase
	out    task.DigestOutput
	err    error
	gotNow time.Time
}

func (m *mockUseCase) Digest(ctx context.Context, now time.Time) (task.DigestOutput, error) {
	m.gotNow = now
	return m.out, m.err
}

func TestDigestJob(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("sends digest", func(t *testing.T) {
		uc := &mockUseCase{out: task.DigestOutput{
			Date:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Today: []model.Task{{ID: 1, Title: "Standup", DueDate: &due, Status: model.TaskStatusPending}},
		}}
		sender := &mockSender{}
		job := NewDigestJob(uc, sender, 99, time.UTC)
		job.now = func() time.Time { return now }

		if err := job.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !uc.gotNow.Equal(now) {
			t.Errorf("digest built for %v", uc.gotNow)
		}
		if len(sender.msgs) != 1 || sender.msgs[0].chatID != 99 {
			t.Fatalf("unexpected messages %+v", sender.msgs)
		}
		if !strings.Contains(sender.msgs[0].text, "Standup") {
			t.Errorf("digest missing task: %s", sender.msgs[0].text)
		}
	})

	t.Run("use case failure", func(t *testing.T) {
		sender := &mockSender{}
		job := NewDigestJob(&mockUseCase{err: task.ErrStore}, sender, 99, time.UTC)

		if err := job.Run(context.Background()); !errors.Is(err, task.ErrStore) {
			t.Errorf("expected ErrStore, got %v", err)
		}
		if len(sender.msgs) != 0 {
			t.Errorf("nothing should be sent")
		}
	})

	t.Run("send failure", func(t *testing.T) {
		sender := &mockSender{err: errors.New("403 blocked")}
		job := NewDigestJob(&mockUseCase{}, sender, 99, time.UTC)

		if err := job.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "403") {
			t.Errorf("expected send error, got %v", err)
		}
	})
}
