package ledger_test

import (
	"testing"
	"time"

	"github.com/forgeledger/forgeledger/internal/domain"
)

func TestCheckIn_CalendarScenario(t *testing.T) {
	svc := testService(t)
	day1 := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	// First activity ever starts the chain at 1.
	res, err := svc.CheckIn(day1)
	if err != nil {
		t.Fatalf("day 1: %v", err)
	}
	if !res.Advanced || res.Streak.CurrentDays != 1 {
		t.Errorf("day 1: streak = %d advanced=%v, want 1/true", res.Streak.CurrentDays, res.Advanced)
	}

	// Same day, later hour — nothing changes.
	res, err = svc.CheckIn(day1.Add(8 * time.Hour))
	if err != nil {
		t.Fatalf("same day: %v", err)
	}
	if res.Advanced || res.Streak.CurrentDays != 1 {
		t.Errorf("same day: streak = %d advanced=%v, want 1/false", res.Streak.CurrentDays, res.Advanced)
	}

	// Next calendar day extends.
	res, err = svc.CheckIn(day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if res.Streak.CurrentDays != 2 {
		t.Errorf("day 2: streak = %d, want 2", res.Streak.CurrentDays)
	}

	// Skip to 2024-01-05 — chain breaks and restarts at 1, not 0.
	day5 := time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC)
	res, err = svc.CheckIn(day5)
	if err != nil {
		t.Fatalf("day 5: %v", err)
	}
	if res.Streak.CurrentDays != 1 {
		t.Errorf("after gap: streak = %d, want 1", res.Streak.CurrentDays)
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !res.Streak.LastActivity.Equal(want) {
		t.Errorf("last activity = %v, want %v", res.Streak.LastActivity, want)
	}
	if res.Streak.LongestDays != 2 {
		t.Errorf("longest = %d, want 2 preserved across reset", res.Streak.LongestDays)
	}
}

func TestCheckIn_MidnightBoundary(t *testing.T) {
	svc := testService(t)

	// 23:59 and 00:01 are different calendar days two minutes apart.
	late := time.Date(2024, 2, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 2, 11, 0, 1, 0, 0, time.UTC)

	if _, err := svc.CheckIn(late); err != nil {
		t.Fatalf("late: %v", err)
	}
	res, err := svc.CheckIn(early)
	if err != nil {
		t.Fatalf("early: %v", err)
	}
	if res.Streak.CurrentDays != 2 {
		t.Errorf("streak = %d, want 2 (consecutive calendar days)", res.Streak.CurrentDays)
	}
}

func TestCheckIn_SevenDayMilestone(t *testing.T) {
	svc := testService(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var milestone *domain.Achievement
	for i := 0; i < 7; i++ {
		res, err := svc.CheckIn(base.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		if i < 6 && res.Milestone != nil {
			t.Errorf("day %d: unexpected milestone", i+1)
		}
		milestone = res.Milestone
	}

	if milestone == nil {
		t.Fatal("expected a milestone on day 7")
	}
	if milestone.Title != "7 Day Streak!" {
		t.Errorf("milestone title = %q, want %q", milestone.Title, "7 Day Streak!")
	}
	if milestone.Points != 35 {
		t.Errorf("milestone points = %d, want 35 (7 × 5)", milestone.Points)
	}
	if milestone.Category != domain.CatStreak {
		t.Errorf("milestone category = %q, want streak", milestone.Category)
	}

	// The milestone is credited, so the log and the XP total agree.
	if xp := svc.State().XP; xp != 35 {
		t.Errorf("XP = %d, want 35 credited by the milestone", xp)
	}

	events, _ := svc.PendingEvents(50)
	found := false
	for _, e := range events {
		if e.Type == domain.EventStreakMilestone {
			found = true
		}
	}
	if !found {
		t.Error("expected a streak_milestone event")
	}
}

func TestCheckIn_MilestoneEverySeventhDay(t *testing.T) {
	svc := testService(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	milestones := 0
	for i := 0; i < 14; i++ {
		res, err := svc.CheckIn(base.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		if res.Milestone != nil {
			milestones++
		}
	}
	if milestones != 2 {
		t.Errorf("expected milestones on days 7 and 14, got %d", milestones)
	}
	// 7×5 + 14×5 credited
	if xp := svc.State().XP; xp != 105 {
		t.Errorf("XP = %d, want 105", xp)
	}
	if longest := svc.Streak().LongestDays; longest != 14 {
		t.Errorf("longest = %d, want 14", longest)
	}
}

func TestCheckIn_ClockGoingBackwardsIsIgnored(t *testing.T) {
	svc := testService(t)

	day2 := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	if _, err := svc.CheckIn(day2); err != nil {
		t.Fatalf("checkin: %v", err)
	}

	res, err := svc.CheckIn(day2.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("backwards: %v", err)
	}
	if res.Advanced {
		t.Error("a check-in dated before the last activity must not change the streak")
	}
	if !res.Streak.LastActivity.Equal(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last activity moved backwards: %v", res.Streak.LastActivity)
	}
}
