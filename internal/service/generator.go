package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

// GenerateDueTransactions materializes one transaction per pending occurrence
// of every active recurring rule belonging to userID, from each rule's cursor
// up through the calendar date of now. It runs synchronously as a
// precondition of transaction reads.
//
// Rules are processed independently: a persistence failure stops that rule at
// its last committed cursor and the remaining rules still run. The collected
// errors propagate to the caller, since silently skipping a due occurrence
// would corrupt the ledger.
func (s *DefaultService) GenerateDueTransactions(ctx context.Context, userID string, now time.Time) error {
	rules, err := s.repo.ListActiveRecurringRules(ctx, userID)
	if err != nil {
		return fmt.Errorf("error listing active recurring rules: %w", err)
	}

	today := dateOnly(now)

	var errs []error
	for i := range rules {
		rule := &rules[i]
		if err := s.generateForRule(ctx, rule, today); err != nil {
			slog.Error("recurring generation failed",
				"rule_id", rule.ID,
				"user_id", userID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("rule %s: %w", rule.ID, err))
		}
	}

	return errors.Join(errs...)
}

// generateForRule walks the rule's occurrence dates from its cursor to the
// horizon. The cursor is persisted after every advance, so a crash mid-run
// resumes from the last committed occurrence instead of re-deriving from an
// earlier date. On loop exit the cursor deliberately points at the first
// occurrence after the horizon, which is exactly where the next invocation
// must resume.
func (s *DefaultService) generateForRule(ctx context.Context, rule *models.RecurringRule, today time.Time) error {
	cursor := dateOnly(rule.StartDate)
	if rule.LastGenerated != nil {
		cursor = dateOnly(*rule.LastGenerated)
	}

	var endDate *time.Time
	if rule.EndDate != nil {
		e := dateOnly(*rule.EndDate)
		endDate = &e
	}

	for !cursor.After(today) && (endDate == nil || !cursor.After(*endDate)) {
		existing, err := s.repo.FindOccurrence(ctx, rule.UserID, rule.ID, cursor)
		if err != nil {
			return fmt.Errorf("error checking occurrence on %s: %w", cursor.Format("2006-01-02"), err)
		}

		if existing == nil {
			ruleID := rule.ID
			tx := &models.Transaction{
				UserID:      rule.UserID,
				Name:        rule.Name,
				Type:        rule.Type,
				Amount:      rule.Amount,
				Category:    rule.Category,
				Note:        rule.Note,
				Date:        cursor,
				IsRecurring: true,
				RecurringID: &ruleID,
			}

			if _, err := s.repo.CreateOccurrence(ctx, tx); err != nil {
				return fmt.Errorf("error creating occurrence on %s: %w", cursor.Format("2006-01-02"), err)
			}
		}

		cursor = nextOccurrence(cursor, rule)

		if err := s.repo.UpdateRuleCursor(ctx, rule.ID, cursor); err != nil {
			return fmt.Errorf("error saving cursor: %w", err)
		}
		c := cursor
		rule.LastGenerated = &c
	}

	return nil
}

// nextOccurrence advances one rule interval from cursor. Monthly and yearly
// stepping anchor on the rule's start date: a rule started on the 31st lands
// on Feb 28/29 and returns to the 31st in longer months.
func nextOccurrence(cursor time.Time, rule *models.RecurringRule) time.Time {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Frequency {
	case models.FrequencyWeekly:
		return cursor.AddDate(0, 0, 7*interval)
	case models.FrequencyMonthly:
		return addMonthsClamped(cursor, interval, rule.StartDate.Day())
	case models.FrequencyYearly:
		return addYearsClamped(cursor, interval, rule.StartDate.Month(), rule.StartDate.Day())
	default: // daily
		return cursor.AddDate(0, 0, interval)
	}
}

// addMonthsClamped steps whole calendar months, clamping the anchor day to
// the last day of shorter target months instead of letting the date roll
// over (Jan 31 + 1 month is Feb 28/29, not Mar 2/3).
func addMonthsClamped(t time.Time, months, anchorDay int) time.Time {
	y, m, _ := t.Date()
	total := int(m) - 1 + months
	year := y + total/12
	month := time.Month(total%12 + 1)

	day := anchorDay
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// addYearsClamped steps whole calendar years on the rule's anchor month and
// day (a Feb 29 anchor lands on Feb 28 in non-leap years).
func addYearsClamped(t time.Time, years int, anchorMonth time.Month, anchorDay int) time.Time {
	year := t.Year() + years

	day := anchorDay
	if last := daysInMonth(year, anchorMonth); day > last {
		day = last
	}

	return time.Date(year, anchorMonth, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
