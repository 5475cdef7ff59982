// Package timekeeper tracks the system's logical business day, which is
// advanced explicitly by an operator job and is distinct from wall-clock time.
package timekeeper

import (
	"sync"
	"time"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
)

// TimePoint pairs the business day with the wall-clock timestamp of one
// observation.
type TimePoint struct {
	Day  time.Time
	Date time.Time
}

// AfterEqualsDay reports whether the business day is on or after d.
func (tp TimePoint) AfterEqualsDay(d time.Time) bool {
	return domain.AfterEqualsDay(tp.Day, d)
}

// BeforeEqualsDay reports whether the business day is on or before d.
func (tp TimePoint) BeforeEqualsDay(d time.Time) bool {
	return domain.BeforeEqualsDay(tp.Day, d)
}

// BeforeDay reports whether the business day is strictly before d.
func (tp TimePoint) BeforeDay(d time.Time) bool {
	return domain.BeforeDay(tp.Day, d)
}

// SameDay reports whether the business day equals d.
func (tp TimePoint) SameDay(d time.Time) bool {
	return domain.SameDay(tp.Day, d)
}

// Service is the business-time collaborator consumed by the ledger core.
type Service interface {
	// Day returns the current business day.
	Day() time.Time
	// Now returns the current wall-clock timestamp.
	Now() time.Time
	// TimePoint returns the current day/timestamp pair.
	TimePoint() TimePoint
	// DayPlus returns the business day shifted by n days. This is a
	// simplistic stand-in for settlement-calendar computation.
	DayPlus(n int) time.Time
	// AdvanceDay moves the business day forward by one day.
	AdvanceDay() time.Time
}

// Timekeeper is the in-memory Service implementation.
type Timekeeper struct {
	mu  sync.RWMutex
	day time.Time
	now func() time.Time
}

var _ Service = (*Timekeeper)(nil)

// New returns a Timekeeper starting at the given business day.
func New(day time.Time) *Timekeeper {
	return &Timekeeper{day: domain.Day(day), now: time.Now}
}

// NewAt returns a Timekeeper with a fixed clock, for tests.
func NewAt(day time.Time, now func() time.Time) *Timekeeper {
	return &Timekeeper{day: domain.Day(day), now: now}
}

func (t *Timekeeper) Day() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.day
}

func (t *Timekeeper) Now() time.Time {
	return t.now()
}

func (t *Timekeeper) TimePoint() TimePoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TimePoint{Day: t.day, Date: t.now()}
}

func (t *Timekeeper) DayPlus(n int) time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.day.AddDate(0, 0, n)
}

func (t *Timekeeper) AdvanceDay() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.day = t.day.AddDate(0, 0, 1)
	return t.day
}
