package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
)

func TestDay_NormalizesToUTCMidnight(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	in := time.Date(2014, 11, 18, 23, 59, 59, 0, jst) // 14:59:59 UTC
	assert.True(t, domain.DayOf(2014, time.November, 18).Equal(domain.Day(in)))
}

func TestDayComparisons(t *testing.T) {
	d18 := domain.DayOf(2014, time.November, 18)
	d19 := domain.DayOf(2014, time.November, 19)

	assert.True(t, domain.AfterEqualsDay(d18, d18))
	assert.True(t, domain.AfterEqualsDay(d19, d18))
	assert.False(t, domain.AfterEqualsDay(d18, d19))

	assert.True(t, domain.BeforeEqualsDay(d18, d18))
	assert.True(t, domain.BeforeEqualsDay(d18, d19))
	assert.False(t, domain.BeforeEqualsDay(d19, d18))

	assert.True(t, domain.BeforeDay(d18, d19))
	assert.False(t, domain.BeforeDay(d18, d18))

	assert.True(t, domain.SameDay(d18, d18.Add(10*time.Hour)))
	assert.False(t, domain.SameDay(d18, d19))
}
