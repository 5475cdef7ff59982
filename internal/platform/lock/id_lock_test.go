package lock_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/lock"
)

func TestWithLock_SerializesWriters(t *testing.T) {
	m := lock.NewManager()

	const workers = 20
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = m.WithLock("acc1", lock.Write, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestWithLock_DistinctKeysDoNotBlock(t *testing.T) {
	m := lock.NewManager()

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = m.WithLock("acc1", lock.Write, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	// A different key proceeds while acc1 is held.
	done := make(chan struct{})
	go func() {
		_ = m.WithLock("acc2", lock.Write, func() error { return nil })
		close(done)
	}()
	<-done
	close(release)
}

func TestWithLock_PropagatesError(t *testing.T) {
	m := lock.NewManager()
	sentinel := errors.New("boom")

	err := m.WithLock("acc1", lock.Write, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	// The lock is released afterwards.
	err = m.WithLock("acc1", lock.Write, func() error { return nil })
	assert.NoError(t, err)
}

func TestWithLock_RecoversPanic(t *testing.T) {
	m := lock.NewManager()

	err := m.WithLock("acc1", lock.Write, func() error { panic("kaboom") })
	require.Error(t, err)
	var ie *apperrors.InvocationError
	assert.ErrorAs(t, err, &ie)

	// Still usable.
	assert.NoError(t, m.WithLock("acc1", lock.Write, func() error { return nil }))
}

func TestWithLock_EmptyIDSkipsLocking(t *testing.T) {
	m := lock.NewManager()
	ran := false
	err := m.WithLock("", lock.Write, func() error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestWithLock_ReadersShareLock(t *testing.T) {
	m := lock.NewManager()

	first := make(chan struct{})
	second := make(chan struct{})
	go func() {
		_ = m.WithLock("acc1", lock.Read, func() error {
			close(first)
			<-second
			return nil
		})
	}()
	<-first

	// A second reader on the same key is not blocked by the first.
	err := m.WithLock("acc1", lock.Read, func() error {
		close(second)
		return nil
	})
	assert.NoError(t, err)
}
