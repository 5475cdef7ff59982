package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
)

func TestActionStatusType_Groups(t *testing.T) {
	cases := []struct {
		status       domain.ActionStatusType
		unprocessed  bool
		unprocessing bool
		finish       bool
	}{
		{domain.StatusUnprocessed, true, true, false},
		{domain.StatusProcessing, true, false, false},
		{domain.StatusError, true, true, false},
		{domain.StatusProcessed, false, false, true},
		{domain.StatusCancelled, false, false, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.unprocessed, tc.status.IsUnprocessed())
			assert.Equal(t, tc.unprocessing, tc.status.IsUnprocessing())
			assert.Equal(t, tc.finish, tc.status.IsFinish())
		})
	}
}
