//go:build unit

package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(KindLookupFailed, nil))

	base := errors.New("boom")
	err := Wrap(KindUpdateFailed, base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, KindUpdateFailed, KindOf(err))
	assert.Equal(t, KindUpdateFailed, KindOf(fmt.Errorf("outer: %w", err)))
	assert.Equal(t, KindUnknown, KindOf(base))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindConfigMissing, "Error: boom"},
		{KindConfigInvalid, "Error reading config file: boom"},
		{KindLookupFailed, "Error fetching IPv6 address: boom"},
		{KindStateFailed, "Error accessing address cache: boom"},
		{KindUpdateFailed, "Failed to update OVH DDNS: boom"},
		{KindUnknown, "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Message(Wrap(tt.kind, errors.New("boom"))))
		})
	}
}

func TestReport(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		assert.Equal(t, 0, Report(logger, nil))
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("EveryKindIsFatal", func(t *testing.T) {
		for _, kind := range []Kind{KindConfigMissing, KindConfigInvalid, KindLookupFailed, KindStateFailed, KindUpdateFailed, KindLogFailed} {
			logger, hook := test.NewNullLogger()
			assert.Equal(t, 1, Report(logger, Wrap(kind, errors.New("boom"))), kind.String())

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.ErrorLevel, entry.Level)
		}
	})
}
