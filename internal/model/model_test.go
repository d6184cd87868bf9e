package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureCode_RoundTrip(t *testing.T) {
	for _, fc := range failureCodes {
		wrapped := fmt.Errorf("commit: %w", fc.err)
		assert.Equal(t, fc.code, FailureCode(wrapped))
		assert.Equal(t, fc.err, FailureFromCode(fc.code))
	}
	assert.Empty(t, FailureCode(ErrStorageUnavailable))
	assert.Nil(t, FailureFromCode("NOPE"))
}

func TestTotalSlots(t *testing.T) {
	seven := 7
	assert.Equal(t, 4, (&Tournament{MatchType: MatchDuo, MaxPlayers: &seven}).TotalSlots())
	assert.Equal(t, 2, (&Tournament{MatchType: MatchSquad, MaxPlayers: &seven}).TotalSlots())
	assert.Equal(t, 0, (&Tournament{MatchType: MatchSolo}).TotalSlots())
}

func TestMatchType_Positions(t *testing.T) {
	assert.Equal(t, []Position{PositionA}, MatchSolo.Positions())
	assert.Equal(t, 4, MatchSquad.TeamSize())
	assert.True(t, MatchDuo.HasPosition(PositionB))
	assert.False(t, MatchDuo.HasPosition(PositionC))

	_, err := ParseMatchType("trio")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "60.00", FormatAmount(60))
	assert.Equal(t, "-5.00", FormatAmount(-5))
}
