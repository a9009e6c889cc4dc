package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlinePassedIsExclusive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	before := now.Add(time.Minute)
	after := now.Add(-time.Minute)

	assert.False(t, deadlinePassed(&before, now), "a future deadline has not passed")
	assert.True(t, deadlinePassed(&after, now), "a past deadline has passed")
	assert.True(t, deadlinePassed(&now, now), "exactly at the deadline counts as passed")
	assert.False(t, deadlinePassed(nil, now), "no deadline never passes")
}
