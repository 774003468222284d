package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	require.Equal(t, "--:--", Clock(time.Time{}))

	at := time.Date(2024, 3, 1, 9, 5, 0, 0, time.Local)
	require.Equal(t, "09:05", Clock(at))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, time.UTC, NowUTC().Location())
}
