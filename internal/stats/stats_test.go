package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStatsUpdater(t *testing.T) {
	su := NewStatsUpdater()
	assert.NotNil(t, su, "expected StatsUpdater to be non-nil")
	assert.NotNil(t, su.updateChan, "expected updateChan to be initialized")
}

func TestStatsUpdater_Counters(t *testing.T) {
	su := NewStatsUpdater()
	su.RegisterMetric("NumMessagesSent")
	su.Run()
	defer su.Stop()

	su.Incr("NumMessagesSent")
	su.Incr("NumMessagesSent")
	su.Decr("NumMessagesSent")

	assert.Eventually(t, func() bool {
		return su.Snapshot()["NumMessagesSent"] == 1
	}, time.Second, 10*time.Millisecond, "expected counter to settle at 1")
}
