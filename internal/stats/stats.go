package stats

import (
	"expvar"
	"strconv"
	"time"
)

type StatsProvider interface {
	Incr(name string)
	Decr(name string)
	RegisterMetric(name string)
	Run()
}

// StatsUpdater tracks client-side counters (requests, frames,
// connects) on expvar. Updates funnel through a channel so callers
// never block on the counter itself.
type StatsUpdater struct {
	vars       *expvar.Map
	updateChan chan *metricsUpdateReq
}

type metricsUpdateReq struct {
	name  string
	value int
}

// expvar registration is process-global, register the map once.
var statsVars = expvar.NewMap("fitcli-stats")

// NewStatsUpdater creates a new stats updater instance.
func NewStatsUpdater() *StatsUpdater {
	su := &StatsUpdater{
		updateChan: make(chan *metricsUpdateReq, 512),
	}
	su.vars = statsVars
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))
}

func (su *StatsUpdater) updateMetrics() {
	for req := range su.updateChan {
		metric := su.vars.Get(req.name)
		if metric == nil {
			panic("metric not found: " + req.name)
		}

		metric.(*expvar.Int).Add(int64(req.value))
	}
}

func (su *StatsUpdater) Incr(name string) {
	su.updateChan <- &metricsUpdateReq{name: name, value: 1}
}

func (su *StatsUpdater) Decr(name string) {
	su.updateChan <- &metricsUpdateReq{name: name, value: -1}
}

// RegisterMetric is idempotent; a name already present keeps its
// current value.
func (su *StatsUpdater) RegisterMetric(name string) {
	if su.vars.Get(name) == nil {
		su.vars.Set(name, new(expvar.Int))
	}
}

// Snapshot returns the current value of every registered counter,
// used by the CLI to print session stats on exit.
func (su *StatsUpdater) Snapshot() map[string]int64 {
	snapshot := make(map[string]int64)
	su.vars.Do(func(kv expvar.KeyValue) {
		if v, ok := kv.Value.(*expvar.Int); ok {
			n, err := strconv.ParseInt(v.String(), 10, 64)
			if err == nil {
				snapshot[kv.Key] = n
			}
		}
	})

	return snapshot
}

func (su *StatsUpdater) Run() {
	go su.updateMetrics()
}

func (su *StatsUpdater) Stop() {
	close(su.updateChan)
}
