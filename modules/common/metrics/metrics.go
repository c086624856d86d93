package metrics

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"social-agents-server/modules/common/response"
)

// 서버 메트릭 (프로세스 단위, 재시작 시 초기화)
type Metrics struct {
	mutex         sync.RWMutex
	startTime     time.Time
	totalRequests int
	serverErrors  int
	routes        map[string]*routeStats
}

type routeStats struct {
	count   int
	errors  int
	elapsed time.Duration
}

// RouteSnapshot - 라우트별 집계
type RouteSnapshot struct {
	Route     string  `json:"route"`
	Count     int     `json:"count"`
	Errors    int     `json:"errors"`
	AvgMillis float64 `json:"avgMillis"`
}

// Snapshot - GET /metrics 응답
type Snapshot struct {
	Uptime        string          `json:"uptime"`
	StartTime     time.Time       `json:"startTime"`
	TotalRequests int             `json:"totalRequests"`
	ServerErrors  int             `json:"serverErrors"`
	Routes        []RouteSnapshot `json:"routes"`
}

func New() *Metrics {
	return &Metrics{
		startTime: time.Now(),
		routes:    map[string]*routeStats{},
	}
}

// Observe records one finished request. Status >= 400 counts as a route error.
func (m *Metrics) Observe(route string, status int, elapsed time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests++
	if status >= http.StatusInternalServerError {
		m.serverErrors++
	}

	stats, ok := m.routes[route]
	if !ok {
		stats = &routeStats{}
		m.routes[route] = stats
	}
	stats.count++
	stats.elapsed += elapsed
	if status >= http.StatusBadRequest {
		stats.errors++
	}
}

// Snapshot copies the counters, routes sorted by name.
func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:        time.Since(m.startTime).Round(time.Second).String(),
		StartTime:     m.startTime,
		TotalRequests: m.totalRequests,
		ServerErrors:  m.serverErrors,
		Routes:        make([]RouteSnapshot, 0, len(m.routes)),
	}
	for route, stats := range m.routes {
		snap.Routes = append(snap.Routes, RouteSnapshot{
			Route:     route,
			Count:     stats.count,
			Errors:    stats.errors,
			AvgMillis: float64(stats.elapsed.Microseconds()) / 1000 / float64(stats.count),
		})
	}
	sort.Slice(snap.Routes, func(i, j int) bool { return snap.Routes[i].Route < snap.Routes[j].Route })
	return snap
}

// HandleMetrics - GET /metrics
func (m *Metrics) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, m.Snapshot())
}
