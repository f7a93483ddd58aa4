package monitoring

import (
	"database/sql"
	"runtime"
	"time"
)

// Service holds runtime context for monitoring and reporting.
type Service struct {
	db        *sql.DB
	startedAt time.Time
}

// Snapshot is a point-in-time view of process and inventory health.
type Snapshot struct {
	TimestampUTC       string `json:"timestamp_utc"`
	UptimeSeconds      int64  `json:"uptime_seconds"`
	Goroutines         int    `json:"goroutines"`
	GoMemoryAllocBytes uint64 `json:"go_memory_alloc_bytes"`
	GoHeapInUseBytes   uint64 `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32 `json:"go_gc_count"`
	DBOpenConnections  int    `json:"db_open_connections"`
	DBInUseConnections int    `json:"db_in_use_connections"`
	DBWaitCount        int64  `json:"db_wait_count"`
	UsersTotal         int64  `json:"users_total"`
	ChemicalsTotal     int64  `json:"chemicals_total"`
	ShelvesTotal       int64  `json:"shelves_total"`
}

func NewService(db *sql.DB, startedAt time.Time) *Service {
	return &Service{db: db, startedAt: startedAt}
}

// Snapshot gathers runtime, pool and row-count metrics. Count queries are
// best-effort: a failing count reports -1 rather than failing the snapshot.
func (s *Service) Snapshot() Snapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	poolStats := s.db.Stats()

	return Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memStats.Alloc,
		GoHeapInUseBytes:   memStats.HeapInuse,
		GoGCCount:          memStats.NumGC,
		DBOpenConnections:  poolStats.OpenConnections,
		DBInUseConnections: poolStats.InUse,
		DBWaitCount:        poolStats.WaitCount,
		UsersTotal:         s.countRows("users"),
		ChemicalsTotal:     s.countRows("chemicals"),
		ShelvesTotal:       s.countRows("shelves"),
	}
}

func (s *Service) countRows(table string) int64 {
	var total int64
	query := "SELECT COUNT(*) FROM " + table
	if err := s.db.QueryRow(query).Scan(&total); err != nil {
		return -1
	}
	return total
}
