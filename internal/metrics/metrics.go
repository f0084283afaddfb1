package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 导入运行数
	importsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imports_total",
			Help: "Total number of import runs",
		},
		[]string{"format", "outcome"}, // outcome: ok, partial, rejected, refused, failed
	)

	// 导入行数
	importRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Total number of imported rows by result",
		},
		[]string{"result"}, // accepted, rejected
	)

	// 待提交列表长度
	pendingBatchSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pending_batch_size",
			Help: "Current number of drafts in the pending batch",
		},
		[]string{"caller"},
	)

	// 申请创建数
	requestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_created_total",
			Help: "Total number of outage requests created",
		},
	)

	// 状态变更操作数
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_transitions_total",
			Help: "Total number of state transition operations",
		},
		[]string{"action"}, // confirm, cancel_approval, process, cancel_operation
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var registerOnce sync.Once

// Register 注册所有指标
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			importsTotal,
			importRowsTotal,
			pendingBatchSize,
			requestsCreatedTotal,
			transitionsTotal,
			databaseConnectionsActive,
			databaseConnectionsIdle,
			databaseConnectionsMax,
		)
	})
}

// Handler Prometheus 指标 HTTP 处理器
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordAPIRequest 记录一次 API 请求
func RecordAPIRequest(method, path string, status int, seconds float64) {
	apiRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordImport 记录一次导入运行
func RecordImport(format, outcome string, accepted, rejected int) {
	importsTotal.WithLabelValues(format, outcome).Inc()
	importRowsTotal.WithLabelValues("accepted").Add(float64(accepted))
	importRowsTotal.WithLabelValues("rejected").Add(float64(rejected))
}

// SetPendingBatchSize 更新待提交列表长度
func SetPendingBatchSize(caller string, size int) {
	pendingBatchSize.WithLabelValues(caller).Set(float64(size))
}

// RecordRequestsCreated 记录批量创建的申请数
func RecordRequestsCreated(count int) {
	requestsCreatedTotal.Add(float64(count))
}

// RecordTransition 记录一次状态变更
func RecordTransition(action string) {
	transitionsTotal.WithLabelValues(action).Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))
	return nil
}
