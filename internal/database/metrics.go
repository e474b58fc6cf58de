package database

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

// QueryLatency records statement latency by operation and table.
var QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "gatormarket_database_query_latency_seconds",
	Help:    "Database query latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "table"})

const queryStartKey = "metrics:query_start"

func markQueryStart(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func observeQuery(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			QueryLatency.WithLabelValues(operation, tx.Statement.Table).Observe(time.Since(start).Seconds())
		}
	}
}

// RegisterQueryMetrics hooks latency observation into db's callback chains.
func RegisterQueryMetrics(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", markQueryStart),
		cb.Create().After("gorm:create").Register("metrics:after_create", observeQuery("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", markQueryStart),
		cb.Query().After("gorm:query").Register("metrics:after_query", observeQuery("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", markQueryStart),
		cb.Update().After("gorm:update").Register("metrics:after_update", observeQuery("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", markQueryStart),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", observeQuery("delete")),
		cb.Raw().Before("gorm:raw").Register("metrics:before_raw", markQueryStart),
		cb.Raw().After("gorm:raw").Register("metrics:after_raw", observeQuery("raw")),
	)
}
