package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registrar is used to update values of metrics.
type Registrar interface {
	Set(name string, value float64)
	Inc(name string)
	Histogram(name string) prometheus.Observer
	Registerer() prometheus.Registerer
	Gatherer() prometheus.Gatherer
}

const (
	DiskAlertDiskFreeRatio           = "disk_alert_disk_free_ratio"
	DiskAlertChecksTotal             = "disk_alert_checks_total"
	DiskAlertReadErrorsTotal         = "disk_alert_read_errors_total"
	DiskAlertNotificationsSentTotal  = "disk_alert_notifications_sent_total"
	DiskAlertNotificationErrorsTotal = "disk_alert_notification_errors_total"
	DiskAlertCheckDurationSeconds    = "disk_alert_check_duration_seconds"
)
