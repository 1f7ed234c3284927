package monitor

import (
	"time"

	"github.com/cloudfoundry/disk-alert/internal/metrics"
	"github.com/cloudfoundry/disk-alert/internal/throttle"
	"github.com/cloudfoundry/disk-alert/pkg/logger"
)

// UsageSource reports the current free-space ratio of the monitored
// filesystem.
type UsageSource interface {
	FreeRatio() (float64, error)
}

// Notifier delivers a single alert for the given free-space ratio.
type Notifier interface {
	Send(freeRatio float64) error
}

// Monitor periodically samples free disk space and sends a notification
// when it drops below the configured threshold. Notifications are throttled
// so that a sustained low-space condition alerts at most once per whole
// percentage point of decrease.
type Monitor struct {
	log     *logger.Logger
	metrics metrics.Registrar

	source       UsageSource
	notifier     Notifier
	threshold    float64
	pollInterval time.Duration
	done         chan bool

	// previous holds the last successfully observed ratio. It is touched
	// only by the monitor's own sequential cycles and starts at 1.0 so the
	// first sub-threshold reading always alerts.
	previous float64
}

// New returns a configured Monitor.
func New(
	source UsageSource,
	notifier Notifier,
	threshold float64,
	options ...WithOption,
) *Monitor {
	monitor := &Monitor{
		log:          logger.NewNop(),
		metrics:      &metrics.NullRegistrar{},
		source:       source,
		notifier:     notifier,
		threshold:    threshold,
		pollInterval: 5 * time.Minute,
		done:         make(chan bool, 1),
		previous:     1.0,
	}

	for _, option := range options {
		option(monitor)
	}
	return monitor
}

type WithOption func(monitor *Monitor)

func WithPollInterval(interval time.Duration) WithOption {
	return func(monitor *Monitor) {
		monitor.pollInterval = interval
	}
}

func WithLogger(log *logger.Logger) WithOption {
	return func(monitor *Monitor) {
		monitor.log = log
	}
}

func WithMetrics(metrics metrics.Registrar) WithOption {
	return func(monitor *Monitor) {
		monitor.metrics = metrics
	}
}

// Start runs the monitor and periodically checks the monitored filesystem
// against the threshold.
func (monitor *Monitor) Start() {
	go monitor.Run()
}

func (monitor *Monitor) Run() {
	monitor.Check()

	t := time.NewTicker(monitor.pollInterval)
	for {
		select {
		case <-monitor.done:
			t.Stop()
			return
		case <-t.C:
			monitor.Check()
		}
	}
}

// Check runs a single sample-decide-notify cycle. No failure within the
// cycle is fatal: a read failure leaves the retained ratio unchanged, and a
// delivery failure still records the ratio so the same value is not
// re-notified on the next cycle.
func (monitor *Monitor) Check() {
	start := time.Now()
	defer func() {
		monitor.metrics.Histogram(metrics.DiskAlertCheckDurationSeconds).Observe(time.Since(start).Seconds())
	}()

	monitor.metrics.Inc(metrics.DiskAlertChecksTotal)
	monitor.log.Debug("checking disk usage",
		logger.Float64("threshold", monitor.threshold),
		logger.Float64("previous", monitor.previous),
	)

	current, err := monitor.source.FreeRatio()
	if err != nil {
		monitor.metrics.Inc(metrics.DiskAlertReadErrorsTotal)
		monitor.log.Error("reading disk usage", err,
			logger.Float64("threshold", monitor.threshold),
			logger.Float64("previous", monitor.previous),
		)
		return
	}

	monitor.metrics.Set(metrics.DiskAlertDiskFreeRatio, current)

	if throttle.ShouldAlert(current, monitor.threshold, monitor.previous) {
		err = monitor.notifier.Send(current)
		if err != nil {
			monitor.metrics.Inc(metrics.DiskAlertNotificationErrorsTotal)
			monitor.log.Error("sending low disk space notification", err,
				logger.Float64("free_ratio", current),
			)
		} else {
			monitor.metrics.Inc(metrics.DiskAlertNotificationsSentTotal)
			monitor.log.Info("sent low disk space notification",
				logger.Float64("free_ratio", current),
			)
		}
	} else {
		monitor.log.Debug("low disk space threshold not met",
			logger.Float64("free_ratio", current),
		)
	}

	monitor.previous = current
}

// Stop shuts down the monitor. An in-flight cycle is not interrupted.
func (monitor *Monitor) Stop() {
	close(monitor.done)
}
