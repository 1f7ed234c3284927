package app

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudfoundry/disk-alert/internal/metrics"
	"github.com/cloudfoundry/disk-alert/internal/monitor"
	"github.com/cloudfoundry/disk-alert/pkg/logger"
	"github.com/cloudfoundry/disk-alert/pkg/pushclient"
	"github.com/cloudfoundry/disk-alert/pkg/system_stats"
)

type DiskAlertApp struct {
	cfg *Config
	log *logger.Logger

	metricsMutex  sync.Mutex
	metricsServer *metrics.Server
	metrics       metrics.Registrar

	monitorMutex sync.Mutex
	monitor      *monitor.Monitor
}

func NewDiskAlertApp(cfg *Config, log *logger.Logger) *DiskAlertApp {
	return &DiskAlertApp{
		cfg: cfg,
		log: log,
	}
}

func (a *DiskAlertApp) MetricsAddr() string {
	a.metricsMutex.Lock()
	defer a.metricsMutex.Unlock()

	if a.metricsServer == nil {
		return ""
	}
	return a.metricsServer.Addr()
}

// Run starts the DiskAlertApp, this is a blocking method call.
func (a *DiskAlertApp) Run() {
	a.startMetricsServer()

	notifier := pushclient.NewPushClient(
		pushclient.NewEnvTokenProvider(),
		pushclient.WithPushClientAddr(a.cfg.PushBulletAddr),
		pushclient.WithPushClientLogger(a.log),
	)

	diskMonitor := monitor.New(
		system_stats.NewMount(a.cfg.MonitorPath),
		notifier,
		a.cfg.FreeRatioThreshold,
		monitor.WithPollInterval(a.cfg.PollInterval),
		monitor.WithLogger(a.log),
		monitor.WithMetrics(a.metrics),
	)

	a.monitorMutex.Lock()
	a.monitor = diskMonitor
	a.monitorMutex.Unlock()

	a.log.Info("monitoring disk usage",
		logger.String("path", a.cfg.MonitorPath),
		logger.Float64("threshold", a.cfg.FreeRatioThreshold),
	)
	diskMonitor.Start()

	sigs := make(chan os.Signal, 1)
	done := make(chan bool, 1)

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		a.log.Info("received signal", logger.String("signal", sig.String()))
		a.Stop()
		close(done)
	}()

	<-done
}

// Stop stops all the subprocesses for the application.
func (a *DiskAlertApp) Stop() {
	a.monitorMutex.Lock()
	if a.monitor != nil {
		a.monitor.Stop()
		a.monitor = nil
	}
	a.monitorMutex.Unlock()

	a.metricsMutex.Lock()
	if a.metricsServer != nil {
		a.metricsServer.Close()
		a.metricsServer = nil
	}
	a.metricsMutex.Unlock()
}

func (a *DiskAlertApp) startMetricsServer() {
	registrar := metrics.NewRegistrar(
		a.log,
		"disk-alert",
		metrics.WithGauge(metrics.DiskAlertDiskFreeRatio, prometheus.GaugeOpts{
			Help: "Free-space ratio of the monitored filesystem",
		}),
		metrics.WithCounter(metrics.DiskAlertChecksTotal, prometheus.CounterOpts{
			Help: "Number of disk usage checks performed",
		}),
		metrics.WithCounter(metrics.DiskAlertReadErrorsTotal, prometheus.CounterOpts{
			Help: "Number of failed disk usage reads",
		}),
		metrics.WithCounter(metrics.DiskAlertNotificationsSentTotal, prometheus.CounterOpts{
			Help: "Number of low disk space notifications delivered",
		}),
		metrics.WithCounter(metrics.DiskAlertNotificationErrorsTotal, prometheus.CounterOpts{
			Help: "Number of failed notification deliveries",
		}),
		metrics.WithHistogram(metrics.DiskAlertCheckDurationSeconds, prometheus.HistogramOpts{
			Help:    "Duration of a single disk usage check",
			Buckets: []float64{.001, .01, .05, .1, .5, 1, 5},
		}),
	)

	a.metricsMutex.Lock()
	a.metrics = registrar
	a.metricsServer = metrics.StartMetricsServer(
		fmt.Sprintf("localhost:%d", a.cfg.HealthPort),
		a.log,
		registrar,
	)
	a.metricsMutex.Unlock()
}
