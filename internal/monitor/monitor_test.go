package monitor_test

import (
	"errors"
	"sync"
	"time"

	"github.com/cloudfoundry/disk-alert/internal/metrics"
	"github.com/cloudfoundry/disk-alert/internal/monitor"
	"github.com/cloudfoundry/disk-alert/internal/testing"
	"go.uber.org/atomic"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type monitorTestContext struct {
	source    *spyUsageSource
	notifier  *spyNotifier
	registrar *testing.SpyMetricRegistrar
}

var _ = Describe("Monitor", func() {
	var setup = func() *monitorTestContext {
		return &monitorTestContext{
			source:    &spyUsageSource{},
			notifier:  &spyNotifier{},
			registrar: testing.NewSpyMetricRegistrar(),
		}
	}

	var newMonitor = func(tc *monitorTestContext, threshold float64, options ...monitor.WithOption) *monitor.Monitor {
		options = append([]monitor.WithOption{monitor.WithMetrics(tc.registrar)}, options...)
		return monitor.New(tc.source, tc.notifier, threshold, options...)
	}

	Describe("Start", func() {
		It("runs repeatedly", func() {
			tc := setup()
			tc.source.enqueue(0.5, nil)

			m := newMonitor(tc, 0.10, monitor.WithPollInterval(time.Millisecond))

			m.Start()

			Eventually(tc.source.Calls.Load).Should(BeNumerically(">", 1))
			m.Stop()
		})

		It("stops", func() {
			tc := setup()
			tc.source.enqueue(0.5, nil)

			m := newMonitor(tc, 0.10, monitor.WithPollInterval(time.Millisecond))

			m.Start()
			Eventually(tc.source.Calls.Load).Should(BeNumerically(">", 1))
			m.Stop()
			callsAtStop := tc.source.Calls.Load()
			Consistently(tc.source.Calls.Load).Should(BeNumerically("<=", callsAtStop+1))
		})
	})

	Describe("Check", func() {
		It("alerts the first time free space drops below the threshold", func() {
			tc := setup()
			tc.source.enqueue(0.09, nil)

			m := newMonitor(tc, 0.10)
			m.Check()

			Expect(tc.notifier.Sends.Load()).To(Equal(int64(1)))
			Expect(tc.notifier.sentRatios()).To(Equal([]float64{0.09}))
			Expect(tc.registrar.Fetch(metrics.DiskAlertNotificationsSentTotal)()).To(Equal(1.0))
		})

		It("does not alert while free space meets the threshold", func() {
			tc := setup()
			tc.source.enqueue(0.5, nil)
			tc.source.enqueue(0.10, nil)

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()

			Expect(tc.notifier.Sends.Load()).To(Equal(int64(0)))
		})

		It("does not re-alert for an unchanged low reading", func() {
			tc := setup()
			tc.source.enqueue(0.09, nil)
			tc.source.enqueue(0.09, nil)

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()

			Expect(tc.notifier.Sends.Load()).To(Equal(int64(1)))
		})

		It("re-alerts on a whole percentage point decrease", func() {
			tc := setup()
			tc.source.enqueue(0.09, nil)
			tc.source.enqueue(0.08, nil)

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()

			Expect(tc.notifier.Sends.Load()).To(Equal(int64(2)))
			Expect(tc.notifier.sentRatios()).To(Equal([]float64{0.09, 0.08}))
		})

		It("does not alert while free space improves below the threshold", func() {
			tc := setup()
			tc.source.enqueue(0.08, nil)
			tc.source.enqueue(0.09, nil)

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()

			Expect(tc.notifier.Sends.Load()).To(Equal(int64(1)))
		})

		It("records the free-space ratio on every successful read", func() {
			tc := setup()
			tc.source.enqueue(0.42, nil)

			m := newMonitor(tc, 0.10)
			m.Check()

			Expect(tc.registrar.Fetch(metrics.DiskAlertDiskFreeRatio)()).To(Equal(0.42))
			Expect(tc.registrar.Fetch(metrics.DiskAlertChecksTotal)()).To(Equal(1.0))
		})

		It("leaves the retained ratio unchanged across a failed read", func() {
			tc := setup()
			tc.source.enqueue(0.09, nil)
			tc.source.enqueue(0, errors.New("mount not found"))
			tc.source.enqueue(0.08, nil)

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()
			m.Check()

			// the failed cycle sent nothing, and the recovery reading is
			// compared against the pre-failure value
			Expect(tc.notifier.Sends.Load()).To(Equal(int64(2)))
			Expect(tc.notifier.sentRatios()).To(Equal([]float64{0.09, 0.08}))
			Expect(tc.registrar.Fetch(metrics.DiskAlertReadErrorsTotal)()).To(Equal(1.0))
		})

		It("still records the ratio when delivery fails", func() {
			tc := setup()
			tc.source.enqueue(0.09, nil)
			tc.source.enqueue(0.09, nil)
			tc.notifier.nextError(errors.New("pushbullet unavailable"))

			m := newMonitor(tc, 0.10)
			m.Check()
			m.Check()

			// the failed delivery is not retried for the same reading
			Expect(tc.notifier.Sends.Load()).To(Equal(int64(1)))
			Expect(tc.registrar.Fetch(metrics.DiskAlertNotificationErrorsTotal)()).To(Equal(1.0))
			Expect(tc.registrar.Fetch(metrics.DiskAlertNotificationsSentTotal)()).To(Equal(0.0))
		})
	})
})

type usageReading struct {
	ratio float64
	err   error
}

type spyUsageSource struct {
	Calls atomic.Int64

	mu       sync.Mutex
	readings []usageReading
}

func (s *spyUsageSource) enqueue(ratio float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, usageReading{ratio: ratio, err: err})
}

func (s *spyUsageSource) FreeRatio() (float64, error) {
	s.Calls.Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.readings) == 0 {
		return 1.0, nil
	}

	reading := s.readings[0]
	if len(s.readings) > 1 {
		s.readings = s.readings[1:]
	}
	return reading.ratio, reading.err
}

type spyNotifier struct {
	Sends atomic.Int64

	mu     sync.Mutex
	ratios []float64
	err    error
}

func (s *spyNotifier) nextError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}

// Send counts every delivery attempt; ratios are recorded only for
// deliveries that succeed.
func (s *spyNotifier) Send(freeRatio float64) error {
	s.Sends.Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		err := s.err
		s.err = nil
		return err
	}

	s.ratios = append(s.ratios, freeRatio)
	return nil
}

func (s *spyNotifier) sentRatios() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]float64{}, s.ratios...)
}
