package app_test

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cloudfoundry/disk-alert/cmd/disk-alert/app"
	"github.com/cloudfoundry/disk-alert/internal/metrics"
	"github.com/cloudfoundry/disk-alert/pkg/logger"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Disk Alert App", func() {
	var (
		diskAlert *app.DiskAlertApp
		pushApi   *spyPushApi
	)

	BeforeEach(func() {
		os.Setenv("PUSHBULLET_TOKEN", "test-token")

		pushApi = &spyPushApi{}
		pushApi.server = httptest.NewServer(http.HandlerFunc(pushApi.handle))

		diskAlert = app.NewDiskAlertApp(&app.Config{
			MonitorPath: "/",
			// a threshold of 100% forces an alert on the first cycle
			FreeRatioThreshold: 1.0,
			PollInterval:       time.Hour,
			PushBulletAddr:     pushApi.server.URL,
			HealthPort:         0,
			LogLevel:           "info",
		}, logger.NewTestLogger(GinkgoWriter))
		go diskAlert.Run()

		Eventually(diskAlert.MetricsAddr).ShouldNot(BeEmpty())
	})

	AfterEach(func() {
		diskAlert.Stop()
		pushApi.server.Close()
		os.Unsetenv("PUSHBULLET_TOKEN")
	})

	It("serves metrics on a metrics endpoint", func() {
		var body string
		fn := func() string {
			resp, err := http.Get("http://" + diskAlert.MetricsAddr() + "/metrics")
			if err != nil {
				return ""
			}
			defer resp.Body.Close()

			bytes, err := ioutil.ReadAll(resp.Body)
			if err != nil {
				return ""
			}

			body = string(bytes)

			return body
		}
		Eventually(fn).ShouldNot(BeEmpty())
		Expect(body).To(ContainSubstring(metrics.DiskAlertChecksTotal))
		Expect(body).To(ContainSubstring(metrics.DiskAlertDiskFreeRatio))
		Expect(body).To(ContainSubstring("go_threads"))
	})

	It("pushes a low disk space notification", func() {
		Eventually(pushApi.requestsReceived).Should(Equal(1))

		request := pushApi.lastRequest()
		Expect(request.path).To(Equal("/v2/pushes"))
		Expect(request.accessToken).To(Equal("test-token"))
		Expect(string(request.body)).To(ContainSubstring("Low disk space"))
		Expect(string(request.body)).To(ContainSubstring("left!"))
	})
})

type pushRequest struct {
	path        string
	accessToken string
	body        []byte
}

type spyPushApi struct {
	mu sync.Mutex

	server   *httptest.Server
	requests []pushRequest
}

func (s *spyPushApi) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := ioutil.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, pushRequest{
		path:        r.URL.Path,
		accessToken: r.Header.Get("Access-Token"),
		body:        body,
	})
	s.mu.Unlock()

	w.Write([]byte(`{}`))
}

func (s *spyPushApi) requestsReceived() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func (s *spyPushApi) lastRequest() pushRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	Expect(s.requests).ToNot(BeEmpty())
	return s.requests[len(s.requests)-1]
}
