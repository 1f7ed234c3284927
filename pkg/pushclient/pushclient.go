package pushclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cloudfoundry/disk-alert/pkg/logger"
)

type ApiError struct {
	Status int
	Detail string
}

func (a *ApiError) Error() string {
	return fmt.Sprintf("got error from PushBullet: status %d: %s", a.Status, a.Detail)
}

// PushClient delivers low disk space notifications through the PushBullet
// pushes API.
type PushClient struct {
	httpClient *http.Client
	addr       string
	tokens     TokenProvider
	log        *logger.Logger
}

func NewPushClient(tokens TokenProvider, opts ...PushClientOption) *PushClient {
	client := &PushClient{
		addr:   "https://api.pushbullet.com",
		tokens: tokens,
		log:    logger.NewNop(),
	}

	client.httpClient = &http.Client{
		Timeout: 5 * time.Second,
	}

	for _, o := range opts {
		o(client)
	}

	return client
}

type PushClientOption func(*PushClient)

func WithPushClientLogger(log *logger.Logger) PushClientOption {
	return func(client *PushClient) {
		client.log = log
	}
}

func WithPushClientAddr(addr string) PushClientOption {
	return func(client *PushClient) {
		client.addr = addr
	}
}

func WithPushClientTimeout(timeout time.Duration) PushClientOption {
	return func(client *PushClient) {
		client.httpClient.Timeout = timeout
	}
}

type push struct {
	Body  string `json:"body"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Send delivers a single notification for the given free-space ratio. A
// missing token, a transport failure and a non-200 response are all
// returned as errors; the caller decides whether they are fatal.
func (c *PushClient) Send(freeRatio float64) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("unable to get PushBullet token: %w", err)
	}

	payload, err := json.Marshal(push{
		Body:  fmt.Sprintf("Only %.2f%% left!", 100*freeRatio),
		Title: "Low disk space",
		Type:  "note",
	})
	if err != nil {
		return fmt.Errorf("unable to serialize message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.addr+"/v2/pushes", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Access-Token", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send push message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := ioutil.ReadAll(resp.Body)
		return &ApiError{
			Status: resp.StatusCode,
			Detail: string(body),
		}
	}

	return nil
}
