package pushclient

import (
	"errors"
	"os"
)

// TokenProvider supplies the PushBullet access token at send time, so the
// credential source can vary without changing the client.
type TokenProvider interface {
	Token() (string, error)
}

// EnvTokenProvider reads the token from the process environment on every
// lookup. A token added after startup is picked up on the next send.
type EnvTokenProvider struct {
	variable string
}

func NewEnvTokenProvider() *EnvTokenProvider {
	return &EnvTokenProvider{
		variable: "PUSHBULLET_TOKEN",
	}
}

func (p *EnvTokenProvider) Token() (string, error) {
	token, ok := os.LookupEnv(p.variable)
	if !ok || token == "" {
		return "", errors.New(p.variable + " is not set")
	}

	return token, nil
}

// StaticTokenProvider returns a fixed token, for explicit configuration and
// tests.
type StaticTokenProvider struct {
	token string
}

func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{
		token: token,
	}
}

func (p *StaticTokenProvider) Token() (string, error) {
	return p.token, nil
}
