package davclient

import (
	"net/http"
	"time"
)

type config struct {
	Endpoint string
	User     string
	Password string
	Timeout  time.Duration
	Client   *http.Client
}

type Option func(*config)

func WithEndpoint(e string) Option {
	return func(c *config) {
		c.Endpoint = e
	}
}

func WithAuth(user string, password string) Option {
	return func(c *config) {
		c.User = user
		c.Password = password
	}
}

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.Timeout = t
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(c *config) {
		c.Client = cli
	}
}
