package api

import (
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"socialmedia/app/cli/auth"
)

const dialTimeout = 10 * time.Second
const fastReqTimeout = 30 * time.Second
const slowReqTimeout = 5 * time.Minute

const DefaultApiHost = "http://localhost:8000"

type Api struct{}

var Client = &Api{}

// GetApiHost prefers SOCIALCTL_API_HOST, then the signed-in session's host.
func GetApiHost() string {
	if host := os.Getenv("SOCIALCTL_API_HOST"); host != "" {
		return strings.TrimRight(host, "/")
	}
	if auth.Current != nil && auth.Current.Host != "" {
		return strings.TrimRight(auth.Current.Host, "/")
	}
	return DefaultApiHost
}

type authenticatedTransport struct {
	underlyingTransport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and adds the bearer token
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	auth.SetAuthHeader(req)
	return t.underlyingTransport.RoundTrip(req)
}

var netDialer = &net.Dialer{
	Timeout: dialTimeout,
}

var unauthenticatedClient = &http.Client{
	Transport: &http.Transport{
		DialContext: netDialer.DialContext,
	},
	Timeout: fastReqTimeout,
}

var authenticatedFastClient = &http.Client{
	Transport: &authenticatedTransport{
		underlyingTransport: &http.Transport{
			DialContext: netDialer.DialContext,
		},
	},
	Timeout: fastReqTimeout,
}

// uploads stream the whole file so they get the long timeout
var authenticatedSlowClient = &http.Client{
	Transport: &authenticatedTransport{
		underlyingTransport: &http.Transport{
			DialContext: netDialer.DialContext,
		},
	},
	Timeout: slowReqTimeout,
}
