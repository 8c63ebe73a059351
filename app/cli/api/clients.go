package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"article-planner/app/cli/types"
)

const dialTimeout = 10 * time.Second
const fastReqTimeout = 30 * time.Second

// generation and enrichment wait on the models
const slowReqTimeout = 5 * time.Minute

type Api struct {
	host string
}

var Client types.ApiClient = (*Api)(nil)

func NewApi(host string) *Api {
	return &Api{host: strings.TrimRight(host, "/")}
}

// Init points the package-level Client at host.
func Init(host string) {
	Client = NewApi(host)
}

var netDialer = &net.Dialer{
	Timeout: dialTimeout,
}

var fastClient = &http.Client{
	Transport: &http.Transport{
		DialContext: netDialer.DialContext,
	},
	Timeout: fastReqTimeout,
}

var slowClient = &http.Client{
	Transport: &http.Transport{
		DialContext: netDialer.DialContext,
	},
	Timeout: slowReqTimeout,
}
