package mocks

import (
	"net/http"

	"github.com/pageperf/pageperf/internal/model"
)

// HTTPClient allows mocking model.HTTPClient.
type HTTPClient struct {
	MockDo func(req *http.Request) (*http.Response, error)
}

var _ model.HTTPClient = &HTTPClient{}

// Do calls MockDo.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.MockDo(req)
}
