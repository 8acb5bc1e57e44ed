package model

import "net/http"

//
// HTTP
//

// HTTPClient is the interface of a generic HTTP client. The stdlib's
// http.Client implements this interface. Consumers of this interface
// typically provide a custom client to control timeouts or, in unit
// tests, a mock that does not touch the network.
type HTTPClient interface {
	// Do should work like http.Client.Do.
	Do(req *http.Request) (*http.Response, error)
}
