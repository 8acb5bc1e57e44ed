package model

//
// Raw browser timing records
//
// These structures mirror the W3C performance-timeline entries that the
// in-page agent reads from the browser and forwards to us. Durations and
// milestones are float64 milliseconds relative to the navigation start,
// byte counts are int64. A milestone the browser could not measure (e.g.,
// for a cross-origin resource without Timing-Allow-Origin) is zero.
//

// ResourceTiming is the raw timing record of one finished sub-resource
// load, i.e., a PerformanceResourceTiming entry.
type ResourceTiming struct {
	// Name is the resource URL.
	Name string `json:"name"`

	// InitiatorType is the category of whatever initiated the load
	// (e.g., "script", "img", "css", "fetch").
	InitiatorType string `json:"initiatorType"`

	// StartTime is when the browser queued the load.
	StartTime float64 `json:"startTime"`

	// Duration is the total load duration.
	Duration float64 `json:"duration"`

	// DomainLookupStart is when the domain lookup started.
	DomainLookupStart float64 `json:"domainLookupStart"`

	// DomainLookupEnd is when the domain lookup completed.
	DomainLookupEnd float64 `json:"domainLookupEnd"`

	// FetchStart is when the browser started fetching the resource.
	FetchStart float64 `json:"fetchStart"`

	// RequestStart is when the browser sent the request.
	RequestStart float64 `json:"requestStart"`

	// ResponseStart is when the first response byte arrived.
	ResponseStart float64 `json:"responseStart"`

	// ResponseEnd is when the last response byte arrived.
	ResponseEnd float64 `json:"responseEnd"`

	// TransferSize is the number of bytes moved over the network,
	// including headers. Zero for cache hits.
	TransferSize int64 `json:"transferSize"`

	// EncodedBodySize is the size of the body before decoding.
	EncodedBodySize int64 `json:"encodedBodySize"`

	// DecodedBodySize is the size of the body after decoding.
	DecodedBodySize int64 `json:"decodedBodySize"`
}

// NavigationTiming is the raw timing record of the main document's own
// load, i.e., a PerformanceNavigationTiming entry. There is exactly one
// such record per page view once the page has loaded.
type NavigationTiming struct {
	// Name is the document URL. Some hosts report the literal
	// placeholder "document" here instead of the URL.
	Name string `json:"name"`

	// RequestStart is when the browser sent the request.
	RequestStart float64 `json:"requestStart"`

	// ResponseStart is when the first response byte arrived.
	ResponseStart float64 `json:"responseStart"`

	// ResponseEnd is when the last response byte arrived.
	ResponseEnd float64 `json:"responseEnd"`

	// DomContentLoadedEventEnd is when the DOMContentLoaded event
	// handler completed.
	DomContentLoadedEventEnd float64 `json:"domContentLoadedEventEnd"`

	// DomComplete is when the document readiness became "complete".
	DomComplete float64 `json:"domComplete"`

	// TransferSize is the number of bytes moved over the network
	// for the document itself.
	TransferSize int64 `json:"transferSize"`
}

// PaintTiming is a raw paint milestone record, i.e., a
// PerformancePaintTiming entry.
type PaintTiming struct {
	// Name is the paint milestone name (e.g., "first-paint",
	// "first-contentful-paint").
	Name string `json:"name"`

	// StartTime is when the paint occurred.
	StartTime float64 `json:"startTime"`
}
