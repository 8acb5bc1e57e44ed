package perfevents

//
// Page timing extraction
//

import (
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/optional"
)

// documentPlaceholder is the literal name some hosts report for the
// navigation entry instead of the document URL.
const documentPlaceholder = "document"

// LoadSpeed computes a load speed in kB/ms from an elapsed time in
// milliseconds and a size in bytes, truncating the result toward
// zero. The returned value is empty when either argument is zero,
// since in that case no meaningful speed exists.
func LoadSpeed(elapsed float64, size int64) optional.Value[int64] {
	if elapsed == 0 || size == 0 {
		return optional.None[int64]()
	}
	return optional.Some(int64((float64(size) / (elapsed * 0.001)) / 1024))
}

// extractPageTiming derives the singleton page-load record from the
// navigation entry and the paint entries. location is the page's
// current location URL, substituted when the navigation entry name is
// the "document" placeholder.
//
// The second paint entry (index 1) provides the render milestone,
// matching first-contentful-paint semantics positionally; when the
// host reports fewer than two paint entries the render time is zero.
func extractPageTiming(nav *model.NavigationTiming, paints []*model.PaintTiming, location string) *model.PageLoadTiming {
	url := nav.Name
	if url == documentPlaceholder {
		url = location
	}
	var render float64
	if len(paints) > 1 {
		render = paints[1].StartTime
	}
	return &model.PageLoadTiming{
		URL:         url,
		TTFB:        clampMillis(nav.ResponseStart - nav.RequestStart),
		LoadSpeed:   LoadSpeed(nav.ResponseEnd, nav.TransferSize),
		Load:        clampMillis(nav.ResponseEnd),
		DomContent:  clampMillis(nav.DomContentLoadedEventEnd),
		Render:      clampMillis(render),
		Interactive: clampMillis(nav.DomComplete),
	}
}
