package mocks

import "github.com/pageperf/pageperf/internal/model"

// PerformanceSource allows mocking model.PerformanceSource.
type PerformanceSource struct {
	MockSupportsResourceObserver func() bool

	MockLocationURL func() string

	MockNavigationEntries func() []*model.NavigationTiming

	MockPaintEntries func() []*model.PaintTiming

	MockResourceEntries func() []*model.ResourceTiming

	MockOnLoad func(callback func())

	MockOnUnload func(callback func()) (cancel func())

	MockObserveResources func(callback func(entries []*model.ResourceTiming)) (cancel func(), ok bool)
}

var _ model.PerformanceSource = &PerformanceSource{}

// SupportsResourceObserver calls MockSupportsResourceObserver.
func (s *PerformanceSource) SupportsResourceObserver() bool {
	return s.MockSupportsResourceObserver()
}

// LocationURL calls MockLocationURL.
func (s *PerformanceSource) LocationURL() string {
	return s.MockLocationURL()
}

// NavigationEntries calls MockNavigationEntries.
func (s *PerformanceSource) NavigationEntries() []*model.NavigationTiming {
	return s.MockNavigationEntries()
}

// PaintEntries calls MockPaintEntries.
func (s *PerformanceSource) PaintEntries() []*model.PaintTiming {
	return s.MockPaintEntries()
}

// ResourceEntries calls MockResourceEntries.
func (s *PerformanceSource) ResourceEntries() []*model.ResourceTiming {
	return s.MockResourceEntries()
}

// OnLoad calls MockOnLoad.
func (s *PerformanceSource) OnLoad(callback func()) {
	s.MockOnLoad(callback)
}

// OnUnload calls MockOnUnload.
func (s *PerformanceSource) OnUnload(callback func()) (cancel func()) {
	return s.MockOnUnload(callback)
}

// ObserveResources calls MockObserveResources.
func (s *PerformanceSource) ObserveResources(callback func(entries []*model.ResourceTiming)) (cancel func(), ok bool) {
	return s.MockObserveResources(callback)
}
