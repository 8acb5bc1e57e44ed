package perfevents

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/optional"
)

func TestLoadSpeed(t *testing.T) {
	t.Run("with zero elapsed time", func(t *testing.T) {
		if speed := LoadSpeed(0, 1000); !speed.IsNone() {
			t.Fatal("expected empty speed")
		}
	})

	t.Run("with zero size", func(t *testing.T) {
		if speed := LoadSpeed(1000, 0); !speed.IsNone() {
			t.Fatal("expected empty speed")
		}
	})

	t.Run("with 2048 bytes over two seconds", func(t *testing.T) {
		speed := LoadSpeed(2000, 2048)
		if speed.IsNone() {
			t.Fatal("expected a speed")
		}
		if v := speed.Unwrap(); v != 1 {
			t.Fatal("unexpected speed", v)
		}
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		// 3000 bytes over two seconds is 1500 B/s, hence ~1.46 kB/ms
		// in the units of this rule, which truncates to 1.
		speed := LoadSpeed(2000, 3000)
		if v := speed.Unwrap(); v != 1 {
			t.Fatal("unexpected speed", v)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		first := LoadSpeed(2000, 2048)
		second := LoadSpeed(2000, 2048)
		if first.Unwrap() != second.Unwrap() {
			t.Fatal("expected identical results")
		}
	})
}

func TestExtractPageTiming(t *testing.T) {
	t.Run("with a complete navigation entry", func(t *testing.T) {
		nav := &model.NavigationTiming{
			Name:                     "document",
			RequestStart:             50,
			ResponseStart:            100,
			ResponseEnd:              500,
			DomContentLoadedEventEnd: 300,
			DomComplete:              600,
			TransferSize:             2048,
		}
		paints := []*model.PaintTiming{
			{Name: "first-paint", StartTime: 80},
			{Name: "first-contentful-paint", StartTime: 120.9},
		}
		got := extractPageTiming(nav, paints, "https://x/")
		expect := &model.PageLoadTiming{
			URL:         "https://x/",
			TTFB:        50,
			LoadSpeed:   optional.Some[int64](4),
			Load:        500,
			DomContent:  300,
			Render:      120,
			Interactive: 600,
		}
		if diff := cmp.Diff(expect, got, cmp.AllowUnexported(optional.Value[int64]{})); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("keeps a real navigation URL", func(t *testing.T) {
		nav := &model.NavigationTiming{Name: "https://y/page"}
		got := extractPageTiming(nav, nil, "https://x/")
		if got.URL != "https://y/page" {
			t.Fatal("unexpected URL", got.URL)
		}
	})

	t.Run("with no paint entries the render time is zero", func(t *testing.T) {
		nav := &model.NavigationTiming{ResponseEnd: 500}
		got := extractPageTiming(nav, nil, "https://x/")
		if got.Render != 0 {
			t.Fatal("unexpected render time", got.Render)
		}
	})

	t.Run("with a single paint entry the render time is zero", func(t *testing.T) {
		nav := &model.NavigationTiming{ResponseEnd: 500}
		paints := []*model.PaintTiming{{Name: "first-paint", StartTime: 80}}
		got := extractPageTiming(nav, paints, "https://x/")
		if got.Render != 0 {
			t.Fatal("unexpected render time", got.Render)
		}
	})

	t.Run("with zero transfer size the load speed is empty", func(t *testing.T) {
		nav := &model.NavigationTiming{ResponseEnd: 500}
		got := extractPageTiming(nav, nil, "https://x/")
		if !got.LoadSpeed.IsNone() {
			t.Fatal("expected empty load speed")
		}
	})

	t.Run("with zero response end the load speed is empty", func(t *testing.T) {
		nav := &model.NavigationTiming{TransferSize: 2048}
		got := extractPageTiming(nav, nil, "https://x/")
		if !got.LoadSpeed.IsNone() {
			t.Fatal("expected empty load speed")
		}
	})
}
