package perfevents

//
// Resource classification
//

import "github.com/pageperf/pageperf/internal/model"

// IsResourceCached determines whether a raw resource-timing entry
// describes a load served from the browser cache, in which case the
// engine discards it as noise. The decision order is fixed and the
// first matching rule wins:
//
// 1. the entry moved bytes over the network: not cached;
//
// 2. the entry decoded a body without moving bytes: cached;
//
// 3. otherwise the entry is cached iff its duration is not positive.
//
// Rule 3 is a heuristic: an entry with no transfer, no decoded body
// and zero duration is most likely a cache hit, but the same signature
// can also belong to a load aborted before completion.
func IsResourceCached(entry *model.ResourceTiming) bool {
	if entry.TransferSize > 0 {
		return false
	}
	if entry.DecodedBodySize > 0 {
		return true
	}
	return entry.Duration <= 0
}

// clampMillis truncates a milliseconds value toward zero and clamps
// negative results to zero, enforcing the invariant that every
// derived timing field is a non-negative integer.
func clampMillis(value float64) int64 {
	if value < 0 {
		return 0
	}
	return int64(value)
}

// normalizeResource reduces a raw entry to the compact fact we log.
// The caller must only pass entries for which [IsResourceCached] is
// false. threshold is the slow-resource threshold in milliseconds.
func normalizeResource(entry *model.ResourceTiming, threshold int64) *model.ResourceFact {
	elapsed := clampMillis(entry.Duration)
	downloadStart := entry.ResponseStart
	if downloadStart == 0 {
		downloadStart = entry.StartTime
	}
	return &model.ResourceFact{
		Type:     entry.InitiatorType,
		URL:      entry.Name,
		Time:     elapsed,
		DNS:      clampMillis(entry.DomainLookupEnd - entry.DomainLookupStart),
		Stalled:  clampMillis(entry.RequestStart - entry.StartTime),
		TTFB:     clampMillis(entry.ResponseStart - entry.RequestStart),
		Download: clampMillis(entry.ResponseEnd - downloadStart),
		Slow:     elapsed > threshold,
	}
}

// classifyResources maps [normalizeResource] over the entries that are
// not cache hits, preserving the input order. Cached entries are
// dropped silently.
func classifyResources(entries []*model.ResourceTiming, threshold int64) []*model.ResourceFact {
	var facts []*model.ResourceFact
	for _, entry := range entries {
		if IsResourceCached(entry) {
			continue
		}
		facts = append(facts, normalizeResource(entry, threshold))
	}
	return facts
}
