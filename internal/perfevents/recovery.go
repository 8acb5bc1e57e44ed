package perfevents

//
// Diff recovery
//

import "github.com/pageperf/pageperf/internal/model"

// diffResourceEntries returns the tail of host entries the ledger does
// not account for: when the host knows more entries than accounted,
// the surplus newest entries are returned in their original order;
// otherwise nil. The comparison is purely count based, so entries
// previously dropped as cached keep the ledger shorter than the host
// list and may be captured again; the downstream classifier drops
// them again.
func diffResourceEntries(entries []*model.ResourceTiming, accounted int) []*model.ResourceTiming {
	surplus := len(entries) - accounted
	if surplus <= 0 {
		return nil
	}
	return entries[len(entries)-surplus:]
}
