package settings

//
// Informed consent marker
//

import "github.com/pageperf/pageperf/internal/model"

// ConsentKey is the key-value store key recording that the operator
// completed the onboarding flow and consented to data collection.
const ConsentKey = "consent"

// HasConsent returns whether informed consent has been recorded.
func HasConsent(kvStore model.KeyValueStore) bool {
	_, err := kvStore.Get(ConsentKey)
	return err == nil
}

// RecordConsent records informed consent.
func RecordConsent(kvStore model.KeyValueStore) error {
	return kvStore.Set(ConsentKey, []byte("\n"))
}
