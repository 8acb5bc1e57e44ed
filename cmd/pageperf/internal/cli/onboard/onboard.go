// Package onboard implements the informed consent process. Collection
// only starts after the operator has understood what the recorded
// events reveal and has agreed to it.
package onboard

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/cli/root"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/output"
	"github.com/pageperf/pageperf/internal/kvstore"
	"github.com/pageperf/pageperf/internal/model"
	"github.com/pageperf/pageperf/internal/settings"
	"github.com/pkg/errors"
)

func init() {
	cmd := root.Command("onboard", "Starts the onboarding process")

	yes := cmd.Flag("yes", "Answer yes to all the onboarding questions.").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		store, err := root.Init()
		if err != nil {
			return err
		}
		if *yes {
			return Consent(store)
		}
		return Onboarding(store)
	})
}

// ErrConsentNotGiven indicates the operator did not agree to
// collecting telemetry.
var ErrConsentNotGiven = errors.New("onboard: consent not given")

// Consent records the informed consent and writes the default config
// document unless a config document already exists.
func Consent(store model.KeyValueStore) error {
	if err := settings.RecordConsent(store); err != nil {
		return errors.Wrap(err, "recording consent")
	}
	if _, err := settings.Load(store); errors.Is(err, kvstore.ErrNoSuchKey) {
		if err := settings.WriteDefault(store); err != nil {
			return errors.Wrap(err, "writing the default config")
		}
	}
	log.Info("pageperf is now onboarded")
	return nil
}

// Onboarding runs the interactive onboarding process.
func Onboarding(store model.KeyValueStore) error {
	output.SectionTitle("What is pageperf")
	fmt.Println("")
	output.Paragraph("pageperf records how the pages you browse actually load: how long the document takes to download, when it first renders, and how long every sub-resource such as scripts, images and stylesheets takes over the network.")
	fmt.Println("")
	output.Paragraph("The recorded events contain the URLs of the pages you visit and of the resources they load. Whoever operates the collector you submit events to can therefore learn which sites you browse. You should understand this before enabling collection.")
	fmt.Println("")
	if err := output.PressEnterToContinue("Press enter to continue..."); err != nil {
		return err
	}

	answer := false
	prompt := &survey.Confirm{
		Message: "Do you consent to collecting and submitting page load telemetry?",
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return err
	}
	if !answer {
		return ErrConsentNotGiven
	}
	return Consent(store)
}

// MaybeOnboarding runs the onboarding process unless it already ran.
func MaybeOnboarding(store model.KeyValueStore) error {
	if settings.HasConsent(store) {
		return nil
	}
	return Onboarding(store)
}
