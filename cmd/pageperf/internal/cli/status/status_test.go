package status

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/pageperf/pageperf/cmd/pageperf/internal/clitest"
	"github.com/pageperf/pageperf/internal/model/mocks"
)

func TestCannotContactDaemon(t *testing.T) {
	fo := &clitest.FakeOutput{}
	expected := errors.New("mocked error")
	err := dostatus(dostatusconfig{
		Client: &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				return nil, expected
			},
		},
		Endpoint:     "127.0.0.1:8788",
		Logger:       log.Log,
		SectionTitle: fo.SectionTitle,
	})
	if !errors.Is(err, expected) {
		t.Fatalf("not the error we expected: %+v", err)
	}
	if len(fo.FakeSectionTitle) != 1 {
		t.Fatal("invalid section title list size")
	}
	if fo.FakeSectionTitle[0] != "Daemon status" {
		t.Fatal("unexpected string")
	}
}

func TestUnexpectedResponseStatus(t *testing.T) {
	fo := &clitest.FakeOutput{}
	err := dostatus(dostatusconfig{
		Client: &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 500,
					Body:       io.NopCloser(strings.NewReader("")),
				}, nil
			},
		},
		Endpoint:     "127.0.0.1:8788",
		Logger:       log.Log,
		SectionTitle: fo.SectionTitle,
	})
	if err == nil || !strings.Contains(err.Error(), "unexpected status response") {
		t.Fatalf("not the error we expected: %+v", err)
	}
}

func TestUnparseableStatusDocument(t *testing.T) {
	fo := &clitest.FakeOutput{}
	err := dostatus(dostatusconfig{
		Client: &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader("{")),
				}, nil
			},
		},
		Endpoint:     "127.0.0.1:8788",
		Logger:       log.Log,
		SectionTitle: fo.SectionTitle,
	})
	if err == nil || !strings.Contains(err.Error(), "parsing the status document") {
		t.Fatalf("not the error we expected: %+v", err)
	}
}

func TestWorkingAsIntended(t *testing.T) {
	fo := &clitest.FakeOutput{}
	handler := &clitest.FakeLoggerHandler{}
	body := `{
		"sessions": {
			"entriesReceived": 60,
			"protocolErrors": 0,
			"sessionsActive": 1,
			"sessionsStarted": 3
		},
		"uptimeSeconds": 42.7,
		"version": "0.4.0"
	}`
	var gotURL string
	err := dostatus(dostatusconfig{
		Client: &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				gotURL = req.URL.String()
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(body)),
				}, nil
			},
		},
		Endpoint:     "127.0.0.1:8788",
		Logger:       &log.Logger{Handler: handler, Level: log.DebugLevel},
		SectionTitle: fo.SectionTitle,
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotURL != "http://127.0.0.1:8788/api/v1/status" {
		t.Fatal("unexpected URL", gotURL)
	}
	if len(fo.FakeSectionTitle) != 1 {
		t.Fatal("invalid section title list size")
	}
	if len(handler.FakeEntries) != 1 {
		t.Fatal("invalid number of written entries")
	}
	entry := handler.FakeEntries[0]
	if entry.Level != log.InfoLevel {
		t.Fatal("invalid log level")
	}
	if entry.Message != "the daemon is running" {
		t.Fatal("invalid .Message")
	}
	if entry.Fields["type"].(string) != "table" {
		t.Fatal("invalid type")
	}
	if entry.Fields["daemon version"].(string) != "0.4.0" {
		t.Fatal("invalid daemon version")
	}
	if entry.Fields["uptime"].(string) != "42s" {
		t.Fatal("invalid uptime")
	}
	if entry.Fields["sessions started"].(string) != "3" {
		t.Fatal("invalid sessions started")
	}
	if entry.Fields["entries received"].(string) != "60" {
		t.Fatal("invalid entries received")
	}
}
