// Package clitest contains code used for testing the CLI.
package clitest

import (
	"sync"

	"github.com/apex/log"
)

// FakeOutput allows to fake the output package.
type FakeOutput struct {
	FakeParagraph    []string
	FakeSectionTitle []string
	mu               sync.Mutex
}

// SectionTitle writes the section title.
func (fo *FakeOutput) SectionTitle(s string) {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	fo.FakeSectionTitle = append(fo.FakeSectionTitle, s)
}

// Paragraph writes a paragraph.
func (fo *FakeOutput) Paragraph(s string) {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	fo.FakeParagraph = append(fo.FakeParagraph, s)
}

// FakeLoggerHandler fakes apex.log.Handler.
type FakeLoggerHandler struct {
	FakeEntries []*log.Entry
	FakeErr     error
	mu          sync.Mutex
}

// HandleLog implements Handler.HandleLog.
func (handler *FakeLoggerHandler) HandleLog(entry *log.Entry) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	handler.FakeEntries = append(handler.FakeEntries, entry)
	return handler.FakeErr
}

var _ log.Handler = &FakeLoggerHandler{}
