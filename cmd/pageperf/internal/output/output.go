// Package output contains helpers printing to the pageperf CLI.
package output

import (
	"bufio"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/mitchellh/go-wordwrap"
)

// SectionTitle is the title of a section
func SectionTitle(text string) {
	log.WithFields(log.Fields{
		"type":  "section_title",
		"title": text,
	}).Info(text)
}

// Paragraph prints a word-wrapped paragraph of text.
func Paragraph(text string) {
	const width = 80
	fmt.Println(wordwrap.WrapString(text, width))
}

// Bullet prints a word-wrapped bullet item.
func Bullet(text string) {
	const width = 80
	fmt.Printf("• %s\n", wordwrap.WrapString(text, width))
}

// PressEnterToContinue prints the given text and waits for a newline.
func PressEnterToContinue(text string) error {
	fmt.Print(text)
	_, err := bufio.NewReader(os.Stdin).ReadBytes('\n')
	return err
}
