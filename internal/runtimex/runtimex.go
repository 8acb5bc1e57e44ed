// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
package runtimex

import (
	"errors"
	"fmt"
)

// PanicOnError calls panic() if err is not nil. The value passed to
// panic is an error wrapping err and including the given message.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

// Assert calls panic() if assertion is false. The value passed to
// panic is an error constructed using the given message.
func Assert(assertion bool, message string) {
	if !assertion {
		panic(errors.New(message))
	}
}
