package exit

import (
	"fmt"
	"io"
)

// Process exit codes.
const (
	CodeSuccess  = 0
	CodeError    = 1
	CodeNoResult = 2
)

// Stream selects where a result message is printed.
type Stream uint8

const (
	Stdout Stream = iota
	Stderr
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Stream   Stream
	ExitCode int
	Message  string
}

// Print writes the result message to the selected stream.
func (r *Result) Print(stdout, stderr io.Writer) {
	if r.Stream == Stderr {
		fmt.Fprint(stderr, r.Message)
		return
	}
	fmt.Fprint(stdout, r.Message)
}

// Success creates a result printed to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{Stream: Stdout, ExitCode: CodeSuccess, Message: message}
}

// Error creates a result printed to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{Stream: Stderr, ExitCode: CodeError, Message: message}
}

// Errorf creates an error result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// NoResult creates a result printed to stdout with exit code 2, used when a
// lookup ran cleanly but found nothing.
func NoResult(message string) *Result {
	return &Result{Stream: Stdout, ExitCode: CodeNoResult, Message: message}
}
