package rfp

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is. Locator failures use browser.ErrNoSuchElement.
var (
	ErrFailedTransition = errors.New("failed transition")
	ErrAmbiguousResult  = errors.New("ambiguous search result")
	ErrMalformedInput   = errors.New("malformed input")
	ErrPostcondition    = errors.New("postcondition failed")
	ErrUnexpectedPage   = errors.New("unexpected page")
)

// TransitionError reports an action that should have left From for To but
// did not. Messages holds whatever the UI rendered in its error region.
type TransitionError struct {
	From     Kind
	Action   string
	To       Kind
	Messages []string
	Reason   string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s via %s", ErrFailedTransition, e.From, e.To, e.Action)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrFailedTransition
}

// AmbiguousResultError reports a search that needed exactly one match.
type AmbiguousResultError struct {
	Search string
	Query  string
	Count  int
}

func (e *AmbiguousResultError) Error() string {
	return fmt.Sprintf("%s: %s search for %q returned %d results, want 1", ErrAmbiguousResult, e.Search, e.Query, e.Count)
}

func (e *AmbiguousResultError) Is(target error) bool {
	return target == ErrAmbiguousResult
}

// AddressError rejects an address tuple that is neither 4 nor 5 elements.
type AddressError struct {
	Len int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: address has %d elements, want 4 or 5", ErrMalformedInput, e.Len)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrMalformedInput
}

// PostconditionError reports a set that did not stick.
type PostconditionError struct {
	Field string
	Want  string
	Got   string
}

func (e *PostconditionError) Error() string {
	return fmt.Sprintf("%s: %s is %q after set, want %q", ErrPostcondition, e.Field, e.Got, e.Want)
}

func (e *PostconditionError) Is(target error) bool {
	return target == ErrPostcondition
}

// UnexpectedPageError reports a workflow step that needs a page variant the
// session is not on.
type UnexpectedPageError struct {
	Want Kind
	Got  Kind
}

func (e *UnexpectedPageError) Error() string {
	return fmt.Sprintf("%s: on %s, want %s", ErrUnexpectedPage, e.Got, e.Want)
}

func (e *UnexpectedPageError) Is(target error) bool {
	return target == ErrUnexpectedPage
}
