// Package perr implements parse-error reporting for the scanner and
// balancer, a direct port of the prior errors package (errors/errors.go,
// codes.go) with a push-style Reporter interface layered on top.
package perr

import (
	"fmt"
	"strings"
)

// Severity classifies how an anomaly should be treated once reported.
// Warning and Error anomalies are logged and the parse continues; Fatal
// anomalies unwind the parse, leaving only the synthetic content the
// engine substituted for the offending input.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "warning"
	}
}

// ParseError is a single anomaly with location, severity, and a
// documented recovery action.
type ParseError struct {
	Code string
	Message string
	Line int
	Column int
	Recovery Recovery
	Severity Severity
}

// Recovery names the fallback the engine took after reporting the
// anomaly: treat-as-text | close-at-EOF | terminate-at-boundary | drop |
// best-effort.
type Recovery int

const (
	RecoveryNone Recovery = iota
	RecoveryTreatAsText
	RecoveryCloseAtEOF
	RecoveryTerminateAtBoundary
	RecoveryDrop
	RecoveryBestEffort
)

func (r Recovery) String() string {
	switch r {
	case RecoveryTreatAsText:
		return "treat-as-text"
	case RecoveryCloseAtEOF:
		return "close-at-eof"
	case RecoveryTerminateAtBoundary:
		return "terminate-at-boundary"
	case RecoveryDrop:
		return "drop"
	case RecoveryBestEffort:
		return "best-effort"
	default:
		return "none"
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors collects anomalies from one parse call; implements error so
// it can be returned directly, same as the prior ParseErrors.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(" - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap supports errors.Is/As over the collected anomalies.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
