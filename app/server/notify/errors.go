package notify

import (
	"log"
	"runtime/debug"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// Report is one failure worth forwarding to error monitoring. Op names the
// server operation, e.g. "POST /generate-plan" or "enrich section".
type Report struct {
	Severity Severity
	Op       string
	Err      error
}

type ReportFn func(report Report)

var reportFn ReportFn

// RegisterReportFn installs the hook deployments use to plug in monitoring.
// Passing nil removes it.
func RegisterReportFn(fn ReportFn) {
	reportFn = fn
}

// Notify forwards to the registered hook, if any. A panicking hook is logged
// and otherwise ignored.
func Notify(severity Severity, op string, err error) {
	if reportFn == nil || err == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic in error report hook (%s): %v\n%s", op, r, debug.Stack())
		}
	}()

	reportFn(Report{Severity: severity, Op: op, Err: err})
}
