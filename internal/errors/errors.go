package errors

import (
	"fmt"
	"sync"
	"time"
)

// Warning is a non-fatal validation problem. The affected item is skipped and
// the run continues.
type Warning struct {
	Code      string
	Subject   string
	Message   string
	Timestamp time.Time
}

// Warning codes.
const (
	WarnUnknownCondition  = "WARN_UNKNOWN_CONDITION"
	WarnMalformedVar      = "WARN_MALFORMED_VAR"
	WarnReservedVariable  = "WARN_RESERVED_VARIABLE"
	WarnUnknownOptionType = "WARN_UNKNOWN_OPTION_TYPE"
)

// String renders the warning for terminal output.
func (w Warning) String() string {
	if w.Subject == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Subject, w.Message)
}

// WarningSink receives warnings as they are produced.
type WarningSink interface {
	Warn(w Warning)
}

// WarningFunc adapts a function to WarningSink.
type WarningFunc func(w Warning)

// Warn implements WarningSink.
func (f WarningFunc) Warn(w Warning) {
	f(w)
}

// DiscardWarnings drops every warning.
var DiscardWarnings WarningSink = WarningFunc(func(Warning) {})

// WarningCollector collects warnings from concurrent jobs.
type WarningCollector struct {
	warnings []Warning
	mutex    sync.RWMutex
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector() *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
	}
}

// Warn adds a warning to the collector
func (wc *WarningCollector) Warn(w Warning) {
	wc.mutex.Lock()
	defer wc.mutex.Unlock()
	if w.Timestamp.IsZero() {
		w.Timestamp = time.Now()
	}
	wc.warnings = append(wc.warnings, w)
}

// Warnings returns a copy of all collected warnings
func (wc *WarningCollector) Warnings() []Warning {
	wc.mutex.RLock()
	defer wc.mutex.RUnlock()
	result := make([]Warning, len(wc.warnings))
	copy(result, wc.warnings)
	return result
}

// HasWarnings returns true if anything was collected
func (wc *WarningCollector) HasWarnings() bool {
	wc.mutex.RLock()
	defer wc.mutex.RUnlock()
	return len(wc.warnings) > 0
}

// ByCode returns the warnings carrying the given code
func (wc *WarningCollector) ByCode(code string) []Warning {
	wc.mutex.RLock()
	defer wc.mutex.RUnlock()
	var matched []Warning
	for _, w := range wc.warnings {
		if w.Code == code {
			matched = append(matched, w)
		}
	}
	return matched
}

// Clear clears all warnings
func (wc *WarningCollector) Clear() {
	wc.mutex.Lock()
	defer wc.mutex.Unlock()
	wc.warnings = wc.warnings[:0]
}

// Tee forwards every warning to all sinks.
func Tee(sinks ...WarningSink) WarningSink {
	return WarningFunc(func(w Warning) {
		for _, s := range sinks {
			if s != nil {
				s.Warn(w)
			}
		}
	})
}
