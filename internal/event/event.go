// Package event defines ExtractEvent (spec §3), the immutable record emitted
// before and after each archive's extraction.
package event

// ExtractEvent is emitted twice per archive the driver decides to extract: a
// "start" event (Done=false, empty Warnings/Errors) and a "finish" event
// (Done=true, populated).
type ExtractEvent struct {
	// Source is the absolute path of the archive.
	Source string
	// Target is the absolute path of the extraction directory.
	Target string
	// Done is false on the start event, true on the finish event.
	Done bool
	// Warnings is an ordered sequence of strings keyed or prefixed by the
	// offending entry path.
	Warnings []string
	// Errors is an ordered sequence of error messages, empty on success.
	Errors []string
}

// Start returns the start event for an archive at source extracting to target.
func Start(source, target string) ExtractEvent {
	return ExtractEvent{Source: source, Target: target}
}

// Finish returns the finish event for an archive, carrying the accumulated
// warnings and errors.
func Finish(source, target string, warnings, errs []string) ExtractEvent {
	return ExtractEvent{Source: source, Target: target, Done: true, Warnings: warnings, Errors: errs}
}

// OK reports whether the finish event carries no warnings and no errors.
func (e ExtractEvent) OK() bool {
	return len(e.Warnings) == 0 && len(e.Errors) == 0
}
