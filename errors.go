package extractcode

import "fmt"

// ExtractError describes the FailedToExtract error kind (spec §7): a handler
// could not complete and the archive was skipped. PasswordProtected is a
// specific case of this where credentials would have been required. A
// finish event's Errors slice holds plain message strings; the driver does
// not construct ExtractError values.
type ExtractError struct {
	// Source is the archive that failed to extract.
	Source string
	// Message is the single-line, quote-and-space-trimmed error message.
	Message string
	// PasswordProtected is true when the handler determined the archive
	// requires credentials it does not have.
	PasswordProtected bool
}

func (e *ExtractError) Error() string {
	if e.PasswordProtected {
		return fmt.Sprintf("%s: password protected: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// WarningIncorrectEntry describes a per-entry advisory for one entry of an
// otherwise-extractable archive that could not be read (spec §7). Handlers
// report such advisories as plain strings in a finish event's Warnings
// slice, not as values of this type; they never abort the archive's
// extraction.
type WarningIncorrectEntry struct {
	Entry   string
	Message string
}

func (w *WarningIncorrectEntry) Error() string {
	return fmt.Sprintf("%s: incorrect entry: %s", w.Entry, w.Message)
}

// WarningTrailingGarbage reports that a single-stream compressed archive
// decoded cleanly but had extra bytes after the logical end of stream
// (spec §7).
type WarningTrailingGarbage struct {
	Source string
}

func (w *WarningTrailingGarbage) Error() string {
	return fmt.Sprintf("%s: trailing garbage found and ignored", w.Source)
}
