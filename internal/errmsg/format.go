// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Capture operations
	OpCaptureStart    Op = "start recording"
	OpCaptureStop     Op = "stop recording"
	OpCaptureFinalize Op = "finalize recording"

	// Classification operations
	OpClassifyUpload  Op = "classify recording"
	OpClassifySegment Op = "classify audio segment"
	OpFormatsLoad     Op = "load supported formats"
	OpGenresLoad      Op = "load genre list"

	// Identity operations
	OpTokenRefresh Op = "refresh credentials"

	// Catalog operations
	OpCatalogOpen Op = "open track catalog"
	OpCatalogLoad Op = "load track catalog"

	// Suggestion operations
	OpSuggestGenerate Op = "generate playlist suggestions"
	OpSuggestAddMore  Op = "add more suggestions"

	// Preview playback
	OpPreviewPlay Op = "play recording preview"

	// File submission
	OpFileLoad Op = "load audio file"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
