package htmlform

// ChromeClass is a typed identifier for the semantic CSS classes the markup
// carries; host applications target these for styling.
type ChromeClass string

const (
	ClassForm    ChromeClass = "forge-form"
	ClassHeader  ChromeClass = "forge-header"
	ClassField   ChromeClass = "forge-field"
	ClassLabel   ChromeClass = "forge-label"
	ClassControl ChromeClass = "forge-control"
	ClassError   ChromeClass = "forge-error"
	ClassTags    ChromeClass = "forge-tags"
	ClassActions ChromeClass = "forge-actions"
)
