package theme

// Theme defines all colors used throughout the application with semantic naming.
var (
	// Brand colors
	BrandColor = "#7aa2f7" // blue for the banner and the focused output pane

	// Text colors
	TextPrimary     = "#ffffff" // focused/active elements
	TextDescription = "#c9c9c9" // descriptions and help text
	TextMuted       = "#7a7a7a" // placeholders, inactive hints

	// Border colors
	BorderActive = "#c9c9c9"
	BorderMuted  = "#4a4a4a"

	// Status colors
	SuccessStatus = "#50fa7b" // completion marker
	WarningStatus = "#ffb86c" // project scope
	ErrorStatus   = "#ff5555" // inline spawn errors
	InfoStatus    = "#8be9fd" // global scope, section headers

	// UI colors
	SeparatorColor = "#4a4a4a"
	WarningYellow  = "#f1fa8c" // help overlay keys
	RowHighlight   = "#3b3f51"
)
