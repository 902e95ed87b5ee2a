package viewtypes

// ============================================================================
// SHARED CSS CLASS CONSTANTS
// Class strings used across template components. The classes themselves are
// defined in static/dist/app.css.
// ============================================================================

// PageBody is applied to <body> on every page.
var PageBody = "page"

// CameraShell is the live camera page container.
var CameraShell = "camera-shell"

// PageHeading is the main h1 heading style for top-level pages.
var PageHeading = "page-heading"

// PreviewFrame wraps the live preview image.
var PreviewFrame = "preview-frame"

// ActionBar is a horizontal row of buttons.
var ActionBar = "action-bar"

// GhostButtonSm is a small ghost-style button (outlined, no fill).
var GhostButtonSm = "btn btn-ghost btn-sm"

// NoticeError is the camera failure notice.
var NoticeError = "notice notice-error"

// NoticeInfo is a neutral notice.
var NoticeInfo = "notice notice-info"

// InfoBoxClass is the standard info/detail panel container.
var InfoBoxClass = "info-box"

// SectionLabel is the standard label style for form sections, panel headings, etc.
var SectionLabel = "section-label"

// InputClass is the standard input styling.
var InputClass = "input"

// HelpShell is the help page container.
var HelpShell = "help-shell"
