package styles

// Status glyphs for command output.
var (
	IconCheck   = "✔"
	IconCross   = "✘"
	IconWarning = "!"
	IconClock   = "◷"
)
