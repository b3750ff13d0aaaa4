package config

// Bar and row geometry, in pixels.
const (
	// BarHeight is the height of one task bar.
	BarHeight = 32

	// BarGap separates stacked lanes and pads the row edges.
	BarGap = 8

	// MinRowHeight keeps empty rows visible.
	MinRowHeight = 56

	// InnerMargin insets a bar from its day column edges.
	InnerMargin = 4

	// MinBarWidth keeps zero-length bars clickable.
	MinBarWidth = 24

	// LabelMinWidth hides bar labels below this width.
	LabelMinWidth = 60

	// HandleWidth is the grab zone at each bar edge for resizing.
	HandleWidth = 8
)

// Terminal mapping.
const (
	// CellWidthPx is how many pixels one terminal column represents.
	CellWidthPx = 8

	// GutterWidth is the employee name column on the left of the board.
	GutterWidth = 22

	// HeaderLines is the number of lines above the first employee row.
	HeaderLines = 3

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	// MaxTitleLength is the maximum task title length.
	MaxTitleLength = 100

	// MaxDescriptionLength is the maximum description length.
	MaxDescriptionLength = 500
)
