package config

// Config describes a workbook job: which sheets to write, how to style them
// and how styles are deduplicated.
type Config struct {
	Output             string        `yaml:"output"`
	CacheMode          string        `yaml:"cache_mode"`
	UseStyles          bool          `yaml:"use_styles"`
	DefaultColumnWidth float64       `yaml:"default_column_width"`
	Sheets             []SheetConfig `yaml:"sheets"`
	Rules              []RuleConfig  `yaml:"rules"`
}

// SheetConfig describes one worksheet. Rows are written Repeat times
// (at least once), which lets a small job produce a large workbook.
type SheetConfig struct {
	Name      string           `yaml:"name"`
	Columns   []ColumnConfig   `yaml:"columns"`
	CellStyle *StyleSpec       `yaml:"cell_style"`
	Rows      []map[string]any `yaml:"rows"`
	Repeat    int              `yaml:"repeat"`
}

// ColumnConfig describes one column.
type ColumnConfig struct {
	Header string     `yaml:"header"`
	Key    string     `yaml:"key"`
	Width  float64    `yaml:"width"`
	Style  *StyleSpec `yaml:"style"`
}

// RuleConfig is a conditional style overlay.
type RuleConfig struct {
	When  string    `yaml:"when"`
	Style StyleSpec `yaml:"style"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}

// StyleSpec is the YAML form of a cell style. Its shape follows the usual
// spreadsheet object model: fill.type selects pattern or gradient and
// fill.gradient selects angle or path.
type StyleSpec struct {
	Font       *FontSpec       `yaml:"font,omitempty"`
	Border     *BorderSpec     `yaml:"border,omitempty"`
	Alignment  *AlignmentSpec  `yaml:"alignment,omitempty"`
	Fill       *FillSpec       `yaml:"fill,omitempty"`
	Protection *ProtectionSpec `yaml:"protection,omitempty"`
	NumFmt     string          `yaml:"numFmt,omitempty"`
}

// ColorSpec is the YAML form of a colour.
type ColorSpec struct {
	ARGB  string `yaml:"argb,omitempty"`
	Theme *int   `yaml:"theme,omitempty"`
}

// FontSpec is the YAML form of a font. Underline is a bool or a style name.
type FontSpec struct {
	Name      string     `yaml:"name,omitempty"`
	Size      *float64   `yaml:"size,omitempty"`
	Family    *int       `yaml:"family,omitempty"`
	Scheme    string     `yaml:"scheme,omitempty"`
	Charset   *int       `yaml:"charset,omitempty"`
	Color     *ColorSpec `yaml:"color,omitempty"`
	Bold      *bool      `yaml:"bold,omitempty"`
	Italic    *bool      `yaml:"italic,omitempty"`
	Underline any        `yaml:"underline,omitempty"`
	VertAlign string     `yaml:"vertAlign,omitempty"`
	Strike    *bool      `yaml:"strike,omitempty"`
	Outline   *bool      `yaml:"outline,omitempty"`
}

// EdgeSpec is the YAML form of a border edge; Up and Down are only
// meaningful on the diagonal.
type EdgeSpec struct {
	Style string     `yaml:"style,omitempty"`
	Color *ColorSpec `yaml:"color,omitempty"`
	Up    *bool      `yaml:"up,omitempty"`
	Down  *bool      `yaml:"down,omitempty"`
}

// BorderSpec is the YAML form of a border.
type BorderSpec struct {
	Top      *EdgeSpec `yaml:"top,omitempty"`
	Left     *EdgeSpec `yaml:"left,omitempty"`
	Bottom   *EdgeSpec `yaml:"bottom,omitempty"`
	Right    *EdgeSpec `yaml:"right,omitempty"`
	Diagonal *EdgeSpec `yaml:"diagonal,omitempty"`
}

// AlignmentSpec is the YAML form of an alignment. TextRotation is a number
// or the string "vertical".
type AlignmentSpec struct {
	Horizontal   string   `yaml:"horizontal,omitempty"`
	Vertical     string   `yaml:"vertical,omitempty"`
	WrapText     *bool    `yaml:"wrapText,omitempty"`
	ShrinkToFit  *bool    `yaml:"shrinkToFit,omitempty"`
	Indent       *float64 `yaml:"indent,omitempty"`
	ReadingOrder string   `yaml:"readingOrder,omitempty"`
	TextRotation any      `yaml:"textRotation,omitempty"`
}

// FillSpec is the YAML form of a fill.
type FillSpec struct {
	Type     string      `yaml:"type"`
	Pattern  string      `yaml:"pattern,omitempty"`
	FgColor  *ColorSpec  `yaml:"fgColor,omitempty"`
	BgColor  *ColorSpec  `yaml:"bgColor,omitempty"`
	Gradient string      `yaml:"gradient,omitempty"`
	Degree   float64     `yaml:"degree,omitempty"`
	Center   *CenterSpec `yaml:"center,omitempty"`
	Stops    []StopSpec  `yaml:"stops,omitempty"`
}

// CenterSpec is the YAML form of a path gradient centre.
type CenterSpec struct {
	Left float64 `yaml:"left"`
	Top  float64 `yaml:"top"`
}

// StopSpec is the YAML form of a gradient stop.
type StopSpec struct {
	Position float64    `yaml:"position"`
	Color    *ColorSpec `yaml:"color,omitempty"`
}

// ProtectionSpec is the YAML form of cell protection.
type ProtectionSpec struct {
	Locked *bool `yaml:"locked,omitempty"`
	Hidden *bool `yaml:"hidden,omitempty"`
}
