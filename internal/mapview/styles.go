package mapview

// LineStyle is the stroke used for route arcs.
type LineStyle struct {
	Color   string  `yaml:"color" json:"color" validate:"required"`
	Weight  float64 `yaml:"weight" json:"weight" validate:"gt=0"`
	Opacity float64 `yaml:"opacity" json:"opacity" validate:"gte=0,lte=1"`
}

// MarkerStyle is the look of a circle marker.
type MarkerStyle struct {
	Radius      float64 `yaml:"radius" json:"radius" validate:"gt=0"`
	Color       string  `yaml:"color" json:"color" validate:"required"`
	Weight      float64 `yaml:"weight" json:"weight" validate:"gte=0"`
	Opacity     float64 `yaml:"opacity" json:"opacity" validate:"gte=0,lte=1"`
	FillColor   string  `yaml:"fill-color" json:"fillColor" validate:"required"`
	FillOpacity float64 `yaml:"fill-opacity" json:"fillOpacity" validate:"gte=0,lte=1"`
}

// Styles groups every style the manager draws with.
type Styles struct {
	LineDefault      LineStyle   `yaml:"line-default" json:"lineDefault"`
	LineHighlight    LineStyle   `yaml:"line-highlight" json:"lineHighlight"`
	MarkerStart      MarkerStyle `yaml:"marker-start" json:"markerStart"`
	MarkerConnection MarkerStyle `yaml:"marker-connection" json:"markerConnection"`
	MarkerEnd        MarkerStyle `yaml:"marker-end" json:"markerEnd"`
}

func DefaultStyles() Styles {
	marker := func(radius float64, fill string) MarkerStyle {
		return MarkerStyle{
			Radius:      radius,
			Color:       "#fff",
			Weight:      2,
			Opacity:     1,
			FillColor:   fill,
			FillOpacity: 0.9,
		}
	}

	return Styles{
		LineDefault:      LineStyle{Color: "#2563eb", Weight: 3, Opacity: 0.8},
		LineHighlight:    LineStyle{Color: "#1d4ed8", Weight: 3.5, Opacity: 0.8},
		MarkerStart:      marker(8, "#10b981"),
		MarkerConnection: marker(6, "#f59e0b"),
		MarkerEnd:        marker(8, "#dc2626"),
	}
}

// Line returns the arc style for the given highlight state.
func (s Styles) Line(highlight bool) LineStyle {
	if highlight {
		return s.LineHighlight
	}
	return s.LineDefault
}

// Marker returns the style for kind. Each kind maps to exactly one style.
func (s Styles) Marker(kind MarkerKind) MarkerStyle {
	switch kind {
	case MarkerStart:
		return s.MarkerStart
	case MarkerTransfer:
		return s.MarkerConnection
	default:
		return s.MarkerEnd
	}
}

// Labels are the popup headings for each marker kind.
type Labels struct {
	Departure  string `yaml:"departure" json:"departure"`
	Connection string `yaml:"connection" json:"connection"`
	Arrival    string `yaml:"arrival" json:"arrival"`
}

func DefaultLabels() Labels {
	return Labels{
		Departure:  "Departure",
		Connection: "Connection",
		Arrival:    "Arrival",
	}
}

// For returns the heading for kind.
func (l Labels) For(kind MarkerKind) string {
	switch kind {
	case MarkerStart:
		return l.Departure
	case MarkerTransfer:
		return l.Connection
	default:
		return l.Arrival
	}
}
