package snow

import "image"

// Designated host element identifiers, in lookup order
const (
	HostID     = "letitsnow"
	HostAreaID = "letitsnow-area"
)

// Data keys read from the host element. Each axis also accepts the
// long form with a "-category" suffix, which wins when both are set.
const (
	HintSize    = "size"
	HintSpeed   = "speed"
	HintDensity = "density"

	categorySuffix = "-category"
)

// CategoryKey returns the long data key for an axis, e.g. size-category
func CategoryKey(hint string) string {
	return hint + categorySuffix
}

// Placement says how the overlay is positioned
type Placement int

const (
	// PlacementViewport covers the whole viewport (root body host)
	PlacementViewport Placement = iota
	// PlacementElement is confined to the host element's box
	PlacementElement
)

func (p Placement) String() string {
	switch p {
	case PlacementViewport:
		return "viewport"
	case PlacementElement:
		return "element"
	default:
		return "unknown"
	}
}

// Box is a rectangle in page pixels
type Box struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Element is one addressable region of the page
type Element struct {
	ID   string            `yaml:"-"`
	Box  Box               `yaml:"box"`
	Data map[string]string `yaml:"data"`
}

// Page is the set of elements the overlay can attach to.
// Body is the root element; its box is the viewport.
type Page struct {
	Body     Element
	Elements map[string]Element
}

// Host is the resolved attachment point
type Host struct {
	Element   Element
	Placement Placement
}

// Layer describes the overlay drawing surface placement
type Layer struct {
	Fixed              bool // fixed to the viewport rather than the element
	WidthPercent       int
	HeightPercent      int
	PointerPassthrough bool
	ZIndex             int
}

// ResolveHost picks the host element: letitsnow, then letitsnow-area,
// then the page body.
func ResolveHost(page Page) Host {
	for _, id := range []string{HostID, HostAreaID} {
		if el, ok := page.Elements[id]; ok {
			el.ID = id
			return Host{Element: el, Placement: PlacementElement}
		}
	}
	return Host{Element: page.Body, Placement: PlacementViewport}
}

// hint reads one axis, preferring the long key
func (h Host) hint(key string) string {
	if v := h.Element.Data[CategoryKey(key)]; v != "" {
		return v
	}
	return h.Element.Data[key]
}

// Hints returns the size, speed and density category hints
func (h Host) Hints() (size, speed, density string) {
	return h.hint(HintSize), h.hint(HintSpeed), h.hint(HintDensity)
}

// WithHint returns a copy of the host with one axis overridden.
// An empty value leaves the host unchanged.
func (h Host) WithHint(key, value string) Host {
	if value == "" {
		return h
	}
	data := make(map[string]string, len(h.Element.Data)+1)
	for k, v := range h.Element.Data {
		data[k] = v
	}
	delete(data, CategoryKey(key))
	data[key] = value
	h.Element.Data = data
	return h
}

// Config resolves the host's hints into a SimulationConfig
func (h Host) Config() SimulationConfig {
	return Configure(h.Hints())
}

// Layer returns the overlay layer for this host
func (h Host) Layer() Layer {
	return Layer{
		Fixed:              h.Placement == PlacementViewport,
		WidthPercent:       100,
		HeightPercent:      100,
		PointerPassthrough: true,
		ZIndex:             9999,
	}
}

// Area places the layer inside its positioning context. A fixed layer
// covers bounds; otherwise it covers box, offset by bounds.Min and clipped
// to bounds. The result is then sized by the width and height percentages.
func (l Layer) Area(bounds image.Rectangle, box Box) image.Rectangle {
	base := bounds
	if !l.Fixed {
		base = image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height).Add(bounds.Min).Intersect(bounds)
	}
	w := base.Dx() * l.WidthPercent / 100
	h := base.Dy() * l.HeightPercent / 100
	return image.Rect(base.Min.X, base.Min.Y, base.Min.X+w, base.Min.Y+h)
}

// Area returns the overlay rectangle for this host within bounds
func (h Host) Area(bounds image.Rectangle) image.Rectangle {
	return h.Layer().Area(bounds, h.Element.Box)
}
