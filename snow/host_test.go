package snow

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHostOrder(t *testing.T) {
	body := Element{ID: "body", Box: Box{Width: 1920, Height: 1080}}
	named := Element{Box: Box{X: 10, Y: 20, Width: 300, Height: 200}, Data: map[string]string{"density": "low"}}
	area := Element{Box: Box{Width: 50, Height: 50}}

	h := ResolveHost(Page{Body: body, Elements: map[string]Element{HostID: named, HostAreaID: area}})
	assert.Equal(t, PlacementElement, h.Placement)
	assert.Equal(t, HostID, h.Element.ID)

	h = ResolveHost(Page{Body: body, Elements: map[string]Element{HostAreaID: area, "other": named}})
	assert.Equal(t, PlacementElement, h.Placement)
	assert.Equal(t, HostAreaID, h.Element.ID)

	h = ResolveHost(Page{Body: body, Elements: map[string]Element{"other": named}})
	assert.Equal(t, PlacementViewport, h.Placement)
	assert.Equal(t, "body", h.Element.ID)

	h = ResolveHost(Page{Body: body})
	assert.Equal(t, PlacementViewport, h.Placement)
}

func TestHostConfigPerAxisFallback(t *testing.T) {
	h := Host{Element: Element{Data: map[string]string{
		"size":    "large",
		"speed":   "warp",
		"density": "low",
	}}}
	size, speed, density := h.Hints()
	assert.Equal(t, "large", size)
	assert.Equal(t, "warp", speed)
	assert.Equal(t, "low", density)

	cfg := h.Config()
	assert.Equal(t, SizeRange{4, 8}, cfg.SizeRange)
	assert.Equal(t, 1.0, cfg.SpeedMultiplier)
	assert.Equal(t, 50, cfg.ParticleCount)

	assert.Equal(t, DefaultConfig(), Host{}.Config())
}

func TestHostLayer(t *testing.T) {
	viewport := Host{Placement: PlacementViewport}.Layer()
	assert.True(t, viewport.Fixed)
	assert.True(t, viewport.PointerPassthrough)
	assert.Equal(t, 100, viewport.WidthPercent)
	assert.Equal(t, 100, viewport.HeightPercent)
	assert.Equal(t, 9999, viewport.ZIndex)

	element := Host{Placement: PlacementElement}.Layer()
	assert.False(t, element.Fixed)
	assert.Equal(t, "element", PlacementElement.String())
	assert.Equal(t, "viewport", PlacementViewport.String())
}

func TestHostHintSpellings(t *testing.T) {
	long := Host{Element: Element{Data: map[string]string{
		"size-category":    "small",
		"speed-category":   "fast",
		"density-category": "low",
	}}}
	assert.Equal(t, SimulationConfig{50, 2, SizeRange{2, 4}}, long.Config())

	short := Host{Element: Element{Data: map[string]string{
		"size":    "small",
		"speed":   "fast",
		"density": "low",
	}}}
	assert.Equal(t, SimulationConfig{50, 2, SizeRange{2, 4}}, short.Config())

	// the long key wins when both are present; an empty long key does not
	both := Host{Element: Element{Data: map[string]string{
		"size-category":  "large",
		"size":           "small",
		"speed-category": "",
		"speed":          "slow",
	}}}
	size, speed, density := both.Hints()
	assert.Equal(t, "large", size)
	assert.Equal(t, "slow", speed)
	assert.Equal(t, "", density)
	assert.Equal(t, "density-category", CategoryKey(HintDensity))
}

func TestHostWithHint(t *testing.T) {
	data := map[string]string{"size-category": "large", "speed": "slow"}
	h := ResolveHost(Page{Elements: map[string]Element{HostAreaID: {Data: data}}})

	over := h.WithHint(HintSize, "small").WithHint(HintSpeed, "fast").WithHint(HintDensity, "")
	assert.Equal(t, HostAreaID, over.Element.ID)
	assert.Equal(t, SimulationConfig{200, 2, SizeRange{2, 4}}, over.Config())

	// the page's element data is untouched
	assert.Equal(t, map[string]string{"size-category": "large", "speed": "slow"}, data)
	assert.Equal(t, SimulationConfig{200, 0.5, SizeRange{4, 8}}, h.Config())
}

func TestLayerArea(t *testing.T) {
	bounds := image.Rect(0, 0, 1920, 1080)
	box := Box{X: 100, Y: 50, Width: 400, Height: 300}

	viewport := Host{Placement: PlacementViewport, Element: Element{Box: box}}
	assert.Equal(t, bounds, viewport.Area(bounds))

	element := Host{Placement: PlacementElement, Element: Element{Box: box}}
	assert.Equal(t, image.Rect(100, 50, 500, 350), element.Area(bounds))

	// element boxes are relative to the positioning context and clipped to it
	offset := image.Rect(10, 20, 300, 200)
	assert.Equal(t, image.Rect(110, 70, 300, 200), element.Area(offset))

	half := Layer{Fixed: true, WidthPercent: 50, HeightPercent: 25}
	assert.Equal(t, image.Rect(0, 0, 960, 270), half.Area(bounds, box))

	off := Host{Placement: PlacementElement, Element: Element{Box: Box{X: 5000, Y: 5000, Width: 10, Height: 10}}}
	assert.True(t, off.Area(bounds).Empty())
}
