package snow

// Category names shared by every axis. Each axis falls back to CategoryMedium
// on its own when the hint is absent or unknown.
const (
	CategorySmall  = "small"
	CategoryMedium = "medium"
	CategoryLarge  = "large"

	CategorySlow = "slow"
	CategoryFast = "fast"

	CategoryLow  = "low"
	CategoryHigh = "high"
)

// SizeRange is the radius range particles are sampled from.
type SizeRange struct {
	Min float64
	Max float64
}

// SimulationConfig holds the resolved numeric settings for one simulator.
// It is fixed for the simulator's lifetime.
type SimulationConfig struct {
	// ParticleCount is the population size
	ParticleCount int

	// SpeedMultiplier scales both fall speed and drift
	SpeedMultiplier float64

	// SizeRange is the radius range in surface pixels
	SizeRange SizeRange
}

// densityTable maps density categories to particle counts.
// NOTE: high (150) is lower than medium (200). The table is kept as shipped;
// do not reorder without deciding to change the visible density.
var densityTable = map[string]int{
	CategoryLow:    50,
	CategoryMedium: 200,
	CategoryHigh:   150,
}

var speedTable = map[string]float64{
	CategorySlow:   0.5,
	CategoryMedium: 1,
	CategoryFast:   2,
}

var sizeTable = map[string]SizeRange{
	CategorySmall:  {Min: 2, Max: 4},
	CategoryMedium: {Min: 3, Max: 6},
	CategoryLarge:  {Min: 4, Max: 8},
}

// Configure resolves the three category hints into a SimulationConfig.
func Configure(sizeCategory, speedCategory, densityCategory string) SimulationConfig {
	size, ok := sizeTable[sizeCategory]
	if !ok {
		size = sizeTable[CategoryMedium]
	}
	speed, ok := speedTable[speedCategory]
	if !ok {
		speed = speedTable[CategoryMedium]
	}
	count, ok := densityTable[densityCategory]
	if !ok {
		count = densityTable[CategoryMedium]
	}

	return SimulationConfig{
		ParticleCount:   count,
		SpeedMultiplier: speed,
		SizeRange:       size,
	}
}

// DefaultConfig returns the all-medium configuration
func DefaultConfig() SimulationConfig {
	return Configure(CategoryMedium, CategoryMedium, CategoryMedium)
}
