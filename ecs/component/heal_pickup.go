package component

// HealPickup restores Amount health to the first living actor that overlaps
// it while below max health. Zero Width/Height fall back to a 24x24 box.
type HealPickup struct {
	Amount float64
	Width  float64
	Height float64
}

var HealPickupComponent = NewComponent[HealPickup]()
