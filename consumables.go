package viomi

import "time"

// Rated lifetimes of the wearable parts.
const (
	MainBrushLifetime = 360 * time.Hour
	SideBrushLifetime = 180 * time.Hour
	FilterLifetime    = 180 * time.Hour
	MopLifetime       = 180 * time.Hour
)

// Consumables holds cumulative usage of the wearable parts, decoded
// from get_consumables (hours used, in main/side/filter/mop order).
type Consumables struct {
	MainBrush time.Duration
	SideBrush time.Duration
	Filter    time.Duration
	Mop       time.Duration
}

// NewConsumables decodes the get_consumables reply. Missing trailing
// entries read as zero usage.
func NewConsumables(hours []int) Consumables {
	at := func(i int) time.Duration {
		if i >= len(hours) {
			return 0
		}
		return time.Duration(hours[i]) * time.Hour
	}
	return Consumables{
		MainBrush: at(0),
		SideBrush: at(1),
		Filter:    at(2),
		Mop:       at(3),
	}
}

// Remaining life is rated lifetime minus usage. The result is signed:
// once a part is used past its rated life the value goes negative,
// matching how the device app counts overdue parts.

func (c Consumables) MainBrushLeft() time.Duration {
	return MainBrushLifetime - c.MainBrush
}

func (c Consumables) SideBrushLeft() time.Duration {
	return SideBrushLifetime - c.SideBrush
}

func (c Consumables) FilterLeft() time.Duration {
	return FilterLifetime - c.Filter
}

func (c Consumables) MopLeft() time.Duration {
	return MopLifetime - c.Mop
}
