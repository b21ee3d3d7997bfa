package viomi

import (
	"fmt"
	"strings"
	"time"
)

// Report renders the status snapshot as the fixed multi-section text
// report shown to users. Fields whose semantics are still unknown are
// kept verbatim under their own section so newer firmware output
// stays visible.
func Report(s *Status) string {
	var b strings.Builder

	b.WriteString("General\n")
	b.WriteString("=======\n\n")
	fmt.Fprintf(&b, "Hardware version: %s\n", s.HardwareVersion())
	fmt.Fprintf(&b, "State: %s\n", s.State())
	fmt.Fprintf(&b, "Working: %t\n", s.Working())
	fmt.Fprintf(&b, "Battery status: %s\n", s.Error())
	fmt.Fprintf(&b, "Battery: %d\n", s.Battery())
	fmt.Fprintf(&b, "Charging: %t\n", s.Charging())
	fmt.Fprintf(&b, "Box type: %s\n", s.BinType())
	fmt.Fprintf(&b, "Fan speed: %s\n", s.FanSpeed())
	fmt.Fprintf(&b, "Water grade: %s\n", s.WaterGrade())
	fmt.Fprintf(&b, "Mop mode: %s\n", s.MopMode())
	fmt.Fprintf(&b, "Mop installed: %t\n", s.MopInstalled())
	fmt.Fprintf(&b, "Vacuum along the edges: %s\n", s.EdgeState())
	fmt.Fprintf(&b, "Mop route pattern: %s\n", s.MopRoute())
	fmt.Fprintf(&b, "Secondary cleanup: %t\n", s.RepeatEnabled())
	fmt.Fprintf(&b, "Voice state: %s\n", s.VoiceLevel())
	fmt.Fprintf(&b, "Clean time: %s\n", formatDuration(s.CleanTime()))
	fmt.Fprintf(&b, "Clean area: %.2f m²\n", s.CleanArea())

	b.WriteString("\nMap\n")
	b.WriteString("===\n\n")
	fmt.Fprintf(&b, "Current map ID: %d\n", s.CurrentMapID())
	fmt.Fprintf(&b, "Remember map: %t\n", s.RememberMap())
	fmt.Fprintf(&b, "Has map: %t\n", s.HasMap())
	fmt.Fprintf(&b, "Has new map: %t\n", s.HasNewMap())
	fmt.Fprintf(&b, "Number of maps: %d\n", s.MapCount())

	b.WriteString("\nUnknown properties\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Light state: %t\n", s.LightOn())
	fmt.Fprintf(&b, "Order time: %d\n", s.OrderTime())
	fmt.Fprintf(&b, "Start time: %d\n", s.StartTime())
	fmt.Fprintf(&b, "water_percent: %d\n", s.WaterPercent())
	fmt.Fprintf(&b, "zone_data: %d\n", s.ZoneData())

	return b.String()
}

// ConsumablesReport renders wearable-part usage and remaining life.
func ConsumablesReport(c Consumables) string {
	var b strings.Builder
	b.WriteString("Consumables\n")
	b.WriteString("===========\n\n")
	fmt.Fprintf(&b, "Main brush: %s (%s left)\n", formatDuration(c.MainBrush), formatDuration(c.MainBrushLeft()))
	fmt.Fprintf(&b, "Side brush: %s (%s left)\n", formatDuration(c.SideBrush), formatDuration(c.SideBrushLeft()))
	fmt.Fprintf(&b, "Filter: %s (%s left)\n", formatDuration(c.Filter), formatDuration(c.FilterLeft()))
	fmt.Fprintf(&b, "Mop: %s (%s left)\n", formatDuration(c.Mop), formatDuration(c.MopLeft()))
	return b.String()
}

func formatDuration(d time.Duration) string {
	negative := d < 0
	if negative {
		d = -d
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	out := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if negative {
		return "-" + out
	}
	return out
}
