package viomi

import (
	"log"
	"time"
)

// Profile describes one firmware/hardware revision: which properties
// the batched getter should request and which boolean flags report
// with inverted polarity. The near-duplicate Viomi models differ only
// in these two tables, so one decoder serves them all.
type Profile struct {
	Model string
	// Properties is the name list sent to get_properties. Values come
	// back positionally in the same order.
	Properties []string
	// InvertedFlags holds flag properties where 0 means "yes". On the
	// v7, is_charge=0 means charging and is_work=0 means working.
	InvertedFlags map[string]bool
}

// DefaultProfile is viomi.vacuum.v7 (STYJ02YM).
func DefaultProfile() Profile {
	return Profile{
		Model: "viomi.vacuum.v7",
		Properties: []string{
			"battary_life",
			"box_type",
			"cur_mapid",
			"err_state",
			"has_map",
			"has_newmap",
			"hw_info",
			"is_charge",
			"is_mop",
			"is_work",
			"light_state",
			"map_num",
			"mode",
			"mop_route",
			"mop_type",
			"order_time",
			"remember_map",
			"repeat_state",
			"run_state",
			"s_area",
			"s_time",
			"start_time",
			"suction_grade",
			"v_state",
			"water_grade",
			"water_percent",
			"zone_data",
		},
		InvertedFlags: map[string]bool{
			"is_charge": true,
			"is_work":   true,
		},
	}
}

// Status is an immutable snapshot of the device's property map, with
// one typed accessor per semantic field. Accessors are total: absent
// properties and unmapped codes degrade to sentinels, never panic.
type Status struct {
	profile Profile
	data    map[string]any
}

// NewStatus zips positional property values against the profile's
// property list. Short value lists leave the tail absent, which the
// accessors treat as unknown.
func NewStatus(profile Profile, values []any) *Status {
	data := make(map[string]any, len(values))
	for i, value := range values {
		if i >= len(profile.Properties) {
			break
		}
		data[profile.Properties[i]] = value
	}
	return &Status{profile: profile, data: data}
}

// Raw returns the raw value for a property name, if present.
func (s *Status) Raw(name string) (any, bool) {
	v, ok := s.data[name]
	return v, ok
}

func (s *Status) intField(name string) (int, bool) {
	v, ok := s.data[name]
	if !ok {
		return 0, false
	}
	return intFrom(v)
}

// flag interprets an integer property as a boolean, honouring the
// profile's polarity table. Absent properties read as false.
func (s *Status) flag(name string) bool {
	v, ok := s.intField(name)
	if !ok {
		return false
	}
	truthy := v != 0
	if s.profile.InvertedFlags[name] {
		return !truthy
	}
	return truthy
}

// State is the device run state.
func (s *Status) State() VacuumState {
	code, ok := s.intField("run_state")
	if !ok {
		return StateUnknown
	}
	state := VacuumState(code)
	if _, known := vacuumStateNames[state]; !known {
		log.Printf("viomi: unknown vacuum state %d", code)
		return StateUnknown
	}
	return state
}

// EdgeState reports perimeter-following mode.
func (s *Status) EdgeState() EdgeState {
	code, ok := s.intField("mode")
	if !ok {
		return EdgeUnknown
	}
	state := EdgeState(code)
	if _, known := edgeStateNames[state]; !known {
		log.Printf("viomi: unknown edge state %d", code)
		return EdgeUnknown
	}
	return state
}

// MopInstalled reports whether the mop plate is attached.
func (s *Status) MopInstalled() bool {
	return s.flag("mop_type")
}

// ErrorCode is the raw device error code, or -1 when absent.
func (s *Status) ErrorCode() int {
	code, ok := s.intField("err_state")
	if !ok {
		return -1
	}
	return code
}

// Error renders ErrorCode via the error table; "" when absent.
func (s *Status) Error() string {
	code, ok := s.intField("err_state")
	if !ok {
		return ""
	}
	return ErrorMessage(code)
}

// Battery is the charge percentage, or -1 when absent.
func (s *Status) Battery() int {
	v, ok := s.intField("battary_life")
	if !ok {
		return -1
	}
	return v
}

// BinType is the inserted bin kind.
func (s *Status) BinType() BinType {
	code, ok := s.intField("box_type")
	if !ok {
		return BinUnknown
	}
	bin := BinType(code)
	if _, known := binTypeNames[bin]; !known {
		log.Printf("viomi: unknown bin type %d", code)
		return BinUnknown
	}
	return bin
}

// CleanTime is the current run's cleaning time.
func (s *Status) CleanTime() time.Duration {
	seconds, ok := s.intField("s_time")
	if !ok {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// CleanArea is the cleaned area in square meters.
func (s *Status) CleanArea() float64 {
	v, ok := s.data["s_area"]
	if !ok {
		return 0
	}
	area, _ := floatFrom(v)
	return area
}

// FanSpeed is the current suction grade.
func (s *Status) FanSpeed() FanSpeed {
	code, ok := s.intField("suction_grade")
	if !ok {
		return FanUnknown
	}
	speed := FanSpeed(code)
	if _, known := fanSpeedNames[speed]; !known {
		log.Printf("viomi: unknown fan speed %d", code)
		return FanUnknown
	}
	return speed
}

// WaterGrade is the current water feed level.
func (s *Status) WaterGrade() WaterGrade {
	code, ok := s.intField("water_grade")
	if !ok {
		return WaterUnknown
	}
	grade := WaterGrade(code)
	if _, known := waterGradeNames[grade]; !known {
		log.Printf("viomi: unknown water grade %d", code)
		return WaterUnknown
	}
	return grade
}

// RememberMap reports whether the device keeps its map between runs.
func (s *Status) RememberMap() bool {
	return s.flag("remember_map")
}

// HasMap reports whether the device holds a map.
func (s *Status) HasMap() bool {
	return s.flag("has_map")
}

// HasNewMap reports whether the device scanned a map it has not
// saved yet (a new floor).
func (s *Status) HasNewMap() bool {
	return s.flag("has_newmap")
}

// MopMode is the active cleaning mode.
func (s *Status) MopMode() CleanMode {
	code, ok := s.intField("is_mop")
	if !ok {
		return ModeUnknown
	}
	mode := CleanMode(code)
	if _, known := cleanModeNames[mode]; !known {
		log.Printf("viomi: unknown clean mode %d", code)
		return ModeUnknown
	}
	return mode
}

// CurrentMapID is the active map id, or -1 when absent.
func (s *Status) CurrentMapID() int64 {
	v, ok := s.data["cur_mapid"]
	if !ok {
		return -1
	}
	id, ok := int64From(v)
	if !ok {
		return -1
	}
	return id
}

// HardwareVersion is the device's reported hardware info string.
func (s *Status) HardwareVersion() string {
	v, ok := s.data["hw_info"]
	if !ok {
		return ""
	}
	return stringFrom(v)
}

// Charging reports whether the battery is charging. Polarity is
// inverted on the v7; note the device reports not-charging at 100%.
func (s *Status) Charging() bool {
	return s.flag("is_charge")
}

// Working reports whether the device is working. Polarity is inverted
// on the v7.
func (s *Status) Working() bool {
	return s.flag("is_work")
}

// LightOn reports the button LED state.
func (s *Status) LightOn() bool {
	return s.flag("light_state")
}

// MapCount is the number of saved maps, or -1 when absent.
func (s *Status) MapCount() int {
	v, ok := s.intField("map_num")
	if !ok {
		return -1
	}
	return v
}

// MopRoute is the mopping sweep pattern.
func (s *Status) MopRoute() RoutePattern {
	code, ok := s.intField("mop_route")
	if !ok {
		return RouteUnknown
	}
	switch route := RoutePattern(code); route {
	case RouteS, RouteY:
		return route
	default:
		log.Printf("viomi: unknown mop route %d", code)
		return RouteUnknown
	}
}

// OrderTime is kept as an opaque int; its semantics (int vs bool) are
// unknown. -1 when absent.
func (s *Status) OrderTime() int {
	v, ok := s.intField("order_time")
	if !ok {
		return -1
	}
	return v
}

// RepeatEnabled reports secondary-cleanup mode.
func (s *Status) RepeatEnabled() bool {
	return s.flag("repeat_state")
}

// StartTime is kept as an opaque int; its semantics are unknown.
// -1 when absent.
func (s *Status) StartTime() int {
	v, ok := s.intField("start_time")
	if !ok {
		return -1
	}
	return v
}

// VoiceLevel is the prompt volume.
func (s *Status) VoiceLevel() VoiceLevel {
	code, ok := s.intField("v_state")
	if !ok {
		return VoiceUnknown
	}
	if code < 0 || code > 10 {
		log.Printf("viomi: unknown voice level %d", code)
		return VoiceUnknown
	}
	return VoiceLevel(code)
}

// WaterPercent is kept as an opaque int; its semantics are unknown.
// -1 when absent.
func (s *Status) WaterPercent() int {
	v, ok := s.intField("water_percent")
	if !ok {
		return -1
	}
	return v
}

// ZoneData is kept as an opaque int; its semantics are unknown.
// -1 when absent.
func (s *Status) ZoneData() int {
	v, ok := s.intField("zone_data")
	if !ok {
		return -1
	}
	return v
}
