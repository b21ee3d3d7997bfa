// Package viomi drives Viomi robot vacuums (viomi.vacuum.v7 family)
// over their local JSON-RPC verb vocabulary. The transport that
// carries the verbs is pluggable; see Transport.
package viomi

import "fmt"

// VacuumState is the device run state.
type VacuumState int

const (
	StateUnknown       VacuumState = -1
	StateIdleNotDocked VacuumState = 0
	StateIdle          VacuumState = 1
	StateIdle2         VacuumState = 2
	StateCleaning      VacuumState = 3
	StateReturning     VacuumState = 4
	StateDocked        VacuumState = 5
	StateVacuumMopping VacuumState = 6
)

var vacuumStateNames = map[VacuumState]string{
	StateUnknown:       "unknown",
	StateIdleNotDocked: "idle_not_docked",
	StateIdle:          "idle",
	StateIdle2:         "idle",
	StateCleaning:      "cleaning",
	StateReturning:     "returning",
	StateDocked:        "docked",
	StateVacuumMopping: "vacuuming_and_mopping",
}

func (s VacuumState) String() string {
	if name, ok := vacuumStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// CleanMode selects what the device does while covering the floor.
type CleanMode int

const (
	ModeVacuum       CleanMode = 0
	ModeVacuumAndMop CleanMode = 1
	ModeMop          CleanMode = 2
	ModeCleanZone    CleanMode = 3
	ModeCleanSpot    CleanMode = 4
	ModeUnknown      CleanMode = -1
)

var cleanModeNames = map[CleanMode]string{
	ModeVacuum:       "vacuum",
	ModeVacuumAndMop: "vacuum_and_mop",
	ModeMop:          "mop",
	ModeCleanZone:    "clean_zone",
	ModeCleanSpot:    "clean_spot",
	ModeUnknown:      "unknown",
}

func (m CleanMode) String() string {
	if name, ok := cleanModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// FanSpeed is the suction grade.
type FanSpeed int

const (
	FanSilent   FanSpeed = 0
	FanStandard FanSpeed = 1
	FanMedium   FanSpeed = 2
	FanTurbo    FanSpeed = 3
	FanUnknown  FanSpeed = -1
)

var fanSpeedNames = map[FanSpeed]string{
	FanSilent:   "silent",
	FanStandard: "standard",
	FanMedium:   "medium",
	FanTurbo:    "turbo",
	FanUnknown:  "unknown",
}

func (f FanSpeed) String() string {
	if name, ok := fanSpeedNames[f]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// WaterGrade is the mop water feed level. Codes are offset by 11 on
// the wire.
type WaterGrade int

const (
	WaterLow     WaterGrade = 11
	WaterMedium  WaterGrade = 12
	WaterHigh    WaterGrade = 13
	WaterUnknown WaterGrade = -1
)

var waterGradeNames = map[WaterGrade]string{
	WaterLow:     "low",
	WaterMedium:  "medium",
	WaterHigh:    "high",
	WaterUnknown: "unknown",
}

func (w WaterGrade) String() string {
	if name, ok := waterGradeNames[w]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(w))
}

// MovementDirection is a manual-drive direction. Left and Right
// rotate in place.
type MovementDirection int

const (
	MoveForward  MovementDirection = 1
	MoveLeft     MovementDirection = 2
	MoveRight    MovementDirection = 3
	MoveBackward MovementDirection = 4
	MoveStop     MovementDirection = 5
	MoveUnknown  MovementDirection = 10
)

var movementDirectionNames = map[MovementDirection]string{
	MoveForward:  "forward",
	MoveLeft:     "left",
	MoveRight:    "right",
	MoveBackward: "backward",
	MoveStop:     "stop",
	MoveUnknown:  "unknown",
}

func (d MovementDirection) String() string {
	if name, ok := movementDirectionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(d))
}

// BinType is the kind of bin currently inserted.
type BinType int

const (
	BinNone           BinType = 0
	BinVacuum         BinType = 1
	BinWater          BinType = 2
	BinVacuumAndWater BinType = 3
	BinUnknown        BinType = -1
)

var binTypeNames = map[BinType]string{
	BinNone:           "none",
	BinVacuum:         "vacuum",
	BinWater:          "water",
	BinVacuumAndWater: "vacuum_and_water",
	BinUnknown:        "unknown",
}

func (b BinType) String() string {
	if name, ok := binTypeNames[b]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(b))
}

// Language selects the voice-prompt language.
type Language int

const (
	LanguageChinese Language = 1
	LanguageEnglish Language = 2
)

func (l Language) String() string {
	switch l {
	case LanguageChinese:
		return "chinese"
	case LanguageEnglish:
		return "english"
	}
	return fmt.Sprintf("unknown(%d)", int(l))
}

// LEDState switches the button LEDs.
type LEDState int

const (
	LEDOff LEDState = 0
	LEDOn  LEDState = 1
)

func (l LEDState) String() string {
	switch l {
	case LEDOff:
		return "off"
	case LEDOn:
		return "on"
	}
	return fmt.Sprintf("unknown(%d)", int(l))
}

// CarpetTurbo is the boost behaviour on carpet.
type CarpetTurbo int

const (
	CarpetTurboOff    CarpetTurbo = 0
	CarpetTurboMedium CarpetTurbo = 1
	CarpetTurboOn     CarpetTurbo = 2
)

func (c CarpetTurbo) String() string {
	switch c {
	case CarpetTurboOff:
		return "off"
	case CarpetTurboMedium:
		return "medium"
	case CarpetTurboOn:
		return "turbo"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// RoutePattern is the mopping sweep pattern.
type RoutePattern int

const (
	RouteS       RoutePattern = 0
	RouteY       RoutePattern = 1
	RouteUnknown RoutePattern = -1
)

func (r RoutePattern) String() string {
	switch r {
	case RouteS:
		return "s"
	case RouteY:
		return "y"
	case RouteUnknown:
		return "unknown"
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

// VoiceLevel is the prompt volume in 10% steps; 0 is off.
type VoiceLevel int

const (
	VoiceOff     VoiceLevel = 0
	VoiceUnknown VoiceLevel = -1
)

func (v VoiceLevel) String() string {
	switch {
	case v == VoiceOff:
		return "off"
	case v >= 1 && v <= 10:
		return fmt.Sprintf("%d%%", int(v)*10)
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}

// EdgeState controls perimeter-following cleaning. The setting is
// consumed by the next cleaning run.
type EdgeState int

const (
	EdgeOff     EdgeState = 0
	EdgeUnset   EdgeState = 1
	EdgeOn      EdgeState = 2
	EdgeUnknown EdgeState = -1
)

var edgeStateNames = map[EdgeState]string{
	EdgeOff:     "off",
	EdgeUnset:   "unset",
	EdgeOn:      "on",
	EdgeUnknown: "unknown",
}

func (e EdgeState) String() string {
	if name, ok := edgeStateNames[e]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(e))
}

// ParseFanSpeed resolves a fan speed by name.
func ParseFanSpeed(name string) (FanSpeed, error) {
	for speed, n := range fanSpeedNames {
		if n == name && speed != FanUnknown {
			return speed, nil
		}
	}
	return FanUnknown, fmt.Errorf("unknown fan speed %q", name)
}

// ParseCleanMode resolves a cleaning mode by name.
func ParseCleanMode(name string) (CleanMode, error) {
	for mode, n := range cleanModeNames {
		if n == name && mode != ModeUnknown {
			return mode, nil
		}
	}
	return ModeUnknown, fmt.Errorf("unknown clean mode %q", name)
}

// ParseWaterGrade resolves a water grade by name.
func ParseWaterGrade(name string) (WaterGrade, error) {
	for grade, n := range waterGradeNames {
		if n == name && grade != WaterUnknown {
			return grade, nil
		}
	}
	return WaterUnknown, fmt.Errorf("unknown water grade %q", name)
}

// ParseMovementDirection resolves a manual-drive direction by name.
func ParseMovementDirection(name string) (MovementDirection, error) {
	for dir, n := range movementDirectionNames {
		if n == name && dir != MoveUnknown {
			return dir, nil
		}
	}
	return MoveUnknown, fmt.Errorf("unknown direction %q", name)
}

var errorMessages = map[int]string{
	0:    "Sleeping and not charging",
	500:  "Radar timed out",
	501:  "Wheels stuck",
	502:  "Low battery",
	503:  "Dust bin missing",
	508:  "Uneven ground",
	509:  "Cliff sensor error",
	510:  "Collision sensor error",
	511:  "Could not return to dock",
	512:  "Could not return to dock",
	513:  "Could not navigate",
	514:  "Vacuum stuck",
	515:  "Charging error",
	516:  "Mop temperature error",
	521:  "Water tank is not installed",
	522:  "Mop is not installed",
	525:  "Insufficient water in water tank",
	527:  "Remove mop",
	528:  "Dust bin missing",
	529:  "Mop and water tank missing",
	530:  "Mop and water tank missing",
	531:  "Water tank is not installed",
	2101: "Insufficient battery, continuing cleaning after recharge",
	2103: "Charging",
	2105: "Fully charged",
}

// ErrorMessage maps a device error code to a human-readable string.
// Codes introduced by newer firmware fall back to "Unknown error N".
func ErrorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("Unknown error %d", code)
}
