package viomi

import (
	"context"
	"fmt"
	"time"
)

const moveResendInterval = 100 * time.Millisecond

// Session is the command façade for one device connection. It holds
// the only session-scoped mutable state: the cached edge mode (a
// prefix argument to every mode-changing call) and the cached room
// table. A Session is not safe for concurrent use; callers sharing
// one must serialize access.
type Session struct {
	transport Transport
	cfg       Config

	seq       int
	manualSeq int

	edgeMode *EdgeState
	rooms    map[string]string
}

// NewSession wraps a transport with the typed verb vocabulary.
func NewSession(transport Transport, cfg Config) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		transport: transport,
		cfg:       cfg,
		seq:       cfg.StartID,
		manualSeq: cfg.ManualStartID,
	}
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.transport.Close()
}

// Profile returns the firmware profile the session decodes with.
func (s *Session) Profile() Profile {
	return s.cfg.Profile
}

// Status fetches the full property snapshot in one batched call.
func (s *Session) Status(ctx context.Context) (*Status, error) {
	result, err := s.send(ctx, "get_properties", s.cfg.Profile.Properties)
	if err != nil {
		return nil, err
	}
	values, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("get_properties: unexpected reply %T", result)
	}
	return NewStatus(s.cfg.Profile, values), nil
}

// Consumables fetches cumulative usage of the wearable parts.
func (s *Session) Consumables(ctx context.Context) (Consumables, error) {
	result, err := s.send(ctx, "get_consumables", nil)
	if err != nil {
		return Consumables{}, err
	}
	hours, ok := intListFrom(result)
	if !ok {
		return Consumables{}, fmt.Errorf("get_consumables: unexpected reply %T", result)
	}
	return NewConsumables(hours), nil
}

// Home sends the device back to its dock.
func (s *Session) Home(ctx context.Context) error {
	_, err := s.send(ctx, "set_charge", []any{1})
	return err
}

// edgeModeValue returns the cached edge mode, fetching it on first
// use. Every mode-changing verb takes it as a prefix argument, so one
// lazy read per session replaces a round trip per call.
func (s *Session) edgeModeValue(ctx context.Context) (EdgeState, error) {
	if s.edgeMode != nil {
		return *s.edgeMode, nil
	}
	return s.RefreshEdgeMode(ctx)
}

// RefreshEdgeMode re-reads the edge mode from the device and updates
// the session cache.
func (s *Session) RefreshEdgeMode(ctx context.Context) (EdgeState, error) {
	result, err := s.send(ctx, "get_properties", []any{"mode"})
	if err != nil {
		return EdgeUnknown, err
	}
	values, ok := result.([]any)
	if !ok || len(values) == 0 {
		return EdgeUnknown, fmt.Errorf("get_properties mode: unexpected reply %T", result)
	}
	code, ok := intFrom(values[0])
	if !ok {
		return EdgeUnknown, fmt.Errorf("get_properties mode: unexpected value %v", values[0])
	}
	mode := EdgeState(code)
	s.edgeMode = &mode
	return mode, nil
}

// Mode-change action codes appended after the edge-mode prefix.
const (
	actionStop  = 0
	actionStart = 1
	actionPause = 2
)

// Start begins cleaning everything.
func (s *Session) Start(ctx context.Context) error {
	edge, err := s.edgeModeValue(ctx)
	if err != nil {
		return err
	}
	_, err = s.send(ctx, "set_mode_withroom", []any{int(edge), actionStart, 0})
	return err
}

// StartWithRooms begins cleaning specific rooms, given by numeric id
// or by name. Names resolve through the room table, building it on
// demand. Unresolvable input yields an *UnknownRoomError listing the
// valid ids and names.
func (s *Session) StartWithRooms(ctx context.Context, rooms []string) error {
	table, err := s.Rooms(ctx, RoomsOptions{})
	if err != nil {
		return err
	}
	byName := make(map[string]string, len(table))
	for id, name := range table {
		if name != "" {
			byName[name] = id
		}
	}
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if _, ok := table[room]; ok {
			ids = append(ids, room)
			continue
		}
		if id, ok := byName[room]; ok {
			ids = append(ids, id)
			continue
		}
		return &UnknownRoomError{Room: room, IDs: sortedKeys(table), Names: sortedValues(table)}
	}
	edge, err := s.edgeModeValue(ctx)
	if err != nil {
		return err
	}
	params := []any{int(edge), actionStart, 0, len(ids)}
	for _, id := range ids {
		n, ok := intFrom(id)
		if !ok {
			return &UnknownRoomError{Room: id, IDs: sortedKeys(table), Names: sortedValues(table)}
		}
		params = append(params, n)
	}
	_, err = s.send(ctx, "set_mode_withroom", params)
	return err
}

// Pause pauses the current run.
func (s *Session) Pause(ctx context.Context) error {
	return s.modeAction(ctx, actionPause)
}

// Stop stops the current run.
func (s *Session) Stop(ctx context.Context) error {
	return s.modeAction(ctx, actionStop)
}

func (s *Session) modeAction(ctx context.Context, action int) error {
	edge, err := s.edgeModeValue(ctx)
	if err != nil {
		return err
	}
	_, err = s.send(ctx, "set_mode", []any{int(edge), action})
	return err
}

// SetCleanMode selects vacuum, mop, both, zone or spot cleaning.
func (s *Session) SetCleanMode(ctx context.Context, mode CleanMode) error {
	_, err := s.send(ctx, "set_mop", []any{int(mode)})
	return err
}

// SetFanSpeed sets the suction grade.
func (s *Session) SetFanSpeed(ctx context.Context, speed FanSpeed) error {
	_, err := s.send(ctx, "set_suction", []any{int(speed)})
	return err
}

// SetWaterGrade sets the mop water feed. Water grades share the
// suction verb, which is why their codes are offset to 11-13.
func (s *Session) SetWaterGrade(ctx context.Context, grade WaterGrade) error {
	_, err := s.send(ctx, "set_suction", []any{int(grade)})
	return err
}

// SetEdge switches perimeter-following cleaning. The new value
// becomes the cached edge mode.
func (s *Session) SetEdge(ctx context.Context, state EdgeState) error {
	_, err := s.send(ctx, "set_mode", []any{int(state)})
	if err != nil {
		return err
	}
	s.edgeMode = &state
	return nil
}

// SetRepeat switches secondary cleanup.
func (s *Session) SetRepeat(ctx context.Context, enabled bool) error {
	_, err := s.send(ctx, "set_repeat", []any{boolArg(enabled)})
	return err
}

// SetRoutePattern sets the mopping sweep pattern.
func (s *Session) SetRoutePattern(ctx context.Context, pattern RoutePattern) error {
	_, err := s.send(ctx, "set_moproute", []any{int(pattern)})
	return err
}

// DNDStatus is the do-not-disturb window.
type DNDStatus struct {
	Enabled     bool
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// DND fetches the do-not-disturb window.
func (s *Session) DND(ctx context.Context) (DNDStatus, error) {
	result, err := s.send(ctx, "get_notdisturb", nil)
	if err != nil {
		return DNDStatus{}, err
	}
	values, ok := intListFrom(result)
	if !ok || len(values) < 5 {
		return DNDStatus{}, fmt.Errorf("get_notdisturb: unexpected reply %v", result)
	}
	return DNDStatus{
		Enabled:     values[0] != 0,
		StartHour:   values[1],
		StartMinute: values[2],
		EndHour:     values[3],
		EndMinute:   values[4],
	}, nil
}

// SetDND configures the do-not-disturb window.
func (s *Session) SetDND(ctx context.Context, dnd DNDStatus) error {
	_, err := s.send(ctx, "set_notdisturb", []any{
		boolArg(dnd.Enabled), dnd.StartHour, dnd.StartMinute, dnd.EndHour, dnd.EndMinute,
	})
	return err
}

// SetVoice sets the prompt volume.
func (s *Session) SetVoice(ctx context.Context, level VoiceLevel) error {
	_, err := s.send(ctx, "set_voice", []any{1, int(level)})
	return err
}

// SetRemember switches map persistence between runs.
func (s *Session) SetRemember(ctx context.Context, enabled bool) error {
	_, err := s.send(ctx, "set_remember", []any{boolArg(enabled)})
	return err
}

// SetLanguage sets the voice-prompt language.
func (s *Session) SetLanguage(ctx context.Context, language Language) error {
	_, err := s.send(ctx, "set_language", []any{int(language)})
	return err
}

// SetLED switches the button LEDs.
func (s *Session) SetLED(ctx context.Context, state LEDState) error {
	_, err := s.send(ctx, "set_light", []any{int(state)})
	return err
}

// SetCarpetTurbo sets the carpet boost behaviour.
func (s *Session) SetCarpetTurbo(ctx context.Context, mode CarpetTurbo) error {
	_, err := s.send(ctx, "set_carpetturbo", []any{int(mode)})
	return err
}

// Move drives one direction for a wall-clock duration, resending the
// direction every 100ms, then issues a terminal stop. This is
// open-loop timed actuation: the device acknowledges nothing.
func (s *Session) Move(ctx context.Context, direction MovementDirection, duration time.Duration) error {
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		s.manualSeq++
		if _, err := s.send(ctx, "set_direction", []any{int(direction)}); err != nil {
			return err
		}
		time.Sleep(moveResendInterval)
	}
	s.manualSeq++
	_, err := s.send(ctx, "set_direction", []any{int(MoveStop)})
	return err
}

// GetScheduledCleanup is not driven yet; the get_ordertime reply is
// only understood well enough for the room-table workaround.
func (s *Session) GetScheduledCleanup(ctx context.Context) error {
	return fmt.Errorf("get_scheduled_cleanup: %w", ErrNotImplemented)
}

// SetScheduledCleanup is not driven yet (set_ordertime).
func (s *Session) SetScheduledCleanup(ctx context.Context) error {
	return fmt.Errorf("set_scheduled_cleanup: %w", ErrNotImplemented)
}

// DeleteScheduledCleanup is not driven yet (det_ordertime).
func (s *Session) DeleteScheduledCleanup(ctx context.Context) error {
	return fmt.Errorf("del_scheduled_cleanup: %w", ErrNotImplemented)
}

// FanSpeedPresets lists the supported fan speeds by name.
func FanSpeedPresets() map[string]int {
	presets := make(map[string]int, 4)
	for _, speed := range []FanSpeed{FanSilent, FanStandard, FanMedium, FanTurbo} {
		presets[speed.String()] = int(speed)
	}
	return presets
}

func boolArg(v bool) int {
	if v {
		return 1
	}
	return 0
}
