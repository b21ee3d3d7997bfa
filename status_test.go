package viomi

import (
	"testing"
	"time"
)

// statusWith builds a Status from named overrides; every other profile
// property stays absent.
func statusWith(overrides map[string]any) *Status {
	data := make(map[string]any, len(overrides))
	for name, value := range overrides {
		data[name] = value
	}
	return &Status{profile: DefaultProfile(), data: data}
}

func TestStatusAccessors(t *testing.T) {
	s := statusWith(map[string]any{
		"battary_life":  float64(87),
		"box_type":      float64(3),
		"run_state":     float64(3),
		"suction_grade": float64(2),
		"water_grade":   float64(12),
		"is_mop":        float64(1),
		"mop_type":      float64(1),
		"s_time":        float64(95),
		"s_area":        1.5,
		"hw_info":       "1.0.5",
		"cur_mapid":     float64(12),
		"map_num":       float64(2),
		"mode":          float64(2),
		"mop_route":     float64(1),
		"v_state":       float64(4),
		"err_state":     float64(2103),
	})

	if s.Battery() != 87 {
		t.Errorf("Battery = %d", s.Battery())
	}
	if s.BinType() != BinVacuumAndWater {
		t.Errorf("BinType = %v", s.BinType())
	}
	if s.State() != StateCleaning {
		t.Errorf("State = %v", s.State())
	}
	if s.FanSpeed() != FanMedium {
		t.Errorf("FanSpeed = %v", s.FanSpeed())
	}
	if s.WaterGrade() != WaterMedium {
		t.Errorf("WaterGrade = %v", s.WaterGrade())
	}
	if s.MopMode() != ModeVacuumAndMop {
		t.Errorf("MopMode = %v", s.MopMode())
	}
	if !s.MopInstalled() {
		t.Error("MopInstalled = false")
	}
	if s.CleanTime() != 95*time.Second {
		t.Errorf("CleanTime = %s", s.CleanTime())
	}
	if s.CleanArea() != 1.5 {
		t.Errorf("CleanArea = %v", s.CleanArea())
	}
	if s.HardwareVersion() != "1.0.5" {
		t.Errorf("HardwareVersion = %q", s.HardwareVersion())
	}
	if s.CurrentMapID() != 12 {
		t.Errorf("CurrentMapID = %d", s.CurrentMapID())
	}
	if s.MapCount() != 2 {
		t.Errorf("MapCount = %d", s.MapCount())
	}
	if s.EdgeState() != EdgeOn {
		t.Errorf("EdgeState = %v", s.EdgeState())
	}
	if s.MopRoute() != RouteY {
		t.Errorf("MopRoute = %v", s.MopRoute())
	}
	if s.VoiceLevel() != VoiceLevel(4) {
		t.Errorf("VoiceLevel = %v", s.VoiceLevel())
	}
	if s.ErrorCode() != 2103 {
		t.Errorf("ErrorCode = %d", s.ErrorCode())
	}
	if s.Error() != "Charging" {
		t.Errorf("Error = %q", s.Error())
	}
}

func TestStatusInvertedFlags(t *testing.T) {
	s := statusWith(map[string]any{
		"is_charge": float64(0),
		"is_work":   float64(1),
	})
	if !s.Charging() {
		t.Error("is_charge=0 should read as charging on the v7")
	}
	if s.Working() {
		t.Error("is_work=1 should read as not working on the v7")
	}

	s = statusWith(map[string]any{
		"is_charge": float64(1),
		"is_work":   float64(0),
	})
	if s.Charging() {
		t.Error("is_charge=1 should read as not charging")
	}
	if !s.Working() {
		t.Error("is_work=0 should read as working")
	}
}

func TestStatusAbsentPropertiesDegrade(t *testing.T) {
	s := statusWith(nil)
	if s.Battery() != -1 {
		t.Errorf("Battery = %d", s.Battery())
	}
	if s.State() != StateUnknown {
		t.Errorf("State = %v", s.State())
	}
	if s.FanSpeed() != FanUnknown {
		t.Errorf("FanSpeed = %v", s.FanSpeed())
	}
	if s.WaterGrade() != WaterUnknown {
		t.Errorf("WaterGrade = %v", s.WaterGrade())
	}
	if s.BinType() != BinUnknown {
		t.Errorf("BinType = %v", s.BinType())
	}
	if s.MopMode() != ModeUnknown {
		t.Errorf("MopMode = %v", s.MopMode())
	}
	if s.CurrentMapID() != -1 {
		t.Errorf("CurrentMapID = %d", s.CurrentMapID())
	}
	if s.MapCount() != -1 {
		t.Errorf("MapCount = %d", s.MapCount())
	}
	if s.ErrorCode() != -1 {
		t.Errorf("ErrorCode = %d", s.ErrorCode())
	}
	if s.Error() != "" {
		t.Errorf("Error = %q", s.Error())
	}
	if s.OrderTime() != -1 || s.StartTime() != -1 || s.WaterPercent() != -1 || s.ZoneData() != -1 {
		t.Error("opaque properties should read -1 when absent")
	}
	if s.HardwareVersion() != "" {
		t.Errorf("HardwareVersion = %q", s.HardwareVersion())
	}
	if s.CleanTime() != 0 {
		t.Errorf("CleanTime = %s", s.CleanTime())
	}
}

func TestStatusUnmappedCodesDegrade(t *testing.T) {
	s := statusWith(map[string]any{
		"run_state":     float64(42),
		"suction_grade": float64(9),
		"mode":          float64(7),
		"v_state":       float64(200),
		"mop_route":     float64(3),
	})
	if s.State() != StateUnknown {
		t.Errorf("State = %v", s.State())
	}
	if s.FanSpeed() != FanUnknown {
		t.Errorf("FanSpeed = %v", s.FanSpeed())
	}
	if s.EdgeState() != EdgeUnknown {
		t.Errorf("EdgeState = %v", s.EdgeState())
	}
	if s.VoiceLevel() != VoiceUnknown {
		t.Errorf("VoiceLevel = %v", s.VoiceLevel())
	}
	if s.MopRoute() != RouteUnknown {
		t.Errorf("MopRoute = %v", s.MopRoute())
	}
}

func TestNewStatusZipsPositionally(t *testing.T) {
	profile := DefaultProfile()
	values := make([]any, len(profile.Properties))
	for i := range values {
		values[i] = float64(i)
	}
	s := NewStatus(profile, values)
	if s.Battery() != 0 {
		t.Errorf("Battery = %d", s.Battery())
	}
	if v, ok := s.Raw("zone_data"); !ok || v != float64(len(profile.Properties)-1) {
		t.Errorf("Raw(zone_data) = %v, %t", v, ok)
	}

	// A short reply leaves the tail absent rather than panicking.
	short := NewStatus(profile, values[:2])
	if short.State() != StateUnknown {
		t.Errorf("State = %v on short reply", short.State())
	}
	if short.Battery() != 0 {
		t.Errorf("Battery = %d on short reply", short.Battery())
	}
}
