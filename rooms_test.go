package viomi

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// The fake schedules follow the device layout:
// id_enabled_repeatdays_hour_minute + seven opaque fields + nrooms,
// then alternating roomid_roomname pairs.
const (
	scheduleKitchenBedroom = "1_0_32_0_0_0_1_1_1_11_0_2_11_Kitchen_13_Bedroom"
	scheduleBathroom       = "2_0_32_0_0_0_1_1_1_11_0_1_12_Bathroom"
	scheduleActive         = "3_1_32_9_30_0_1_1_1_11_0_1_14_Hallway"
)

func TestRoomsFromSchedules(t *testing.T) {
	rooms, err := roomsFromSchedules([]string{
		scheduleKitchenBedroom,
		scheduleBathroom,
		scheduleActive, // enabled, must not contribute
	})
	if err != nil {
		t.Fatalf("roomsFromSchedules: %v", err)
	}
	want := map[string]string{"11": "Kitchen", "13": "Bedroom", "12": "Bathroom"}
	if !reflect.DeepEqual(rooms, want) {
		t.Fatalf("rooms = %v, want %v", rooms, want)
	}
}

func TestRoomsFromSchedulesNoQualifier(t *testing.T) {
	_, err := roomsFromSchedules([]string{scheduleActive, "garbage"})
	var notFound *ScheduleNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ScheduleNotFoundError, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"Hour: 00",
		"Minute: 00",
		"Select all (minus one) the rooms one by one",
		"Select only the missed room",
		"Set as inactive scheduled cleanup",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestRoomsFromSchedulesSkipsTruncatedQualifier(t *testing.T) {
	// Qualifying but with no room tail: counts as found, adds nothing.
	rooms, err := roomsFromSchedules([]string{"1_0_32_0_0_0_1_1"})
	if err != nil {
		t.Fatalf("roomsFromSchedules: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("rooms = %v, want empty", rooms)
	}
}

func roomsHandler(t *testing.T) func(Request) (any, error) {
	t.Helper()
	return func(req Request) (any, error) {
		switch req.Method {
		case "get_ordertime":
			return []any{scheduleKitchenBedroom, scheduleBathroom}, nil
		case "get_map":
			return []any{
				map[string]any{"id": float64(1), "name": "Ground floor", "cur": true},
				map[string]any{"id": float64(2), "name": "Upstairs", "cur": false},
			}, nil
		case "get_properties":
			return []any{float64(0)}, nil
		default:
			return []any{"ok"}, nil
		}
	}
}

func TestRoomsCachesForSession(t *testing.T) {
	transport := &fakeTransport{}
	transport.handler = roomsHandler(t)
	session := NewSession(transport, Config{})
	ctx := context.Background()

	first, err := session.Rooms(ctx, RoomsOptions{})
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if _, err := session.Rooms(ctx, RoomsOptions{}); err != nil {
		t.Fatalf("Rooms (cached): %v", err)
	}
	if got := len(transport.callsFor("get_ordertime")); got != 1 {
		t.Fatalf("expected cached second read, saw %d fetches", got)
	}
	if _, err := session.Rooms(ctx, RoomsOptions{Refresh: true}); err != nil {
		t.Fatalf("Rooms (refresh): %v", err)
	}
	if got := len(transport.callsFor("get_ordertime")); got != 2 {
		t.Fatalf("refresh should refetch, saw %d fetches", got)
	}
	if first["11"] != "Kitchen" || first["12"] != "Bathroom" || first["13"] != "Bedroom" {
		t.Fatalf("rooms = %v", first)
	}
}

func TestRoomsValidatesMapScope(t *testing.T) {
	transport := &fakeTransport{}
	transport.handler = roomsHandler(t)
	session := NewSession(transport, Config{})
	ctx := context.Background()

	if _, err := session.Rooms(ctx, RoomsOptions{MapName: "Ground floor"}); err != nil {
		t.Fatalf("Rooms with valid map name: %v", err)
	}

	session = NewSession(&fakeTransport{handler: roomsHandler(t)}, Config{})
	_, err := session.Rooms(ctx, RoomsOptions{MapName: "Attic"})
	if err == nil || !strings.Contains(err.Error(), `bad map name "Attic"`) ||
		!strings.Contains(err.Error(), "Ground floor") {
		t.Fatalf("unexpected map-name error: %v", err)
	}

	session = NewSession(&fakeTransport{handler: roomsHandler(t)}, Config{})
	_, err = session.Rooms(ctx, RoomsOptions{MapID: 9})
	if err == nil || !strings.Contains(err.Error(), "bad map id 9") ||
		!strings.Contains(err.Error(), "1, 2") {
		t.Fatalf("unexpected map-id error: %v", err)
	}
}

func TestStartWithRoomsResolvesIDsAndNames(t *testing.T) {
	transport := &fakeTransport{}
	transport.handler = roomsHandler(t)
	session := NewSession(transport, Config{})

	if err := session.StartWithRooms(context.Background(), []string{"11", "Bedroom"}); err != nil {
		t.Fatalf("StartWithRooms: %v", err)
	}
	calls := transport.callsFor("set_mode_withroom")
	if len(calls) != 1 {
		t.Fatalf("expected one start call, got %d", len(calls))
	}
	if !reflect.DeepEqual(calls[0].Params, []any{0, 1, 0, 2, 11, 13}) {
		t.Fatalf("start params = %v", calls[0].Params)
	}
}

func TestStartWithRoomsResolvesNamelessRoomID(t *testing.T) {
	// An odd room tail leaves the last id without a name. The id is
	// still in the table and must resolve by membership, not by its
	// (empty) name.
	transport := &fakeTransport{}
	transport.handler = func(req Request) (any, error) {
		switch req.Method {
		case "get_ordertime":
			return []any{"1_0_32_0_0_0_1_1_1_11_0_1_15"}, nil
		case "get_properties":
			return []any{float64(0)}, nil
		default:
			return []any{"ok"}, nil
		}
	}
	session := NewSession(transport, Config{})

	if err := session.StartWithRooms(context.Background(), []string{"15"}); err != nil {
		t.Fatalf("StartWithRooms: %v", err)
	}
	calls := transport.callsFor("set_mode_withroom")
	if len(calls) != 1 || !reflect.DeepEqual(calls[0].Params, []any{0, 1, 0, 1, 15}) {
		t.Fatalf("start params = %+v", calls)
	}

	// The empty name itself is not a valid room reference.
	err := session.StartWithRooms(context.Background(), []string{""})
	var unknown *UnknownRoomError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoomError for empty room, got %v", err)
	}
}

func TestStartWithRoomsRejectsUnknownRoom(t *testing.T) {
	transport := &fakeTransport{}
	transport.handler = roomsHandler(t)
	session := NewSession(transport, Config{})

	err := session.StartWithRooms(context.Background(), []string{"Garage"})
	var unknown *UnknownRoomError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoomError, got %v", err)
	}
	if unknown.Room != "Garage" {
		t.Fatalf("Room = %q", unknown.Room)
	}
	if !reflect.DeepEqual(unknown.IDs, []string{"11", "12", "13"}) {
		t.Fatalf("IDs = %v", unknown.IDs)
	}
	if !reflect.DeepEqual(unknown.Names, []string{"Bathroom", "Bedroom", "Kitchen"}) {
		t.Fatalf("Names = %v", unknown.Names)
	}
	if got := len(transport.callsFor("set_mode_withroom")); got != 0 {
		t.Fatalf("unknown room must not start a run, saw %d calls", got)
	}
}
