package viomi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented marks protocol areas that are understood but not
// yet driven (scheduled-cleanup mutation). Callers get an explicit
// failure instead of a silent no-op.
var ErrNotImplemented = errors.New("viomi: not implemented")

// UnknownRoomError reports a room id or name that could not be
// resolved against the device's room table.
type UnknownRoomError struct {
	Room  string
	IDs   []string
	Names []string
}

func (e *UnknownRoomError) Error() string {
	return fmt.Sprintf("room %q is unknown, it should be in '%s' or in '%s'",
		e.Room, strings.Join(e.IDs, ", "), strings.Join(e.Names, ", "))
}

// UnknownMapError reports a map id absent from the device's map list.
type UnknownMapError struct {
	ID int64
}

func (e *UnknownMapError) Error() string {
	return fmt.Sprintf("map id %d doesn't exist", e.ID)
}

// ScheduleNotFoundError means the room-table workaround found no
// qualifying schedule. The message is the contract: it tells the user
// exactly which two fake schedules to create in the vendor app.
type ScheduleNotFoundError struct{}

func (e *ScheduleNotFoundError) Error() string {
	return "fake schedule not found; please create a scheduled cleanup with the following properties:\n" +
		"* Hour: 00\n" +
		"* Minute: 00\n" +
		"* Select all (minus one) the rooms one by one\n" +
		"* Set as inactive scheduled cleanup\n" +
		"then create a scheduled cleanup with the room missed at the previous step with the following properties:\n" +
		"* Hour: 00\n" +
		"* Minute: 00\n" +
		"* Select only the missed room\n" +
		"* Set as inactive scheduled cleanup"
}
