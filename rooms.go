package viomi

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// RoomsOptions scopes and refreshes the room-table derivation.
// MapID/MapName, when set, are validated against the device's map
// list first. Refresh discards the session cache.
type RoomsOptions struct {
	MapID   int64
	MapName string
	Refresh bool
}

// Rooms returns the id→name room table. There is no first-class verb
// for this: the table is reconstructed from the scheduled-cleanup
// listing, where two deliberately inactive 00:00 schedules encode
// every room id/name pair. The result is cached for the session;
// pass Refresh to rebuild.
func (s *Session) Rooms(ctx context.Context, opts RoomsOptions) (map[string]string, error) {
	if len(s.rooms) > 0 && !opts.Refresh {
		return s.rooms, nil
	}

	if opts.MapName != "" {
		maps, err := s.Maps(ctx)
		if err != nil {
			return nil, err
		}
		found := false
		for _, m := range maps {
			if m.Name == opts.MapName {
				found = true
				break
			}
		}
		if !found {
			names := make([]string, 0, len(maps))
			for _, m := range maps {
				names = append(names, m.Name)
			}
			return nil, fmt.Errorf("bad map name %q, should be in %s", opts.MapName, strings.Join(names, ", "))
		}
	} else if opts.MapID > 0 {
		maps, err := s.Maps(ctx)
		if err != nil {
			return nil, err
		}
		if !mapIDExists(maps, opts.MapID) {
			ids := make([]string, 0, len(maps))
			for _, m := range maps {
				ids = append(ids, fmt.Sprintf("%d", m.ID))
			}
			return nil, fmt.Errorf("bad map id %d, should be in %s", opts.MapID, strings.Join(ids, ", "))
		}
	}

	result, err := s.send(ctx, "get_ordertime", nil)
	if err != nil {
		return nil, err
	}
	schedules, ok := stringListFrom(result)
	if !ok {
		return nil, fmt.Errorf("get_ordertime: unexpected reply %T", result)
	}

	rooms, err := roomsFromSchedules(schedules)
	if err != nil {
		return nil, err
	}
	s.rooms = rooms
	return rooms, nil
}

// roomsFromSchedules extracts room pairs from schedule strings. Each
// schedule is underscore-delimited:
//
//	id_enabled_repeatdays_hour_minute_?_?_?_?_?_?_nrooms_roomid_roomname_roomid_roomname_...
//
// Only schedules set for 00:00 and disabled qualify; their tail
// fields pair up greedily as (id, name).
func roomsFromSchedules(schedules []string) (map[string]string, error) {
	rooms := make(map[string]string)
	found := false
	for _, raw := range schedules {
		fields := strings.Split(raw, "_")
		if len(fields) < 5 {
			continue
		}
		if fields[1] != "0" || fields[3] != "0" || fields[4] != "0" {
			continue
		}
		found = true
		if len(fields) <= 12 {
			continue
		}
		tail := fields[12:]
		for i := 0; i < len(tail); i += 2 {
			id := tail[i]
			name := ""
			if i+1 < len(tail) {
				name = tail[i+1]
			}
			rooms[id] = name
		}
	}
	if !found {
		return nil, &ScheduleNotFoundError{}
	}
	return rooms, nil
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
