package viomi

import (
	"context"
	"fmt"
)

// MapEntry is one saved floor map.
type MapEntry struct {
	ID      int64
	Name    string
	Current bool
}

// Maps fetches the saved map list.
func (s *Session) Maps(ctx context.Context) ([]MapEntry, error) {
	result, err := s.send(ctx, "get_map", nil)
	if err != nil {
		return nil, err
	}
	list, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("get_map: unexpected reply %T", result)
	}
	entries := make([]MapEntry, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("get_map: unexpected entry %T", item)
		}
		id, _ := int64From(m["id"])
		cur, _ := boolFrom(m["cur"])
		entries = append(entries, MapEntry{
			ID:      id,
			Name:    stringFrom(m["name"]),
			Current: cur,
		})
	}
	return entries, nil
}

// SelectMap makes the given map current. The device offers no
// server-side existence check, so the id is validated against the
// current map list before the mutating call goes out.
func (s *Session) SelectMap(ctx context.Context, id int64) error {
	if err := s.requireMap(ctx, id); err != nil {
		return err
	}
	_, err := s.send(ctx, "set_map", []any{id})
	return err
}

// DeleteMap removes a saved map, validating the id first.
func (s *Session) DeleteMap(ctx context.Context, id int64) error {
	if err := s.requireMap(ctx, id); err != nil {
		return err
	}
	_, err := s.send(ctx, "del_map", []any{id})
	return err
}

// RenameMap renames a saved map, validating the id first. This is the
// one verb that takes keyed arguments.
func (s *Session) RenameMap(ctx context.Context, id int64, name string) error {
	if err := s.requireMap(ctx, id); err != nil {
		return err
	}
	_, err := s.send(ctx, "rename_map", map[string]any{"mapID": id, "name": name})
	return err
}

func (s *Session) requireMap(ctx context.Context, id int64) error {
	maps, err := s.Maps(ctx)
	if err != nil {
		return err
	}
	if !mapIDExists(maps, id) {
		return &UnknownMapError{ID: id}
	}
	return nil
}

func mapIDExists(maps []MapEntry, id int64) bool {
	for _, m := range maps {
		if m.ID == id {
			return true
		}
	}
	return false
}
