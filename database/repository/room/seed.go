package roomRepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"happyhotel/models"
)

// ParseRooms reads a "name=capacity,name=capacity" room list.
func ParseRooms(s string) ([]models.Room, error) {
	var rooms []models.Room
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, capStr, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid room entry %q", pair)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(capStr))
		if err != nil || capacity < 0 {
			return nil, fmt.Errorf("invalid capacity for room %s: %q", name, capStr)
		}
		rooms = append(rooms, models.Room{Name: name, Capacity: capacity, Available: true})
	}
	return rooms, nil
}

// Seed upserts every room into the inventory.
func Seed(ctx context.Context, repo RoomRepository, rooms []models.Room) error {
	for _, room := range rooms {
		if err := repo.Upsert(ctx, room); err != nil {
			return err
		}
	}
	return nil
}
