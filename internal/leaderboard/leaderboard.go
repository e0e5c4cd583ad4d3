package leaderboard

import (
	"encoding/json"
	"sort"
	"sync"

	"rollhouse/internal/cache"
)

const snapshotKey = "leaderboard:net"

type Entry struct {
	Player string `json:"player"`
	Net    int64  `json:"net"`
}

// Board ranks players by lifetime net result across all games. Fed by
// settlement events; winnings count when settled, not when claimed.
type Board struct {
	data map[string]int64
	mu   sync.Mutex
}

func New() *Board {
	return &Board{
		data: make(map[string]int64),
	}
}

func (b *Board) Record(player string, net int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[player] += net
}

func (b *Board) Top(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	var entries []Entry
	for player, net := range b.data {
		entries = append(entries, Entry{Player: player, Net: net})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Net != entries[j].Net {
			return entries[i].Net > entries[j].Net
		}
		return entries[i].Player < entries[j].Player
	})

	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

// Snapshot persists the full standing to the cache, when configured.
func (b *Board) Snapshot() error {
	b.mu.Lock()
	entries := make([]Entry, 0, len(b.data))
	for player, net := range b.data {
		entries = append(entries, Entry{Player: player, Net: net})
	}
	b.mu.Unlock()

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return cache.Set(snapshotKey, string(raw))
}

// Restore reloads the last snapshot on startup. Best effort; a cold
// cache just means the board starts empty.
func (b *Board) Restore() {
	raw, err := cache.Get(snapshotKey)
	if err != nil {
		return
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range entries {
		b.data[e.Player] = e.Net
	}
}
