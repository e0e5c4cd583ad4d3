package games

import (
	"sort"

	"rollhouse/internal/engine"
)

var catalogs = make(map[engine.GameID]engine.Catalog)

// Register installs a catalog. Called during wiring, before the server
// accepts traffic; later registrations for the same id replace earlier
// ones.
func Register(cat engine.Catalog) {
	catalogs[cat.ID()] = cat
}

func Get(id engine.GameID) (engine.Catalog, error) {
	cat, ok := catalogs[id]
	if !ok {
		return nil, engine.ErrUnknownGame
	}
	return cat, nil
}

// All returns the registered catalogs ordered by id.
func All() []engine.Catalog {
	out := make([]engine.Catalog, 0, len(catalogs))
	for _, cat := range catalogs {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
