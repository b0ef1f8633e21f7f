// Package settings holds the provider selection and ordering state for the
// settings panel. The state is owned by the panel controller and mutated
// only through its own operations; views project it, they never write it.
package settings

import (
	"iter"
	"sort"
	"strings"

	"github.com/eMattsJ/Availarr/internal/domain"
	"github.com/eMattsJ/Availarr/internal/logger"
)

// State is the single source of truth for provider selection and display
// order. Every mutating operation notifies the render hook exactly once;
// Reorder additionally writes the order through the OrderStore.
type State struct {
	catalog  []domain.Provider
	selected map[string]struct{}
	order    []string
	orders   domain.OrderStore
	onRender func()
}

func New(orders domain.OrderStore) *State {
	s := &State{
		selected: make(map[string]struct{}),
		orders:   orders,
	}
	if orders != nil {
		s.order = orders.Order()
	}
	return s
}

// OnRender registers the hook invoked after every mutation.
func (s *State) OnRender(fn func()) {
	s.onRender = fn
}

func (s *State) notify() {
	if s.onRender != nil {
		s.onRender()
	}
}

// SetCatalog replaces the loaded catalog. The custom order is left alone;
// stale names in it simply stop rendering.
func (s *State) SetCatalog(providers []domain.Provider) {
	s.catalog = providers
	s.notify()
}

// SetSelected replaces the selection wholesale, as when the backend config
// arrives at startup.
func (s *State) SetSelected(names []string) {
	s.selected = make(map[string]struct{}, len(names))
	for _, name := range names {
		s.selected[name] = struct{}{}
	}
	s.notify()
}

// Toggle flips membership of name in the selection.
func (s *State) Toggle(name string) {
	if _, ok := s.selected[name]; ok {
		delete(s.selected, name)
	} else {
		s.selected[name] = struct{}{}
	}
	s.notify()
}

// SelectAll selects every provider currently in the catalog.
func (s *State) SelectAll() {
	s.selected = make(map[string]struct{}, len(s.catalog))
	for _, p := range s.catalog {
		s.selected[p.Name] = struct{}{}
	}
	s.notify()
}

// ClearAll empties the selection.
func (s *State) ClearAll() {
	s.selected = make(map[string]struct{})
	s.notify()
}

// Reorder replaces the custom display order and persists it.
func (s *State) Reorder(newOrder []string) {
	s.order = make([]string, len(newOrder))
	copy(s.order, newOrder)
	if s.orders != nil {
		// A failed write keeps the in-memory order for this session.
		if err := s.orders.SetOrder(newOrder); err != nil {
			logger.LogError("PERSIST_ORDER", "reorder", err)
		}
	}
	s.notify()
}

func (s *State) Catalog() []domain.Provider {
	return s.catalog
}

func (s *State) Order() []string {
	order := make([]string, len(s.order))
	copy(order, s.order)
	return order
}

func (s *State) IsSelected(name string) bool {
	_, ok := s.selected[name]
	return ok
}

func (s *State) SelectedCount() int {
	return len(s.selected)
}

// Selected returns the selected names. Insertion order is not tracked, so
// the snapshot follows the effective display order, with selections that
// are not in the catalog appended alphabetically.
func (s *State) Selected() []string {
	seen := make(map[string]struct{}, len(s.selected))
	names := make([]string, 0, len(s.selected))

	for p := range s.EffectiveList("") {
		if _, ok := s.selected[p.Name]; ok {
			names = append(names, p.Name)
			seen[p.Name] = struct{}{}
		}
	}

	var rest []string
	for name := range s.selected {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}

// EffectiveList returns a restartable sequence of the providers to render:
// valid entries whose name contains filter case-insensitively, sorted by
// the custom order when one exists (names missing from the order sort after
// all named entries) and by descending popularity otherwise. The projection
// is computed fresh on each iteration.
func (s *State) EffectiveList(filter string) iter.Seq[domain.Provider] {
	return func(yield func(domain.Provider) bool) {
		for _, p := range s.project(filter) {
			if !yield(p) {
				return
			}
		}
	}
}

func (s *State) project(filter string) []domain.Provider {
	needle := strings.ToLower(filter)

	out := make([]domain.Provider, 0, len(s.catalog))
	for _, p := range s.catalog {
		if !p.Valid() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}

	byPopularity := func(i, j int) bool {
		return out[i].Popularity > out[j].Popularity
	}

	if len(s.order) == 0 {
		sort.SliceStable(out, byPopularity)
		return out
	}

	// Rank map built once per projection pass; names absent from the
	// custom order rank after every named entry.
	rank := make(map[string]int, len(s.order))
	for i, name := range s.order {
		rank[name] = i
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].Name]
		rj, jKnown := rank[out[j].Name]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return byPopularity(i, j)
		}
	})
	return out
}
