package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/inputkit/editor"
)

// Apply brings r in line with next. Inputs missing from next are despawned,
// new ones are spawned, and inputs whose definition changed since prev are
// respawned keeping their current text. Unchanged inputs keep their state.
// prev may be nil.
func Apply(r *editor.Registry, prev, next *File) error {
	old := map[uint64]InputConfig{}
	if prev != nil {
		for _, in := range prev.Inputs {
			old[in.ID] = in
		}
	}
	want := map[uint64]bool{}
	for _, in := range next.Inputs {
		want[in.ID] = true
	}
	for id := range old {
		if !want[id] {
			r.Despawn(editor.EntityID(id))
		}
	}

	var errs []error
	for _, def := range next.Inputs {
		id := editor.EntityID(def.ID)
		cfg, err := def.Editor()
		if err != nil {
			errs = append(errs, fmt.Errorf("input %d: %w", def.ID, err))
			continue
		}
		if cur, ok := r.Input(id); ok {
			if o, seen := old[def.ID]; seen && reflect.DeepEqual(o, def) {
				continue
			}
			cfg.Text = cur.Text()
			focused, hasFocus := r.Focused()
			r.Despawn(id)
			if _, err := r.Spawn(id, cfg); err != nil {
				errs = append(errs, err)
				continue
			}
			if hasFocus && focused == id {
				_ = r.Focus(id)
			}
			log.Debug().Uint64("entity", def.ID).Str("name", def.Name).Msg("input redefined")
			continue
		}
		if _, err := r.Spawn(id, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
