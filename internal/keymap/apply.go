package keymap

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Iron-Ham/skim/internal/errors"
)

// Apply rebinds commands from configuration, keyed by mode then command:
//
//	keys:
//	  normal:
//	    scroll_down: [j, down, ctrl+e]
//
// The listed keys replace every existing binding of the command, and are
// taken away from any other command in the same mode. Nothing is changed
// unless every entry is valid; the returned error joins one
// *errors.ValidationError per problem.
func (km *Keymap) Apply(overrides map[string]map[string][]string) error {
	type rebind struct {
		mode Mode
		cmd  Command
		keys []Key
	}

	var (
		plan []rebind
		errs []error
	)

	for _, modeName := range sortedKeys(overrides) {
		mode := Mode(modeName)
		if _, ok := km.Modes[mode]; !ok {
			errs = append(errs, errors.NewValidationError("unknown key mode").
				WithField("keys."+modeName))
			continue
		}

		cmdMap := overrides[modeName]
		for _, cmdName := range sortedKeys(cmdMap) {
			field := fmt.Sprintf("keys.%s.%s", modeName, cmdName)
			cmd := Command(cmdName)
			switch {
			case cmd == CmdInsertChar:
				errs = append(errs, errors.NewValidationError("command cannot be rebound").WithField(field))
				continue
			case !validIn(cmd, mode):
				errs = append(errs, errors.NewValidationError("unknown command for mode").WithField(field))
				continue
			}

			var keys []Key
			for _, spec := range cmdMap[cmdName] {
				k, err := ParseKeySpec(spec)
				if err != nil {
					errs = append(errs, errors.NewValidationError("invalid key").
						WithField(field).WithValue(spec).WithCause(err))
					continue
				}
				if !slices.Contains(keys, k) {
					keys = append(keys, k)
				}
			}
			plan = append(plan, rebind{mode: mode, cmd: cmd, keys: keys})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, r := range plan {
		km.Modes[r.mode].rebind(r.cmd, r.keys)
	}
	return nil
}

func (mb *ModeBindings) rebind(cmd Command, keys []Key) {
	kept := make([]KeyBinding, 0, len(mb.Bindings)+len(keys))
	for _, k := range keys {
		kept = append(kept, bind(k, cmd))
	}
	for _, b := range mb.Bindings {
		if b.Command == cmd && !b.catchAll() {
			continue
		}
		if slices.Contains(keys, b.Key) {
			continue
		}
		kept = append(kept, b)
	}
	mb.Bindings = kept
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
