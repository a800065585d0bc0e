package interp

import (
	"fmt"

	"github.com/garyluck/pilot/expr"
	"github.com/google/btree"
	"github.com/rs/zerolog"
)

const varsDegree = 8

//
// Two separate stores, keyed by the full variable name including its
// sigil and kept in name order.  Names are validated on every store,
// so nothing malformed can get in
//

type variable[T any] struct {
	name string
	val  T
}

func byName[T any](a, b variable[T]) bool {

	return a.name < b.name
}

type Vars struct {
	numeric *btree.BTreeG[variable[float32]]
	strings *btree.BTreeG[variable[string]]
	log     zerolog.Logger
}

func NewVars() *Vars {

	v := &Vars{log: zerolog.Nop()}
	v.Clear()

	return v
}

//
// Drop every variable
//

func (v *Vars) Clear() {

	v.numeric = btree.NewG[variable[float32]](varsDegree, byName[float32])
	v.strings = btree.NewG[variable[string]](varsDegree, byName[string])
}

func (v *Vars) Numeric(name string) (float32, bool) {

	item, ok := v.numeric.Get(variable[float32]{name: name})

	return item.val, ok
}

func (v *Vars) String(name string) (string, bool) {

	item, ok := v.strings.Get(variable[string]{name: name})

	return item.val, ok
}

func (v *Vars) SetNumeric(name string, val float32) error {

	if !ValidNumericVar(name) {
		return itemError(EINVALIDVARFORMAT, name)
	}

	v.log.Debug().Str("var", name).Float32("value", val).Msg("store")

	v.numeric.ReplaceOrInsert(variable[float32]{name: name, val: val})

	return nil
}

func (v *Vars) SetString(name string, val string) error {

	if !ValidStringVar(name) {
		return itemError(EINVALIDVARFORMAT, name)
	}

	v.log.Debug().Str("var", name).Str("value", val).Msg("store")

	v.strings.ReplaceOrInsert(variable[string]{name: name, val: val})

	return nil
}

//
// Lookup renders a variable of either kind as text, numeric store
// first
//

func (v *Vars) Lookup(name string) (string, bool) {

	if f, ok := v.Numeric(name); ok {
		return expr.FormatNumber(f), true
	}

	if s, ok := v.String(name); ok {
		return s, true
	}

	return "", false
}

//
// Collect the names held by a store.  The tree must not be changed
// while Ascend is walking it
//

func names[T any](t *btree.BTreeG[variable[T]]) []string {

	ret := make([]string, 0, t.Len())

	t.Ascend(func(item variable[T]) bool {
		ret = append(ret, item.name)
		return true
	})

	return ret
}

//
// ERASTR: every string variable becomes empty
//

func (v *Vars) EraseStrings() {

	for _, name := range names(v.strings) {
		v.strings.ReplaceOrInsert(variable[string]{name: name})
	}
}

//
// RESET: every numeric variable becomes zero
//

func (v *Vars) ResetNumerics() {

	for _, name := range names(v.numeric) {
		v.numeric.ReplaceOrInsert(variable[float32]{name: name})
	}
}

//
// Dump lists every variable as "NAME : value", numeric ones first,
// each group in name order
//

func (v *Vars) Dump() []string {

	var ret []string

	v.numeric.Ascend(func(item variable[float32]) bool {
		ret = append(ret, fmt.Sprintf("%s : %s", item.name, expr.FormatNumber(item.val)))
		return true
	})

	v.strings.Ascend(func(item variable[string]) bool {
		ret = append(ret, fmt.Sprintf("%s : %s", item.name, item.val))
		return true
	})

	return ret
}
