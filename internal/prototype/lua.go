package prototype

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/Shopify/go-lua"
)

// LoadLuaFile evaluates a Lua data-stage file and builds a Snapshot from the
// resulting prototype table. The file runs against a pre-registered global
// `data` with an empty `raw` table and an `extend` method, so the usual
// authoring styles both work:
//
//	data:extend({ { type = "recipe", name = "iron-gear-wheel", ... } })
//	data.raw["item"]["iron-plate"].stack_size = 200
//
// Lua table iteration order is unspecified, so the resulting snapshot sorts
// categories and record names for stable output.
func LoadLuaFile(path string) (*Snapshot, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	registerDataGlobal(l)

	if err := lua.LoadFile(l, path, ""); err != nil {
		return nil, fmt.Errorf("prototype: load lua %s: %w", path, err)
	}
	if err := l.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("prototype: run lua %s: %w", path, err)
	}

	l.Global("data")
	if l.TypeOf(-1) != lua.TypeTable {
		return nil, fmt.Errorf("prototype: lua script destroyed the data global")
	}
	l.Field(-1, "raw")
	if l.TypeOf(-1) != lua.TypeTable {
		return nil, fmt.Errorf("prototype: data.raw is not a table")
	}
	snap, err := snapshotFromRaw(l, -1)
	if err != nil {
		return nil, err
	}
	l.Pop(2)
	return snap, nil
}

func registerDataGlobal(l *lua.State) {
	l.NewTable()
	l.NewTable()
	l.SetField(-2, "raw")
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "extend", Function: dataExtend},
	}, 0)
	l.SetGlobal("data")
}

// dataExtend implements data:extend(prototypes). Each prototype must carry
// type and name; it is filed under data.raw[type][name] so later script
// statements can read it back.
func dataExtend(l *lua.State) int {
	lua.CheckType(l, 1, lua.TypeTable)
	lua.CheckType(l, 2, lua.TypeTable)
	l.Field(1, "raw") // stack slot 3
	lua.CheckType(l, 3, lua.TypeTable)

	l.PushNil()
	for l.Next(2) { // key at 4, prototype at 5
		if l.TypeOf(5) != lua.TypeTable {
			lua.Errorf(l, "data:extend entries must be tables")
		}
		l.Field(5, "type")
		typ, ok := l.ToString(6)
		l.Pop(1)
		if !ok || typ == "" {
			lua.Errorf(l, "data:extend prototype missing type")
		}
		l.Field(5, "name")
		name, ok := l.ToString(6)
		l.Pop(1)
		if !ok || name == "" {
			lua.Errorf(l, "data:extend prototype missing name")
		}

		l.Field(3, typ) // category table at 6
		if l.TypeOf(6) == lua.TypeNil {
			l.Pop(1)
			l.NewTable()
			l.PushValue(6)
			l.SetField(3, typ)
		}
		l.PushValue(5)
		l.SetField(6, name)
		l.Pop(2) // category, prototype; key stays for Next
	}

	l.Pop(1) // raw
	return 0
}

func snapshotFromRaw(l *lua.State, index int) (*Snapshot, error) {
	value := luaValue(l, index)
	if value == nil {
		return NewSnapshot(), nil
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("prototype: data.raw is not a prototype table")
	}

	snap := NewSnapshot()
	categories := make([]string, 0, len(raw))
	for category := range raw {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		records, ok := raw[category].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("prototype: data.raw[%q] is not a prototype table", category)
		}
		names := make([]string, 0, len(records))
		for name := range records {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			body, err := json.Marshal(records[name])
			if err != nil {
				return nil, fmt.Errorf("prototype: convert %s/%s: %w", category, name, err)
			}
			rec := new(Record)
			if err := json.Unmarshal(body, rec); err != nil {
				return nil, fmt.Errorf("prototype: decode %s/%s: %w", category, name, err)
			}
			if rec.Name == "" {
				rec.Name = name
			}
			snap.Add(category, name, rec)
		}
	}
	return snap, nil
}

// luaValue converts the value at index into a JSON-shaped Go value. Tables
// with consecutive integer keys from 1 become slices, other tables become
// maps, and empty tables become nil so a bare {} never masquerades as a
// marker field downstream.
func luaValue(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeNil:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeTable:
		return luaTable(l, index)
	default:
		return nil
	}
}

func luaTable(l *lua.State, index int) any {
	index = l.AbsIndex(index)
	var list []any
	object := make(map[string]any)
	isList := true
	next := 1

	l.PushNil()
	for l.Next(index) {
		value := luaValue(l, -1)
		// ToString would convert a numeric key in place and derail Next, so
		// inspect the key's type before reading it.
		switch l.TypeOf(-2) {
		case lua.TypeNumber:
			k, _ := l.ToNumber(-2)
			if isList && k == float64(next) {
				list = append(list, value)
				next++
			} else {
				isList = false
				object[strconv.FormatFloat(k, 'g', -1, 64)] = value
			}
		case lua.TypeString:
			isList = false
			key, _ := l.ToString(-2)
			object[key] = value
		default:
			isList = false
		}
		l.Pop(1)
	}

	if isList {
		if len(list) == 0 {
			return nil
		}
		return list
	}
	for i, value := range list {
		object[strconv.Itoa(i+1)] = value
	}
	if len(object) == 0 {
		return nil
	}
	return object
}
