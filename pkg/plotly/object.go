package plotly

import (
	"sort"

	"github.com/mpld3/matplotlylib/pkg/errors"
)

// Object is one node of a plotly document. Values are JSON-shaped: numbers,
// strings, bools, slices, nested Objects, or ObjectLists.
type Object map[string]any

// ObjectList is an ordered list of objects of one kind, such as the
// annotations of a layout or the traces of a figure.
type ObjectList []Object

// Clean recursively removes keys whose value is nil. Empty nested objects
// are kept; only explicit nils are dropped.
func (o Object) Clean() {
	for key, val := range o {
		if val == nil {
			delete(o, key)
			continue
		}
		cleanValue(val)
	}
}

func cleanValue(val any) {
	switch v := val.(type) {
	case Object:
		v.Clean()
	case map[string]any:
		Object(v).Clean()
	case ObjectList:
		for _, item := range v {
			item.Clean()
		}
	case []Object:
		for _, item := range v {
			item.Clean()
		}
	}
}

// Strip removes style information from the object, treating it as kind k.
// Nested objects always survive (possibly emptied); leaf keys survive only
// when the kind's safe vocabulary lists them.
func (o Object) Strip(k Kind) {
	for key, val := range o {
		if ck, ok := childKind(k, key); ok {
			if child, ok := asObject(val); ok {
				child.Strip(ck)
				continue
			}
		}
		if ck, ok := listChildKind(k, key); ok {
			if items, ok := asObjectList(val); ok {
				for _, item := range items {
					item.Strip(ck)
				}
				continue
			}
		}
		if !safeKey(k, key) {
			delete(o, key)
		}
	}
}

// Validate recursively checks the object's keys against the vocabulary of
// kind k. Keys holding nested objects are checked by recursing with the
// child kind.
func (o Object) Validate(k Kind) error {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := o[key]
		if ck, ok := childKind(k, key); ok {
			if child, ok := asObject(val); ok {
				if err := child.Validate(ck); err != nil {
					return err
				}
				continue
			}
		}
		if ck, ok := listChildKind(k, key); ok {
			if items, ok := asObjectList(val); ok {
				for _, item := range items {
					if err := item.Validate(ck); err != nil {
						return err
					}
				}
				continue
			}
		}
		if !validKey(k, key) {
			return errors.New(codeFor(k), "invalid key %q for %s object", key, k)
		}
	}
	return nil
}

// Repair fixes known key and value spellings in place, treating the object
// as kind k, and cleans the result. Primary-axis references arrive as
// "xaxis1"/"x1" from exporters that number every axis; plotly wants the
// bare form for the first pair.
func (o Object) Repair(k Kind) {
	s := schemas[k]

	for key := range o {
		if canonical, ok := s.repairKeys[key]; ok {
			o[canonical] = o[key]
			delete(o, key)
		}
	}
	for key, pair := range s.repairVals {
		val, ok := o[key].(string)
		if ok && pair[0] == val {
			o[key] = pair[1]
		}
	}

	for key, val := range o {
		if ck, ok := childKind(k, key); ok {
			if child, ok := asObject(val); ok {
				child.Repair(ck)
			}
			continue
		}
		if ck, ok := listChildKind(k, key); ok {
			if items, ok := asObjectList(val); ok {
				for _, item := range items {
					item.Repair(ck)
				}
			}
		}
	}
	o.Clean()
}

func asObject(val any) (Object, bool) {
	switch v := val.(type) {
	case Object:
		return v, true
	case map[string]any:
		return Object(v), true
	}
	return nil, false
}

func asObjectList(val any) ([]Object, bool) {
	switch v := val.(type) {
	case ObjectList:
		return v, true
	case []Object:
		return v, true
	case []any:
		items := make([]Object, 0, len(v))
		for _, item := range v {
			obj, ok := asObject(item)
			if !ok {
				return nil, false
			}
			items = append(items, obj)
		}
		return items, true
	}
	return nil, false
}

func codeFor(k Kind) errors.Code {
	switch k {
	case KindData, KindMarker, KindLine:
		return errors.ErrCodeInvalidTrace
	default:
		return errors.ErrCodeInvalidLayout
	}
}
