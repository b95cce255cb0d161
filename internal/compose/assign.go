package compose

import (
	"fmt"
	"math/big"

	"blockmeta/internal/literal"
	"blockmeta/internal/metadata"
)

// Assigners coerce a fresh (typed) or prior (decoded literal) value into a record
// field, rejecting values of the wrong shape.

func setString(field func(*metadata.Record) *string) func(*metadata.Record, any) error {
	return func(rec *metadata.Record, v any) error {
		s, ok := v.(string)
		if !ok {
			return typeError(v, "str")
		}
		*field(rec) = s
		return nil
	}
}

func setBool(field func(*metadata.Record) *bool) func(*metadata.Record, any) error {
	return func(rec *metadata.Record, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeError(v, "bool")
		}
		*field(rec) = b
		return nil
	}
}

func setStrings(field func(*metadata.Record) *[]string) func(*metadata.Record, any) error {
	return func(rec *metadata.Record, v any) error {
		switch x := v.(type) {
		case []string:
			*field(rec) = append([]string{}, x...)
			return nil
		case []any:
			out := make([]string, 0, len(x))
			for i, item := range x {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("item %d is %s, want str", i, typeName(item))
				}
				out = append(out, s)
			}
			*field(rec) = out
			return nil
		}
		return typeError(v, "list of str")
	}
}

func setBlockType(rec *metadata.Record, v any) error {
	s, ok := v.(string)
	if !ok {
		return typeError(v, "str")
	}
	bt := metadata.BlockType(s)
	if !bt.Valid() {
		return fmt.Errorf("unknown block type %q", s)
	}
	rec.BlockType = bt
	return nil
}

func setArgs(rec *metadata.Record, v any) error {
	switch x := v.(type) {
	case []metadata.ArgSpec:
		rec.Args = append([]metadata.ArgSpec{}, x...)
		return nil
	case []any:
		args := make([]metadata.ArgSpec, 0, len(x))
		for i, item := range x {
			arg, err := argFromDict(item)
			if err != nil {
				return fmt.Errorf("args[%d]: %w", i, err)
			}
			args = append(args, arg)
		}
		rec.Args = args
		return nil
	}
	return typeError(v, "list of dict")
}

// argFromDict reads one curated argument. Only name is mandatory; type defaults to str,
// required to true and default to None.
func argFromDict(v any) (metadata.ArgSpec, error) {
	d, ok := v.(literal.Dict)
	if !ok {
		return metadata.ArgSpec{}, typeError(v, "dict")
	}
	arg := metadata.ArgSpec{Type: metadata.ArgStr, Required: true}

	name, ok := d.Get("name")
	if !ok {
		return arg, fmt.Errorf("missing name")
	}
	if arg.Name, ok = name.(string); !ok {
		return arg, fmt.Errorf("name: %w", typeError(name, "str"))
	}
	if t, ok := d.Get("type"); ok {
		s, isStr := t.(string)
		if !isStr {
			return arg, fmt.Errorf("type: %w", typeError(t, "str"))
		}
		arg.Type = metadata.ArgType(s)
	}
	if r, ok := d.Get("required"); ok {
		b, isBool := r.(bool)
		if !isBool {
			return arg, fmt.Errorf("required: %w", typeError(r, "bool"))
		}
		arg.Required = b
	}
	arg.Default, _ = d.Get("default")
	return arg, nil
}

func typeError(v any, want string) error {
	return fmt.Errorf("value is %s, want %s", typeName(v), want)
}

// typeName names decoded values the way the block author wrote them.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "None"
	case string:
		return "str"
	case bool:
		return "bool"
	case int64, *big.Int:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case literal.Dict:
		return "dict"
	}
	return fmt.Sprintf("%T", v)
}
