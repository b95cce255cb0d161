// Package compose merges freshly analyzed facts with a block's prior METADATA record.
//
// Every field is governed by one entry of the policy table below, so the merge
// behavior of a field can be read (and tested) in one place.
package compose

import (
	"fmt"
	"time"

	"blockmeta/internal/analyzer"
	"blockmeta/internal/literal"
	"blockmeta/internal/metadata"
)

// Policy says how a field combines the prior value with the derived one.
type Policy int

const (
	// PreserveIfPresent keeps a well-typed prior value and derives otherwise.
	PreserveIfPresent Policy = iota
	// AlwaysRecompute ignores the prior value.
	AlwaysRecompute
	// PreserveIfNonEmpty is PreserveIfPresent where an empty list counts as absent.
	PreserveIfNonEmpty
	// Bump advances the prior value (the version counter).
	Bump
)

func (p Policy) String() string {
	switch p {
	case PreserveIfPresent:
		return "preserve-if-present"
	case AlwaysRecompute:
		return "always-recompute"
	case PreserveIfNonEmpty:
		return "preserve-if-non-empty"
	case Bump:
		return "bump"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Warning records a prior value that could not be used.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Reason
}

// Options configures a Composer.
type Options struct {
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Platforms overrides the platform list per language segment.
	Platforms map[string][]string
}

// Composer builds records. It holds no per-file state.
type Composer struct {
	now       func() time.Time
	platforms map[string][]string
}

// New creates a Composer.
func New(opts Options) *Composer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Composer{now: now, platforms: opts.Platforms}
}

// inputs are the freshly derived values available to the policy table.
type inputs struct {
	path     PathInfo
	facts    *analyzer.Facts
	today    string
	platform []string
}

type fieldRule struct {
	key    string
	policy Policy
	fresh  func(in *inputs) any
	assign func(rec *metadata.Record, v any) error
}

// rules lists every record field once, in declaration order.
var rules = []fieldRule{
	{"name", PreserveIfPresent, func(in *inputs) any { return in.path.Name }, setString(func(r *metadata.Record) *string { return &r.Name })},
	{"title", PreserveIfPresent, constant(""), setString(func(r *metadata.Record) *string { return &r.Title })},
	{"description", PreserveIfPresent, constant(""), setString(func(r *metadata.Record) *string { return &r.Description })},
	{"platform", PreserveIfPresent, func(in *inputs) any { return in.platform }, setStrings(func(r *metadata.Record) *[]string { return &r.Platform })},
	{"language", AlwaysRecompute, func(in *inputs) any { return in.path.Language }, setString(func(r *metadata.Record) *string { return &r.Language })},
	{"category", AlwaysRecompute, func(in *inputs) any { return in.path.Category }, setString(func(r *metadata.Record) *string { return &r.Category })},
	{"tags", PreserveIfPresent, func(*inputs) any { return []string{} }, setStrings(func(r *metadata.Record) *[]string { return &r.Tags })},
	{"chainable", PreserveIfPresent, constant(true), setBool(func(r *metadata.Record) *bool { return &r.Chainable })},
	{"output_type", PreserveIfPresent, func(in *inputs) any { return outputs[in.facts.BlockType][0] }, setString(func(r *metadata.Record) *string { return &r.OutputType })},
	{"import", AlwaysRecompute, func(in *inputs) any { return in.facts.Imports }, setStrings(func(r *metadata.Record) *[]string { return &r.Imports })},
	{"requires_addons", PreserveIfPresent, func(*inputs) any { return []string{} }, setStrings(func(r *metadata.Record) *[]string { return &r.RequiresAddons })},
	{"dependencies", AlwaysRecompute, func(in *inputs) any { return in.facts.Dependencies }, setStrings(func(r *metadata.Record) *[]string { return &r.Dependencies })},
	{"args", PreserveIfNonEmpty, func(in *inputs) any { return in.facts.Args }, setArgs},
	{"block_type", PreserveIfPresent, func(in *inputs) any { return string(in.facts.BlockType) }, setBlockType},
	{"entrypoint", PreserveIfPresent, func(in *inputs) any { return in.facts.Entrypoint }, setString(func(r *metadata.Record) *string { return &r.Entrypoint })},
	{"returns", PreserveIfPresent, func(in *inputs) any { return outputs[in.facts.BlockType][1] }, setString(func(r *metadata.Record) *string { return &r.Returns })},
	{"author", PreserveIfPresent, func(in *inputs) any { return in.path.Author }, setString(func(r *metadata.Record) *string { return &r.Author })},
	{"version", Bump, constant(metadata.InitialVersion), setString(func(r *metadata.Record) *string { return &r.Version })},
	{"created", PreserveIfPresent, func(in *inputs) any { return in.today }, setString(func(r *metadata.Record) *string { return &r.Created })},
	{"updated", AlwaysRecompute, func(in *inputs) any { return in.today }, setString(func(r *metadata.Record) *string { return &r.Updated })},
}

// FieldPolicy returns the policy of a record key.
func FieldPolicy(key string) (Policy, bool) {
	for _, r := range rules {
		if r.key == key {
			return r.policy, true
		}
	}
	return 0, false
}

// Compose builds the record for the block named name. A nil prior means the file had
// no usable declaration. Prior values that cannot be used are reported as warnings
// and replaced by derived ones; Compose itself never fails.
func (c *Composer) Compose(name string, facts *analyzer.Facts, prior literal.Dict) (*metadata.Record, []Warning) {
	path := Derive(name)
	in := &inputs{
		path:     path,
		facts:    facts,
		today:    c.now().Format(metadata.DateLayout),
		platform: c.platformFor(path.Language),
	}

	rec := &metadata.Record{}
	var warnings []Warning
	for _, rule := range rules {
		value, warn := rule.resolve(in, prior)
		if warn != "" {
			warnings = append(warnings, Warning{Field: rule.key, Reason: warn})
		}
		if err := rule.assign(rec, value); err != nil {
			// Derived values always have the field's type.
			panic(fmt.Sprintf("compose: derived %s: %v", rule.key, err))
		}
	}
	return rec, warnings
}

// resolve picks the value for one field and explains any rejected prior value.
func (r fieldRule) resolve(in *inputs, prior literal.Dict) (any, string) {
	fresh := r.fresh(in)
	priorValue, present := prior.Get(r.key)

	switch r.policy {
	case AlwaysRecompute:
		return fresh, ""
	case Bump:
		if !present {
			return fresh, ""
		}
		bumped, err := BumpVersion(priorValue)
		if err != nil {
			return bumped, err.Error() + "; reset"
		}
		return bumped, ""
	case PreserveIfNonEmpty:
		if list, ok := priorValue.([]any); present && ok && len(list) == 0 {
			return fresh, ""
		}
	}

	if !present {
		return fresh, ""
	}
	if err := r.assign(&metadata.Record{}, priorValue); err != nil {
		return fresh, err.Error() + "; re-derived"
	}
	return priorValue, ""
}

func (c *Composer) platformFor(language string) []string {
	p, ok := c.platforms[language]
	if !ok {
		p, ok = defaultPlatforms[language]
	}
	if !ok {
		p = fallbackPlatforms
	}
	return append([]string(nil), p...)
}

func constant(v any) func(*inputs) any {
	return func(*inputs) any { return v }
}
