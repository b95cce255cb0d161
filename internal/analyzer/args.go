package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"blockmeta/internal/metadata"
)

// placeholderRe matches {identifier} using Python's Unicode notion of a word character.
var placeholderRe = regexp.MustCompile(`\{([\p{L}\p{N}_]+)\}`)

// TypeRule assigns Type to any argument whose name contains Contains, ignoring case.
type TypeRule struct {
	Contains string
	Type     metadata.ArgType
}

// DefaultTypeRules is the naming convention used when no configured rule matches first.
var DefaultTypeRules = []TypeRule{
	{Contains: "PORT", Type: metadata.ArgInt},
}

// InferArgType returns the type of the first matching rule, or str.
func InferArgType(name string, rules []TypeRule) metadata.ArgType {
	upper := strings.ToUpper(name)
	for _, r := range rules {
		if strings.Contains(upper, strings.ToUpper(r.Contains)) {
			return r.Type
		}
	}
	return metadata.ArgStr
}

// ExtractArgs returns one required ArgSpec per distinct {identifier} placeholder,
// sorted by name.
func (a *Analyzer) ExtractArgs(code []byte) []metadata.ArgSpec {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllSubmatch(code, -1) {
		name := string(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	args := make([]metadata.ArgSpec, 0, len(names))
	for _, name := range names {
		args = append(args, metadata.ArgSpec{
			Name:     name,
			Type:     InferArgType(name, a.rules),
			Required: true,
			Default:  nil,
		})
	}
	return args
}

// HasPlaceholder reports whether code contains any {identifier} token.
func HasPlaceholder(code []byte) bool {
	return placeholderRe.Match(code)
}
