package shapemap

import (
	"sort"
	"strings"
)

// SignatureDefault is the cache signature of an option-free compile.
const SignatureDefault = "default"

// Option selects the runtime field subset for one compile. Exactly one mode is
// honored per call; when several are set the precedence is
// group > pick > omit > none.
type Option struct {
	GroupName  string
	PickFields []string
	OmitFields []string
}

// Pick returns an Option keeping only the named fields.
func Pick(fields ...string) Option { return Option{PickFields: fields} }

// Omit returns an Option dropping the named fields.
func Omit(fields ...string) Option { return Option{OmitFields: fields} }

// Group returns an Option keeping only fields tagged with the named group.
func Group(name string) Option { return Option{GroupName: name} }

// Signature derives the stable cache key for the option. Structurally equal
// options collide: field lists are sorted before joining, so
// Pick("a","b") and Pick("b","a") share one compiled mapper.
func (o Option) Signature() string {
	switch {
	case o.GroupName != "":
		return "group:" + o.GroupName
	case len(o.PickFields) > 0:
		return "pick:" + joinSorted(o.PickFields)
	case len(o.OmitFields) > 0:
		return "omit:" + joinSorted(o.OmitFields)
	default:
		return SignatureDefault
	}
}

func joinSorted(fields []string) string {
	fs := make([]string, len(fields))
	copy(fs, fields)
	sort.Strings(fs)
	return strings.Join(fs, ",")
}

// mergeOpts collapses a variadic option list the same way parse options do in
// option-taking entry points: the last option wins, absent means none.
func mergeOpts(opts []Option) Option {
	if len(opts) == 0 {
		return Option{}
	}
	return opts[len(opts)-1]
}
