package shapemap

import (
	"reflect"
	"strings"
)

// ResolveStructKey determines the mapping key name for a struct field.
// Priority: `shapemap:"name=..."` tag, then `json` tag name, then the Go
// field name. A "-" json tag disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if mt := sf.Tag.Get("shapemap"); mt != "" {
		parts := strings.Split(mt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}
