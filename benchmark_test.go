package shapemap_test

import (
	"reflect"
	"testing"

	shapemap "github.com/shapemap/shapemap"
)

func benchRegistry(tb testing.TB) (*shapemap.Registry, reflect.Type) {
	tb.Helper()
	reg := shapemap.NewRegistry()
	if err := reg.Register(reflect.TypeOf(userDTO{}), userDeclarations()); err != nil {
		tb.Fatalf("register: %v", err)
	}
	return reg, reflect.TypeOf(userDTO{})
}

func BenchmarkCompile_CacheHit(b *testing.B) {
	reg, target := benchRegistry(b)
	if _, err := reg.Compile(target, shapemap.Pick("username", "email")); err != nil {
		b.Fatalf("warmup: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.Compile(target, shapemap.Pick("username", "email")); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMap_Full(b *testing.B) {
	reg, target := benchRegistry(b)
	m, err := reg.Compile(target)
	if err != nil {
		b.Fatalf("compile: %v", err)
	}
	src := userSource()
	mc := shapemap.NewContext()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if out := m.Map(src, mc); out == nil {
			b.Fatal("unexpected nil result")
		}
	}
}

func BenchmarkResolve_DeepPath(b *testing.B) {
	src := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1}}},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if v := shapemap.Resolve(src, "a.b.c.d"); v != 1 {
			b.Fatal("bad resolution")
		}
	}
}
