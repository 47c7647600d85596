package shapemap_test

import (
	"reflect"
	"testing"

	shapemap "github.com/shapemap/shapemap"
)

type userDTO struct {
	Username string
	Avatar   string
	IsAdult  bool
	Email    string
}

func userDeclarations() []shapemap.Declaration {
	return []shapemap.Declaration{
		{Key: "username", Path: "username", Groups: []string{"minimal"}},
		{Key: "avatar", Path: "profile.avatarUrl", Groups: []string{"minimal"}},
		{Key: "isAdult", Transform: func(src any, mc *shapemap.Context) any {
			age, _ := shapemap.Resolve(src, "age").(float64)
			return age >= 18
		}},
		{Key: "email", Path: "email", Groups: []string{"full"}},
	}
}

func userSource() map[string]any {
	return map[string]any{
		"username": "john_doe",
		"email":    "john@x.com",
		"age":      float64(25),
		"profile":  map[string]any{"avatarUrl": "u"},
	}
}

func newUserRegistry(t *testing.T) *shapemap.Registry {
	t.Helper()
	reg := shapemap.NewRegistry()
	if err := reg.Register(reflect.TypeOf(userDTO{}), userDeclarations()); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func compileUser(t *testing.T, reg *shapemap.Registry, opts ...shapemap.Option) *shapemap.Mapper {
	t.Helper()
	m, err := reg.Compile(reflect.TypeOf(userDTO{}), opts...)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return m
}

func TestMapper_FullProjection(t *testing.T) {
	reg := newUserRegistry(t)
	out := compileUser(t, reg).Map(userSource(), nil)
	want := map[string]any{
		"username": "john_doe",
		"avatar":   "u",
		"isAdult":  true,
		"email":    "john@x.com",
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("mapped = %#v, want %#v", out, want)
	}
}

func TestMapper_GroupProjection(t *testing.T) {
	reg := newUserRegistry(t)
	out := compileUser(t, reg, shapemap.Group("minimal")).Map(userSource(), nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d: %#v", len(out), out)
	}
	if out["username"] != "john_doe" || out["avatar"] != "u" {
		t.Fatalf("unexpected minimal projection: %#v", out)
	}
	// non-matching declarations must be absent entirely, not nil-valued
	if _, present := out["isAdult"]; present {
		t.Fatalf("isAdult should be absent from minimal projection")
	}
	if _, present := out["email"]; present {
		t.Fatalf("email should be absent from minimal projection")
	}
}

func TestMapper_UnknownGroupYieldsEmptyResult(t *testing.T) {
	reg := newUserRegistry(t)
	out := compileUser(t, reg, shapemap.Group("nonexistent")).Map(userSource(), nil)
	if out == nil {
		t.Fatalf("expected empty result, got nil")
	}
	if len(out) != 0 {
		t.Fatalf("expected no fields, got %#v", out)
	}
}

func TestMapper_PickOmitComplementarity(t *testing.T) {
	reg := newUserRegistry(t)
	src := userSource()

	picked := compileUser(t, reg, shapemap.Pick("username", "email", "nope")).Map(src, nil)
	if len(picked) != 2 {
		t.Fatalf("pick: expected 2 fields, got %#v", picked)
	}
	if _, ok := picked["username"]; !ok {
		t.Fatalf("pick must keep username: %#v", picked)
	}
	if _, ok := picked["email"]; !ok {
		t.Fatalf("pick must keep email: %#v", picked)
	}

	omitted := compileUser(t, reg, shapemap.Omit("username", "email", "nope")).Map(src, nil)
	if len(omitted) != 2 {
		t.Fatalf("omit: expected 2 fields, got %#v", omitted)
	}
	if _, ok := omitted["avatar"]; !ok {
		t.Fatalf("omit must keep avatar: %#v", omitted)
	}
	if _, ok := omitted["isAdult"]; !ok {
		t.Fatalf("omit must keep isAdult: %#v", omitted)
	}
}

func TestMapper_NilSourcePropagates(t *testing.T) {
	reg := newUserRegistry(t)
	for _, opt := range []shapemap.Option{{}, shapemap.Pick("username"), shapemap.Group("minimal")} {
		if out := compileUser(t, reg, opt).Map(nil, nil); out != nil {
			t.Fatalf("opt %q: expected nil result for nil source, got %#v", opt.Signature(), out)
		}
	}
	var typedNil *userDTO
	if out := compileUser(t, reg).Map(typedNil, nil); out != nil {
		t.Fatalf("expected nil result for typed-nil source, got %#v", out)
	}
}

func TestMapper_MissingPathAssignsNil(t *testing.T) {
	reg := newUserRegistry(t)
	out := compileUser(t, reg).Map(map[string]any{"username": "x", "age": float64(3)}, nil)
	v, present := out["avatar"]
	if !present {
		t.Fatalf("avatar must be assigned even when the path is absent: %#v", out)
	}
	if v != nil {
		t.Fatalf("avatar = %#v, want nil", v)
	}
	if out["isAdult"] != false {
		t.Fatalf("isAdult = %#v, want false", out["isAdult"])
	}
}

func TestMapper_IgnoredFieldExcludedEverywhere(t *testing.T) {
	type auditDTO struct{}
	reg := shapemap.NewRegistry()
	decls := []shapemap.Declaration{
		{Key: "name", Path: "name"},
		{Key: "secret", Path: "secret", Groups: []string{"all"}, Ignore: true},
	}
	if err := reg.Register(reflect.TypeOf(auditDTO{}), decls); err != nil {
		t.Fatalf("register: %v", err)
	}
	src := map[string]any{"name": "n", "secret": "s"}
	for _, opt := range []shapemap.Option{{}, shapemap.Pick("secret", "name"), shapemap.Group("all")} {
		m, err := reg.Compile(reflect.TypeOf(auditDTO{}), opt)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		out := m.Map(src, nil)
		if _, present := out["secret"]; present {
			t.Fatalf("opt %q: ignored field leaked: %#v", opt.Signature(), out)
		}
	}
}

func TestMapper_RedeclarationLastWinsGroupsUnion(t *testing.T) {
	type itemDTO struct{}
	reg := shapemap.NewRegistry()
	decls := []shapemap.Declaration{
		{Key: "name", Path: "old", Groups: []string{"a"}},
		{Key: "name", Path: "new", Groups: []string{"b"}},
	}
	if err := reg.Register(reflect.TypeOf(itemDTO{}), decls); err != nil {
		t.Fatalf("register: %v", err)
	}
	src := map[string]any{"old": "stale", "new": "fresh"}
	for _, g := range []string{"a", "b"} {
		m, err := reg.Compile(reflect.TypeOf(itemDTO{}), shapemap.Group(g))
		if err != nil {
			t.Fatalf("compile group %s: %v", g, err)
		}
		out := m.Map(src, nil)
		if out["name"] != "fresh" {
			t.Fatalf("group %s: name = %#v, want last-declared locator to win", g, out["name"])
		}
	}
}

func TestMapper_TransformReceivesContextExtras(t *testing.T) {
	type greetDTO struct{}
	reg := shapemap.NewRegistry()
	decls := []shapemap.Declaration{
		{Key: "greeting", Transform: func(src any, mc *shapemap.Context) any {
			prefix, _ := mc.Extra("prefix")
			name, _ := shapemap.Resolve(src, "name").(string)
			return prefix.(string) + name
		}},
	}
	if err := reg.Register(reflect.TypeOf(greetDTO{}), decls); err != nil {
		t.Fatalf("register: %v", err)
	}
	m, err := reg.Compile(reflect.TypeOf(greetDTO{}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	mc := shapemap.NewContext().WithExtra("prefix", "hello ")
	out := m.Map(map[string]any{"name": "ada"}, mc)
	if out["greeting"] != "hello ada" {
		t.Fatalf("greeting = %#v", out["greeting"])
	}
}

func TestMapper_MapSliceInvariants(t *testing.T) {
	reg := newUserRegistry(t)
	m := compileUser(t, reg)

	out := m.MapSlice(nil, nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("nil input: expected empty slice, got %#v", out)
	}
	out = m.MapSlice("not a slice", nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("non-slice input: expected empty slice, got %#v", out)
	}

	src := userSource()
	other := userSource()
	other["username"] = "jane"
	out = m.MapSlice([]any{src, nil, other}, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if out[1] != nil {
		t.Fatalf("nil element must map to nil, got %#v", out[1])
	}
	if out[0]["username"] != "john_doe" || out[2]["username"] != "jane" {
		t.Fatalf("unexpected element mapping: %#v", out)
	}
}

func TestMapper_StructSource(t *testing.T) {
	type profile struct {
		AvatarURL string `json:"avatarUrl"`
	}
	type account struct {
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Age      float64 `json:"age"`
		Profile  profile `json:"profile"`
	}
	reg := newUserRegistry(t)
	out := compileUser(t, reg).Map(account{
		Username: "john_doe",
		Email:    "john@x.com",
		Age:      25,
		Profile:  profile{AvatarURL: "u"},
	}, nil)
	if out["username"] != "john_doe" || out["avatar"] != "u" || out["isAdult"] != true {
		t.Fatalf("struct source mapping: %#v", out)
	}
}
