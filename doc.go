package shapemap

// Package shapemap provides:
//
// - Declarative field mapping from arbitrary sources onto named target shapes
// - Runtime projections (pick/omit/named group) compiled into cached mapper functions
// - A stable error model via Issues (path, code, message) for declaration problems
// - Dotted-path source lookup with prototype-style key guarding
//
// Design policy:
// - Keep only public APIs in the root package; put builders under dsl/ and the
//   YAML declaration source under mapfile/.
// - Place HTTP adapters under middleware/ and the CLI under cmd/shapemap.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	dsl.Shape[UserDTO]().
//		Field("username").From("username").Groups("minimal").
//		Field("avatar").From("profile.avatarUrl").Groups("minimal").
//		MustRegister()
//
//	out, err := shapemap.Map[UserDTO](source)
//	min, err := shapemap.MapGroup[UserDTO](source, "minimal")
