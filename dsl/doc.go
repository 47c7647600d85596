// Package dsl provides the fluent declaration builder for shapemap target
// shapes. A shape's field mappings are collected explicitly:
//
//	dsl.Shape[UserDTO]().
//		Field("username").From("username").Groups("minimal").
//		Field("isAdult").Transform(adult).
//		MustRegister()
//
// Build is side-effect-free; Register/RegisterInto hand the declarations to a
// shapemap.Registry.
package dsl
