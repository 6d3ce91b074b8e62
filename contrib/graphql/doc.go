// Package graphql exposes the generated record types to gqlgen-based
// GraphQL servers. It emits a schema fragment with one object type per
// record, validated with gqlparser before writing, and maintains the
// model bindings in gqlgen.yml so the GraphQL types resolve to the
// record structs.
package graphql
