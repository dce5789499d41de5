// Package policycontent provides the shared domain layer for a medical
// association's content and events operations: the polymorphic policy-content
// model (Policy Beliefs and Positional Statements), workshops and
// collaboration submissions, plus the normalization, serialization,
// validation, filtering and aggregation logic around them.
//
// The package is purely functional; all network I/O lives in the client
// subpackage. Normalizers convert loosely-shaped backend records into the
// strict types here and never fail; serializers produce the wire shapes the
// backend expects, emitting only explicitly set fields for partial updates.
//
// # Polymorphism
//
// ContentItem is a tagged union discriminated by its Type field. Code that
// handles variant-specific fields switches exhaustively over both variants;
// there is no inheritance hierarchy.
package policycontent
