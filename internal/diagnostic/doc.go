// Package diagnostic provides structured warnings, errors, and
// informational notes produced by descriptor validation.
//
// Key capabilities:
//   - Unresolvable serializer reference errors
//   - Duplicate output key reports
//   - Conflicting embed/polymorphism configuration warnings
//   - Lint-friendly formatted output with stable codes
package diagnostic
