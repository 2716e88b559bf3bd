// Package freeform parses and validates the free-form curve/surface attribute
// statements of the Wavefront OBJ format: cstype, deg, bmat and step.
//
// Parse folds an ordered sequence of lines into a Definition. It stops, without
// consuming it, at the first line whose keyword is not a free-form attribute.
// Definition.Validate is a separate step that checks the cross-field rules:
//
//   - a cardinal spline has degree 3 on every axis;
//   - a basis matrix, its step and the degree agree on curve versus surface;
//   - each basis matrix axis holds (degree+1)^2 coefficients.
//
// All values in this package are immutable. Setters such as
// BasisMatrixAttributes.WithMatrixU return a new value, and row/column
// extraction returns copies, so nothing handed out can observe a later change.
//
// Structural problems (bad token counts, non-numeric tokens, unknown
// sub-keywords) are reported by Parse. Semantic problems are reported only by
// Validate. Both use the sentinel errors in errors.go; match them with
// errors.Is.
package freeform
