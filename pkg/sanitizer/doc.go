// Package sanitizer provides input normalization functions for listing and
// booking data.
//
// All functions are idempotent - applying them multiple times produces the
// same result. Invalid input is handled gracefully, typically by returning
// an empty string rather than an error.
//
// Normalization includes:
//   - Search terms: collapse whitespace, escape regex metacharacters so user
//     input can be embedded into case-insensitive substring queries
//   - Emails: trim and lowercase for identity comparison
//   - Free-form strings: collapse internal whitespace, trim edges
package sanitizer
