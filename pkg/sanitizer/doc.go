// Package sanitizer normalises user input before validation and storage.
//
// All functions are idempotent. Invalid input is handled by returning an empty
// string rather than an error, so validation decides what to report.
//
// Normalisation includes:
//   - Phone numbers: E.164 (+[country][number]), local numbers read in the
//     configured default region
//   - Strings: collapse inner whitespace, trim leading/trailing spaces
package sanitizer
