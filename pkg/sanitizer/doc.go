// Package sanitizer normalizes user input before validation and storage.
//
// Every function is idempotent. Invalid input yields an empty value rather
// than an error so that the validator reports it with a field name.
package sanitizer
