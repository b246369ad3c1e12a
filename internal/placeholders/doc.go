// Package placeholders expands {token} placeholders in user-authored
// notification templates using live upload state.
package placeholders
