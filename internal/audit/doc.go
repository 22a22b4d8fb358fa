// Package audit carries the structured audit event model and the buffered
// dispatcher that fans events out to a configured sink.
package audit
