// Package validate implements the field-level validation rule set applied to
// every form payload before it reaches the session machine or a content
// submission endpoint.
//
// Each schema is a pure function from a raw field map to either a normalized
// typed payload or a field-scoped [Violations] value. Rules for a field are
// evaluated in order and every failing rule contributes a message, so a form
// can display all problems for all fields in a single pass. Schemas never
// perform I/O.
package validate
