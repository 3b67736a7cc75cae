// Package resolver implements the label/value field resolution used by the
// read-only display views. A declared list of (label, evaluator) specs is
// classified once against a record descriptor into tagged evaluator variants
// and then resolved per request into ordered (label, value) rows.
//
// The five evaluation modes, in strict priority order:
//
//  1. string naming a plain attribute -> the attribute's current value
//  2. string naming a zero-argument method -> the method's return value
//  3. any other string -> the string itself
//  4. a non-string callable taking the render context -> its return value
//  5. anything else -> fmt.Sprint of the value
//
// Labels left empty in modes 1 and 2 are derived from the descriptor's field
// metadata; everywhere else an explicit label is required. Both rules are
// enforced at configuration time via ConfigurationError.
package resolver
