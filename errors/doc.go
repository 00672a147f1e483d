/*
Package errors implements the error kinds used by the bridge ledger.

Every error returned by a handler should wrap one of the root errors declared
with Register. Root errors carry a numeric code that is stable across
releases, so that a client can tell an unauthorized call apart from a missing
lock-box without parsing messages.

Reuse the errors declared here whenever possible. Extensions that need a
domain specific kind (for example a lock-box that was already closed) declare
it in their own package with Register and a code from their own range.

Create error instances with ErrXyz.New, ErrXyz.Newf or Wrap at the point
where the failure is detected, so that the attached stack trace is useful.

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
