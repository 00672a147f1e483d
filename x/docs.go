/*
Package x contains the helpers shared by all ledger extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the ledger package. Each
sub-package is one extension: signature verification, the asset
ledger and the lock-box bridge.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `lockbox.Deposit` in place of `lockbox.LockBoxDeposit`.
*/
package x
