/*
Package app contains the glue that turns extensions into a ledger: the
message router, the decorator chain, the genesis file loader and the commit
store that keeps the delivery and check scratch pads on top of the
persistent store.
*/
package app
