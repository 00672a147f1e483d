/*
Package bridge defines the common interfaces used to tie together the
lock-box ledger: the key value store abstraction, messages, transactions,
handlers and decorators, addresses and conditions.

A ledger instance processes one transaction at a time. Every transaction
carries one message, the message path selects the handler, and a chain of
decorators around the handler takes care of signatures, logging, metrics and
atomicity.

We pass context through context.Context between the ledger, decorators and
handlers. Common keys store the block height, block time, chain id and
logger. Each extension, such as sigs, may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value.
*/
package bridge
