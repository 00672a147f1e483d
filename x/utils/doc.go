/*
Package utils provides the decorators that wrap every transaction processed
by a ledger: panic recovery, logging, metrics and the savepoint that makes a
failed transaction leave no trace in the store.
*/
package utils
