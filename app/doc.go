/*
Package app contains the glue that turns a set of extensions into a
running ledger.

A Router dispatches every message to the handler registered for its path,
ChainDecorators wraps it with middleware and the Ledger executes
transactions one at a time against a CommitKVStore. Every transaction runs
against its own cache wrap which is written and committed only when the
whole handler stack succeeds.
*/
package app
