/*
Package x contains the extensions of the authlock ledger.

Extensions implement a Handler for their messages, an Initializer for
their genesis state and, where other extensions need them, Go level
controllers. They are combined together in the app package.

The shared Authenticator abstraction lives here so that extensions can
check who signed a transaction without knowing how the signature was
verified. x/sigs verifies ed25519 signatures, x/loader keeps deployed
programs and their upgrade authority, x/timelock schedules delayed
authority handovers.
*/
package x
