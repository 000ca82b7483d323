/*
Package timelock implements a time-locked transfer of a program upgrade
authority.

The current authority of a program proposes a transfer to a target identity
that becomes effective at a given time. The proposal is stored as an Escrow
at an address derived from the target and the effective time under the
controller identity, so at most one proposal exists for every pair.

Once the effective time has passed, anyone can execute the transfer. The
authority is changed through the AuthorityBridge and the escrow is removed.
A pending escrow never expires and cannot be cancelled.

When the configuration enables custody, proposing additionally moves the
authority to the escrow address, so that the proposer cannot change it
until the transfer is executed.
*/
package timelock
