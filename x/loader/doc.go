/*
Package loader keeps the registry of deployed programs.

Every program has a metadata record, ProgramData, stored at the address
derived from the program address under the LoaderID identity. The record
holds the upgrade authority of the program. Only the current authority can
change it, and a program without an authority is immutable forever.

Other extensions change the authority through the Controller, which is the
only code that writes ProgramData records.
*/
package loader
