/*
Package gconf stores one configuration object per extension.

A configuration is a protobuf message kept under a key derived from the
extension name. InitConfig loads it from the "conf" section of the genesis
file. Afterwards only its owner can change it, by sending a message that
implements UpdateMsg to an UpdateHandler. The "/gconf" query returns the
raw configuration of a package.
*/
package gconf
