/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps at most one configuration object, stored under a key
derived from the extension name. The object is loaded from the genesis file
with InitConfig and later modified only by the extension's own messages, which
must use Save so that the configuration is validated on every change.

*/
package gconf
