/*
Package cash defines a simple implementation of sending coins between
accounts.

There is no logic in the coins, except that the balance of any coin may not
go below zero. Thus, this implementation is referred to as cash. Simple and
safe.

Other extensions move funds only through the Controller. The lock-box
extension uses it as its asset transfer port.
*/
package cash
