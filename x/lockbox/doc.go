/*
Package lockbox implements a bridge between two ledgers built on hash
time-locked lock-boxes.

A user opens a deposit on the source ledger, escrowing funds under the hash
of a secret only the user knows. A manager opens the matching withdraw on the
destination ledger, pledging liquidity of the pool. The user closes the
withdraw by revealing the secret and is paid out of the pool. The manager
uses the revealed secret to close the deposit, which moves the escrowed funds
into the source pool. When the counterpart never happens, the deposit can be
refunded to the depositor and the withdraw released after their time locks.

Pools are funded by liquidity providers and hold one asset each. Fees are
taken when a lock-box closes and credited to the fee beneficiary on the
ledger that collects fees. Managers can pause the bridge and limit the daily
volume of every asset.
*/
package lockbox
