/*
Package types defines hostport's information model. At its center sits the
immutable [Address] value type: a host:port endpoint that larger networking
code (cluster membership, RPC addressing) passes around, compares, and uses
as map keys. Addresses come into existence through [Parse] or [New] only and
are never mutated afterwards; deriving an endpoint with a different port
produces a new value. Every constructing path normalizes loopback aliases
("localhost", "127.0.0.1", "127.0.1.1") into the local machine's resolved IP
address, so that handed-out endpoints mean the same thing on every node.

Since Address is a plain comparable value without any internal locking
needs, it is safe to share across any number of concurrent readers.

The remaining types — [Status], [Vetted], and [VettedValue] — form the small
information model of the endpoint checking pipeline (packages resolve and
check) that vets the hosts of endpoint lists. The Address type itself never
depends on them.

# Extending Vetted

In case an implementation chooses to embed [VettedValue] into its own type,
it is essential to (re)implement the [VettedValue.WithStatus] method.
Failing to do so will cause the embedded VettedValue.WithStatus method to be
propagated to the new type, yet it won't return the proper new type, but
instead only a stock VettedValue, loosing the additional information in the
process.
*/
package types
