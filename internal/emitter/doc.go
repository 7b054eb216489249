// Package emitter provides a generic single-event-type emitter with
// synchronous, in-order delivery. Listeners observe each emitted value
// strictly after the mutation that produced it, in the order calls were
// issued.
package emitter
