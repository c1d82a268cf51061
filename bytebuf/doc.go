// Package bytebuf hosts guest modules that exchange plain byte buffers.
//
// A guest exports its linear memory as "memory", an allocator pair
//
//	alloc_bytes(len i32) -> i32
//	free_bytes(ptr i32, len i32)
//
// and any number of transforms
//
//	fn(in_ptr, in_len, out_ptr, out_len i32) -> i32
//
// A transform returns the number of bytes written to the output buffer or a
// negative value when it rejects the input. Module.Call handles buffer
// allocation and copying on the host side; the Reference transforms in this
// package are Go implementations used to check guest output.
package bytebuf
