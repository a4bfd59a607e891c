// Package addr hands out unique IPv4 addresses from a subnet for one
// compilation run. Part of the functional core: no I/O, state is a
// single counter scoped to the run.
package addr

import (
	"errors"
	"fmt"
	"net/netip"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrAddressSpaceExhausted means the subnet has no usable addresses
	// left for this run.
	ErrAddressSpaceExhausted = errors.New("subnet address space exhausted")

	// ErrNotIPv4 means the configured subnet is not an IPv4 prefix.
	ErrNotIPv4 = errors.New("subnet must be an IPv4 CIDR")
)

// =============================================================================
// Allocator
// =============================================================================

// Allocator assigns addresses from a subnet sequentially, starting after
// the network and gateway addresses and stopping before the broadcast
// address. Allocations within one run never repeat.
type Allocator struct {
	prefix netip.Prefix
	next   netip.Addr
}

// NewAllocator parses the subnet and positions the allocator at the
// first usable address (network + 2: network itself and the .1 gateway
// are reserved for the container runtime).
//
// Example:
//
//	a, _ := NewAllocator("100.0.0.0/8")
//	a.Next() // 100.0.0.2
func NewAllocator(subnet string) (*Allocator, error) {
	prefix, err := netip.ParsePrefix(subnet)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subnet %q: %w", subnet, err)
	}
	if !prefix.Addr().Is4() {
		return nil, ErrNotIPv4
	}
	prefix = prefix.Masked()
	return &Allocator{
		prefix: prefix,
		next:   prefix.Addr().Next().Next(),
	}, nil
}

// Subnet returns the masked CIDR the allocator draws from.
func (a *Allocator) Subnet() string {
	return a.prefix.String()
}

// Next returns a fresh address inside the subnet. It fails with
// ErrAddressSpaceExhausted once the only remaining address is the
// subnet broadcast address.
func (a *Allocator) Next() (netip.Addr, error) {
	if !a.next.IsValid() || !a.prefix.Contains(a.next) {
		return netip.Addr{}, ErrAddressSpaceExhausted
	}
	if a.isBroadcast(a.next) {
		return netip.Addr{}, ErrAddressSpaceExhausted
	}
	allocated := a.next
	a.next = a.next.Next()
	return allocated, nil
}

// isBroadcast reports whether ip is the highest address of the prefix.
func (a *Allocator) isBroadcast(ip netip.Addr) bool {
	return a.prefix.Contains(ip) && !a.prefix.Contains(ip.Next())
}
