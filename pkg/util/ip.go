package util

import (
	"fmt"
	"net/netip"
)

// WithNetmask combines a base address and a dotted-quad netmask into a
// canonical netip.Prefix, masking off any host bits. This is the Go
// equivalent of the `IpNetwork::with_netmask` constructor the OSPF
// semantic lift and the stub-network synthesis pass build network
// prefixes with.
func WithNetmask(addr, mask netip.Addr) (netip.Prefix, error) {
	if !addr.Is4() || !mask.Is4() {
		return netip.Prefix{}, fmt.Errorf("with_netmask: only IPv4 is supported, got %s/%s", addr, mask)
	}
	ones, ok := maskBitsToOnes(mask.As4())
	if !ok {
		return netip.Prefix{}, fmt.Errorf("with_netmask: %s is not a contiguous netmask", mask)
	}
	return netip.PrefixFrom(addr, ones).Masked(), nil
}

// maskBitsToOnes converts a dotted-quad mask into a prefix length,
// rejecting non-contiguous masks (e.g. 255.0.255.0).
func maskBitsToOnes(mask [4]byte) (int, bool) {
	var bits uint32
	for _, b := range mask {
		bits = bits<<8 | uint32(b)
	}
	ones := 0
	seenZero := false
	for i := 31; i >= 0; i-- {
		bit := (bits >> uint(i)) & 1
		if bit == 1 {
			if seenZero {
				return 0, false
			}
			ones++
		} else {
			seenZero = true
		}
	}
	return ones, true
}
