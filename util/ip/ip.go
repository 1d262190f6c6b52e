/*
Package ip provides conversion between dotted-quad IPv4 text and the
32-bit numeric form used by the prefix trie, plus CIDR string
validation.
*/
package ip

import (
	"fmt"
	"strconv"
	"strings"
)

// AddressBits is the number of bits in an IPv4 address.
const AddressBits = 32

// InvalidAddressError is returned when a dotted-quad address does not
// have exactly 4 fields, or a field is not an integer in [0, 255].
type InvalidAddressError struct {
	Address string // the full input
	Octet   string // the offending field, empty when the field count is wrong
}

func (e *InvalidAddressError) Error() string {
	if e.Octet != "" {
		return fmt.Sprintf("invalid IPv4 address %q: bad octet %q", e.Address, e.Octet)
	}
	return fmt.Sprintf("invalid IPv4 address %q", e.Address)
}

// InvalidCIDRError is returned when a CIDR string does not have exactly
// 2 "/"-separated fields, the prefix length is not an integer in
// [0, 32], or the address part is itself invalid.
type InvalidCIDRError struct {
	CIDR string
	Err  error // the underlying InvalidAddressError, if any
}

func (e *InvalidCIDRError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid CIDR %q: %v", e.CIDR, e.Err)
	}
	return fmt.Sprintf("invalid CIDR %q", e.CIDR)
}

func (e *InvalidCIDRError) Unwrap() error { return e.Err }

// Encode converts a dotted-quad IPv4 address to its 32-bit big-endian
// numeric form. The most significant bit of the result is the most
// significant bit of the first octet.
func Encode(addr string) (uint32, error) {
	fields := strings.Split(addr, ".")
	if len(fields) != 4 {
		return 0, &InvalidAddressError{Address: addr}
	}
	var nn uint32
	for _, field := range fields {
		octet, err := strconv.Atoi(field)
		if err != nil || octet < 0 || octet > 255 {
			return 0, &InvalidAddressError{Address: addr, Octet: field}
		}
		nn = nn<<8 | uint32(octet)
	}
	return nn, nil
}

// Decode converts the 32-bit numeric form back to dotted-quad text.
func Decode(nn uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(nn>>24), byte(nn>>16), byte(nn>>8), byte(nn))
}

// Bit returns the bit of nn at the given depth, counting from the most
// significant bit: Bit(nn, 0) is the MSB of the first octet.
func Bit(nn uint32, depth int) int {
	return int(nn>>(AddressBits-1-depth)) & 1
}

// ParseCIDR splits a CIDR string into its validated base address and
// prefix length. Host bits past the prefix length are kept as written;
// the trie simply never consults them.
func ParseCIDR(cidr string) (string, int, error) {
	fields := strings.Split(cidr, "/")
	if len(fields) != 2 {
		return "", 0, &InvalidCIDRError{CIDR: cidr}
	}
	prefixLen, err := strconv.Atoi(fields[1])
	if err != nil || prefixLen < 0 || prefixLen > AddressBits {
		return "", 0, &InvalidCIDRError{CIDR: cidr}
	}
	if _, err := Encode(fields[0]); err != nil {
		return "", 0, &InvalidCIDRError{CIDR: cidr, Err: err}
	}
	return fields[0], prefixLen, nil
}
