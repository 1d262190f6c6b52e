package ip

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		addr string
		nn   uint32
		name string
	}{
		{"0.0.0.0", 0, "all zeros"},
		{"255.255.255.255", 4294967295, "all ones"},
		{"128.0.0.0", 2147483648, "leading bit"},
		{"0.0.0.1", 1, "trailing bit"},
		{"1.11.40.5", 17508357, "mixed octets"},
		{"192.168.0.1", 3232235521, "private address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nn, err := Encode(tc.addr)
			assert.NoError(t, err)
			assert.Equal(t, tc.nn, nn)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	addrs := []string{"0.0.0.0", "1.2.3.4", "10.0.0.0", "172.16.254.1", "255.255.255.255"}
	for _, addr := range addrs {
		t.Run(addr, func(t *testing.T) {
			nn, err := Encode(addr)
			require.NoError(t, err)
			bits := fmt.Sprintf("%032b", nn)
			assert.Len(t, bits, AddressBits)
			assert.Equal(t, addr, Decode(nn))
		})
	}
}

func TestEncodeInvalid(t *testing.T) {
	cases := []struct {
		addr  string
		octet string
		name  string
	}{
		{"", "", "empty"},
		{"1.2.3", "", "too few fields"},
		{"1.2.3.4.5", "", "too many fields"},
		{"1.2.3.", "", "trailing dot"},
		{"256.0.0.0", "256", "octet too large"},
		{"1.2.-1.4", "-1", "negative octet"},
		{"a.b.c.d", "a", "non numeric"},
		{"1.2. 3.4", " 3", "embedded space"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.addr)
			require.Error(t, err)
			var addrErr *InvalidAddressError
			require.True(t, errors.As(err, &addrErr))
			assert.Equal(t, tc.addr, addrErr.Address)
			assert.Equal(t, tc.octet, addrErr.Octet)
		})
	}
}

func TestBit(t *testing.T) {
	nn, err := Encode("128.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, Bit(nn, 0))
	assert.Equal(t, 0, Bit(nn, 1))
	assert.Equal(t, 0, Bit(nn, 30))
	assert.Equal(t, 1, Bit(nn, 31))
}

func TestParseCIDR(t *testing.T) {
	cases := []struct {
		cidr      string
		addr      string
		prefixLen int
		name      string
	}{
		{"10.0.0.0/8", "10.0.0.0", 8, "basic"},
		{"0.0.0.0/0", "0.0.0.0", 0, "zero length prefix"},
		{"192.168.0.1/32", "192.168.0.1", 32, "host route"},
		{"1.11.40.5/21", "1.11.40.5", 21, "host bits kept as written"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, prefixLen, err := ParseCIDR(tc.cidr)
			assert.NoError(t, err)
			assert.Equal(t, tc.addr, addr)
			assert.Equal(t, tc.prefixLen, prefixLen)
		})
	}
}

func TestParseCIDRInvalid(t *testing.T) {
	cases := []struct {
		cidr    string
		badAddr bool
		name    string
	}{
		{"10.0.0.0", false, "missing prefix length"},
		{"10.0.0.0/8/8", false, "too many slashes"},
		{"10.0.0.0/33", false, "prefix length too large"},
		{"10.0.0.0/-1", false, "negative prefix length"},
		{"10.0.0.0/x", false, "non numeric prefix length"},
		{"10.0.0/8", true, "bad address"},
		{"256.0.0.0/8", true, "bad octet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseCIDR(tc.cidr)
			require.Error(t, err)
			var cidrErr *InvalidCIDRError
			require.True(t, errors.As(err, &cidrErr))
			assert.Equal(t, tc.cidr, cidrErr.CIDR)
			var addrErr *InvalidAddressError
			assert.Equal(t, tc.badAddr, errors.As(err, &addrErr))
		})
	}
}
