package ipattr

import (
	"fmt"
	"strings"

	"github.com/Ramzeth/ipattr/util/ip"
)

// node is a single level of the binary prefix trie. A node's depth is
// the number of bits consumed to reach it; records terminate exactly at
// their prefix length. Children are exclusively owned by their parent,
// so the structure is a pure tree.
type node struct {
	children [2]*node
	records  []Record
}

// Trie is a binary prefix trie over IPv4 addresses. The root node
// represents prefix length 0, so a record inserted under 0.0.0.0/0
// matches every address.
//
// The trie is not internally synchronized. The intended usage is
// build-then-query: perform all inserts first, after which concurrent
// SearchAll calls are safe without locking.
type Trie struct {
	root node
	size int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{}
}

// Insert registers rec under the prefix described by cidr. Records
// sharing the exact same prefix accumulate at one node in insertion
// order; inserting the same (cidr, record) pair twice keeps both
// copies. A malformed cidr fails the call without mutating the trie.
func (t *Trie) Insert(cidr string, rec Record) error {
	addr, prefixLen, err := ip.ParseCIDR(cidr)
	if err != nil {
		return err
	}
	nn, _ := ip.Encode(addr) // addr already validated by ParseCIDR

	cur := &t.root
	for depth := 0; depth < prefixLen; depth++ {
		bit := ip.Bit(nn, depth)
		if cur.children[bit] == nil {
			cur.children[bit] = &node{}
		}
		cur = cur.children[bit]
	}
	cur.records = append(cur.records, rec)
	t.size++
	return nil
}

// SearchAll returns every record whose range contains addr, ancestors
// before descendants: the least specific prefix comes first, records at
// one node keep their insertion order. A valid address contained in no
// range yields an empty, non-nil result; a malformed address is an
// error, never an empty success.
func (t *Trie) SearchAll(addr string) ([]Record, error) {
	nn, err := ip.Encode(addr)
	if err != nil {
		return nil, err
	}

	matches := []Record{}
	cur := &t.root
	for depth := 0; ; depth++ {
		matches = append(matches, cur.records...)
		if depth == ip.AddressBits {
			break
		}
		next := cur.children[ip.Bit(nn, depth)]
		if next == nil {
			break
		}
		cur = next
	}
	return matches, nil
}

// Len returns the number of records inserted.
func (t *Trie) Len() int {
	return t.size
}

// String returns a string representation of the trie, mainly for
// visualization and debugging.
func (t *Trie) String() string {
	return t.root.dump(0)
}

func (n *node) dump(depth int) string {
	children := []string{}
	padding := strings.Repeat("| ", depth+1)
	for bit, child := range n.children {
		if child == nil {
			continue
		}
		childStr := fmt.Sprintf("\n%s%d--> %s", padding, bit, child.dump(depth+1))
		children = append(children, childStr)
	}
	return fmt.Sprintf("(depth:%d:records:%d)%s", depth, len(n.records), strings.Join(children, ""))
}
