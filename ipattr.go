/*
Package ipattr stores IPv4 CIDR ranges annotated with ownership metadata
and answers "which ranges contain this address" queries.

To build a trie of annotated ranges:

	trie := ipattr.New()
	err := trie.Insert("1.11.0.0/16", ipattr.Record{
		IPRange:     "1.11.0.0/16",
		Description: "ISP-A",
		Number:      "9318",
		Country:     "KR",
		Status:      "assigned",
	})

To retrieve every range containing an address, least specific first:

	// returns []ipattr.Record, error
	matches, err := trie.SearchAll("1.11.40.5")

Nested allocations are all reported: querying an address inside a /21
carved out of a registered /16 yields both records. Unlike a routing
lookup, the search never collapses to the longest prefix only.
*/
package ipattr

// Record is the metadata attached to a single CIDR range. A Record is
// immutable once inserted.
type Record struct {
	// IPRange is the CIDR string exactly as it appeared in the input,
	// kept for display.
	IPRange     string `json:"ipRange"`
	Description string `json:"description"`
	// Number is the AS number, optional.
	Number string `json:"number,omitempty"`
	// Country is the ISO country code, optional.
	Country string `json:"country,omitempty"`
	// Status defaults to "none" at the loading boundary.
	Status string `json:"status"`
}
