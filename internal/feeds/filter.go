package feeds

import "strings"

// Filter determines if an item should be excluded from the stream.
// This blocks ads and sponsored placements that some feeds inject; it is
// not a relevance filter.
type Filter struct {
	// Keywords in title that indicate ads/sponsored content
	BlockKeywords []string
}

// DefaultFilter returns a filter configured to block common ad patterns
func DefaultFilter() *Filter {
	return &Filter{
		BlockKeywords: []string{
			"sponsored",
			"advertisement",
			"paid content",
			"paid post",
			"partner content",
			"branded content",
			"promoted",
			"presented by",
			"brought to you by",
			"underwritten by",
			"[ad]",
			"[sponsored]",
			"credit card",
			"cash back card",
			"0% apr",
			"best deals on",
			"coupon code",
		},
	}
}

// ShouldBlock returns true if the item looks like an ad
func (f *Filter) ShouldBlock(item Item) bool {
	title := strings.ToLower(item.Title)
	for _, kw := range f.BlockKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
