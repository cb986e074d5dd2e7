package model

import (
	"sort"
	"strings"
)

// FilterOptions lists the values observed in the data for each dropdown.
type FilterOptions struct {
	Regions        []string `json:"regions"`
	Genders        []string `json:"genders"`
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"paymentMethods"`
	Tags           []string `json:"tags"`
}

// OptionField names one dropdown whose values are read from the data.
type OptionField string

const (
	OptionRegions        OptionField = "regions"
	OptionGenders        OptionField = "genders"
	OptionCategories     OptionField = "categories"
	OptionPaymentMethods OptionField = "paymentMethods"
	OptionTags           OptionField = "tags"
)

// OptionFields lists every option field in response order.
var OptionFields = []OptionField{
	OptionRegions,
	OptionGenders,
	OptionCategories,
	OptionPaymentMethods,
	OptionTags,
}

// CollectTags flattens comma-joined tag strings into a sorted set of
// individual tags. Pieces are trimmed, empty pieces dropped, and duplicates
// removed by exact (case-sensitive) match.
func CollectTags(raw []string) []string {
	seen := make(map[string]struct{})
	for _, value := range raw {
		for _, piece := range strings.Split(value, ",") {
			if tag := strings.TrimSpace(piece); tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
