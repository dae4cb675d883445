// Package order turns a raw checkout cart into per-category item groups
// with deterministic totals, ready for receipt composition.
package order

import (
	"sort"
	"strings"

	"github.com/MySagra/mycassa/internal/pricing"
)

// PriorityCategory is always presented first, regardless of cart order.
const PriorityCategory = "pizzeria"

// Aggregate groups the cart by category. Items with a non-positive
// quantity are dropped, not rejected. Within a category items keep their
// cart order; categories keep the order of their first occurrence, except
// the pizzeria category which always comes first.
func Aggregate(cart []CartItem) Summary {
	index := make(map[string]int)
	var sum Summary

	for _, it := range cart {
		if it.Qty <= 0 {
			continue
		}

		unit := pricing.UnitPrice(it.Price, it.Adds)
		lineTotal := pricing.LineTotal(it.Qty, unit)

		i, ok := index[it.Category]
		if !ok {
			i = len(sum.Groups)
			index[it.Category] = i
			sum.Groups = append(sum.Groups, Group{Category: it.Category})
		}
		sum.Groups[i].Items = append(sum.Groups[i].Items, it)
		sum.Groups[i].Subtotal = sum.Groups[i].Subtotal.Add(lineTotal)
		sum.GrandTotal = sum.GrandTotal.Add(lineTotal)

		tagged := it
		tagged.Name = it.Category + " - " + it.Name
		sum.AllItems = append(sum.AllItems, tagged)
	}

	sortGroups(sum.Groups)
	return sum
}

// sortGroups is stable, so non-priority categories keep first-seen order.
func sortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return categoryRank(groups[i].Category) < categoryRank(groups[j].Category)
	})
}

func categoryRank(category string) int {
	if strings.EqualFold(category, PriorityCategory) {
		return 0
	}
	return 1
}
