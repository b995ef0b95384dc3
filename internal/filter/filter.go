// Package filter derives selector options and the filtered company view
// from the company dimension table and a FilterState.
//
// Sectors are AND-combined with industries and classification tags; values
// within one dimension are OR-combined. Every function here is pure: records
// are never mutated and nothing is cached between calls.
package filter

import (
	"github.com/stocksuperhero/dashboard/internal/model"
)

// Options are the values offered by each selector
type Options struct {
	Sectors            []string `json:"sectors"`
	Industries         []string `json:"industries"`
	ClassificationTags []string `json:"classification_tags"`
}

// AvailableOptions computes the option lists for the three selectors.
//
// Sector and classification tag options always come from the full table.
// Industry options are narrowed to the selected sectors when any are selected.
// Lists preserve first-seen order and are never nil.
func AvailableOptions(records []model.CompanyRecord, state model.FilterState) Options {
	sectorSet := toSet(state.Sectors)

	opts := Options{
		Sectors:            make([]string, 0),
		Industries:         make([]string, 0),
		ClassificationTags: make([]string, 0),
	}
	seenSector := make(map[string]struct{})
	seenIndustry := make(map[string]struct{})
	seenTag := make(map[string]struct{})

	for _, r := range records {
		if !r.Complete() {
			continue
		}
		opts.Sectors = appendDistinct(opts.Sectors, seenSector, r.Sector)
		opts.ClassificationTags = appendDistinct(opts.ClassificationTags, seenTag, r.ClassificationTag)
		if len(sectorSet) > 0 && !contains(sectorSet, r.Sector) {
			continue
		}
		opts.Industries = appendDistinct(opts.Industries, seenIndustry, r.Industry)
	}

	return opts
}

// DerivedView returns the records matching all active constraints, in input order.
//
// A state with no non-blank value is the identity: the input slice is returned
// as is. With any constraint active, incomplete records are dropped. No match
// yields an empty, non-nil slice.
func DerivedView(records []model.CompanyRecord, state model.FilterState) []model.CompanyRecord {
	sectors := toSet(state.Sectors)
	industries := toSet(state.Industries)
	tags := toSet(state.ClassificationTags)
	if len(sectors) == 0 && len(industries) == 0 && len(tags) == 0 {
		return records
	}

	view := make([]model.CompanyRecord, 0, len(records))
	for _, r := range records {
		if !r.Complete() {
			continue
		}
		if len(sectors) > 0 && !contains(sectors, r.Sector) {
			continue
		}
		if len(industries) > 0 && !contains(industries, r.Industry) {
			continue
		}
		if len(tags) > 0 && !contains(tags, r.ClassificationTag) {
			continue
		}
		view = append(view, r)
	}

	return view
}

// Prune drops selected industries that the current sector selection no longer offers.
// Sectors and classification tags are never pruned since their options do not depend
// on other selections.
func Prune(records []model.CompanyRecord, state model.FilterState) model.FilterState {
	if len(state.Industries) == 0 {
		return state
	}

	offered := toSet(AvailableOptions(records, state).Industries)
	kept := make([]string, 0, len(state.Industries))
	for _, ind := range state.Industries {
		if contains(offered, ind) {
			kept = append(kept, ind)
		}
	}

	return state.WithIndustries(kept)
}

// Symbols returns the symbols of a view in order
func Symbols(view []model.CompanyRecord) []string {
	out := make([]string, 0, len(view))
	for _, r := range view {
		out = append(out, r.Symbol)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func contains(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

func appendDistinct(list []string, seen map[string]struct{}, v string) []string {
	if _, ok := seen[v]; ok {
		return list
	}
	seen[v] = struct{}{}
	return append(list, v)
}
