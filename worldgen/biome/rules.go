package biome

import "sort"

// HeightRule overrides the resolved material within a height band.
// Rules exist for effects such as snow caps above a given elevation or
// beach sand in a narrow band around sea level.
type HeightRule struct {
	MinHeight float64
	MaxHeight float64
	Material  byte
	// SurfaceOnly limits the rule to voxels within MaxDepth of the
	// terrain surface.
	SurfaceOnly bool
	MaxDepth    float64
	// Priority orders rule application; the highest-priority matching
	// rule wins.
	Priority int
}

// matches reports whether the rule applies at the given surface height
// and voxel depth.
func (h HeightRule) matches(height, depth float64) bool {
	if height < h.MinHeight || height > h.MaxHeight {
		return false
	}
	if h.SurfaceOnly && depth > h.MaxDepth {
		return false
	}
	return true
}

// RuleSet is a height-rule list pre-sorted by priority. The sorted
// order is built at construction; a RuleSet must be replaced, not
// mutated, when the rule table changes, so concurrent readers never
// observe a partially sorted list.
type RuleSet struct {
	sorted []HeightRule
}

// NewRuleSet builds a RuleSet from the rule table. The rules are
// copied and sorted by descending priority once, here.
func NewRuleSet(rules []HeightRule) *RuleSet {
	rs := &RuleSet{sorted: append([]HeightRule(nil), rules...)}
	sort.SliceStable(rs.sorted, func(a, b int) bool {
		return rs.sorted[a].Priority > rs.sorted[b].Priority
	})
	return rs
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.sorted)
}

// Apply returns the material of the highest-priority rule matching the
// surface height and depth, or the input material when no rule
// matches.
func (rs *RuleSet) Apply(material byte, height, depth float64) byte {
	if rs == nil {
		return material
	}
	for _, rule := range rs.sorted {
		if rule.matches(height, depth) {
			return rule.Material
		}
	}
	return material
}
