// Package standards holds the motivational time-standard tables and the
// classifier that grades swims against them.
//
// Conventions:
// - The table is static reference data: loaded once, validated at load,
//   never mutated afterwards.
// - Classification failures for one record are reported to the caller and
//   never abort a batch.
package standards

// Tier is a named performance threshold. Faster swims earn tiers with
// numerically lower thresholds.
type Tier string

// Tiers, fastest to slowest. TierBelowLowest is the classification of a
// swim slower than every threshold, not a table entry.
const (
	TierAAAA        Tier = "AAAA"
	TierAAA         Tier = "AAA"
	TierAA          Tier = "AA"
	TierA           Tier = "A"
	TierBB          Tier = "BB"
	TierB           Tier = "B"
	TierBelowLowest Tier = "BelowLowest"
)

// tierOrder lists table tiers fastest to slowest.
var tierOrder = []Tier{TierAAAA, TierAAA, TierAA, TierA, TierBB, TierB}

// Target describes the next faster tier a swimmer can chase.
type Target struct {
	Tier             Tier    `json:"tier"`
	ThresholdSeconds float64 `json:"threshold_seconds"`
	GapSeconds       float64 `json:"gap_seconds"`
}

// ageGroupFallbacks redirects bands the table commonly does not key
// directly: combined 10-and-under standards cover the younger bands.
var ageGroupFallbacks = map[string]string{
	"8U":   "10U",
	"9-10": "10U",
}

// Table is the loaded standard set, keyed by age group then event label.
// Thresholds per entry are in seconds, strictly increasing fastest tier to
// slowest.
type Table struct {
	entries map[string]map[string]map[Tier]float64
}

// tiers resolves the threshold map for an (ageGroup, eventLabel) pair,
// following the combined-band fallback.
func (t *Table) tiers(ageGroup, eventLabel string) map[Tier]float64 {
	byEvent, ok := t.entries[ageGroup]
	if !ok {
		if alt, redirected := ageGroupFallbacks[ageGroup]; redirected {
			byEvent = t.entries[alt]
		}
	}
	if byEvent == nil {
		return nil
	}
	return byEvent[eventLabel]
}

// Classify grades a time against the tier thresholds for the event and age
// group. A time exactly on a threshold earns that tier; slower than every
// threshold classifies as TierBelowLowest. Returns ErrUnknownStandard when
// no table entry exists for the pair.
func (t *Table) Classify(eventLabel, ageGroup string, seconds float64) (Tier, error) {
	thresholds := t.tiers(ageGroup, eventLabel)
	if thresholds == nil {
		return "", unknownStandard(eventLabel, ageGroup)
	}
	for _, tier := range tierOrder {
		threshold, ok := thresholds[tier]
		if !ok {
			continue
		}
		if threshold >= seconds {
			return tier, nil
		}
	}
	return TierBelowLowest, nil
}

// NextTarget returns the next faster tier than the swim's current
// classification, with the threshold and the gap still to close. It
// returns nil when the swim already sits at the fastest tier.
func (t *Table) NextTarget(eventLabel, ageGroup string, seconds float64) (*Target, error) {
	thresholds := t.tiers(ageGroup, eventLabel)
	if thresholds == nil {
		return nil, unknownStandard(eventLabel, ageGroup)
	}
	// Walk slowest to fastest; the first tier still out of reach is the
	// next one to chase.
	for i := len(tierOrder) - 1; i >= 0; i-- {
		threshold, ok := thresholds[tierOrder[i]]
		if !ok {
			continue
		}
		if threshold < seconds {
			return &Target{
				Tier:             tierOrder[i],
				ThresholdSeconds: threshold,
				GapSeconds:       seconds - threshold,
			}, nil
		}
	}
	return nil, nil
}

// Events lists the event labels carried for an age group, resolving the
// combined-band fallback. Order is unspecified.
func (t *Table) Events(ageGroup string) []string {
	byEvent, ok := t.entries[ageGroup]
	if !ok {
		if alt, redirected := ageGroupFallbacks[ageGroup]; redirected {
			byEvent = t.entries[alt]
		}
	}
	labels := make([]string, 0, len(byEvent))
	for label := range byEvent {
		labels = append(labels, label)
	}
	return labels
}

// Thresholds returns a copy of the tier thresholds for an (event, age
// group) pair, or ErrUnknownStandard.
func (t *Table) Thresholds(eventLabel, ageGroup string) (map[Tier]float64, error) {
	thresholds := t.tiers(ageGroup, eventLabel)
	if thresholds == nil {
		return nil, unknownStandard(eventLabel, ageGroup)
	}
	out := make(map[Tier]float64, len(thresholds))
	for tier, v := range thresholds {
		out[tier] = v
	}
	return out, nil
}
