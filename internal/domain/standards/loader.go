package standards

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
)

// Load reads a standards table from a YAML artifact.
//
// Expected shape, thresholds in the site's time notation so the artifact
// can be copied straight from published standards documents:
//
//	age_groups:
//	  "10U":
//	    "50 FR SCY":
//	      AAAA: "31.49"
//	      AAA: "33.69"
//	  "11-12":
//	    "100 FR SCY":
//	      AAAA: "59.09"
//	      AAA: "1:02.99"
//
// Every threshold must parse as a valid time and thresholds must strictly
// increase fastest tier to slowest. Violations are configuration errors and
// fail the load; there is no partial table.
func Load(path string) (*Table, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}

	var raw map[string]map[string]map[string]string
	if err := k.Unmarshal("age_groups", &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadTable, path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s: no age groups", ErrLoadTable, path)
	}

	t := &Table{entries: make(map[string]map[string]map[Tier]float64, len(raw))}
	for ageGroup, byEvent := range raw {
		t.entries[ageGroup] = make(map[string]map[Tier]float64, len(byEvent))
		for eventLabel, byTier := range byEvent {
			thresholds, err := parseThresholds(byTier)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidTable, ageGroup, eventLabel, err)
			}
			t.entries[ageGroup][eventLabel] = thresholds
		}
	}
	return t, nil
}

// parseThresholds converts one event's tier map and enforces the strictly
// increasing fastest-to-slowest invariant.
func parseThresholds(byTier map[string]string) (map[Tier]float64, error) {
	thresholds := make(map[Tier]float64, len(byTier))
	for name, text := range byTier {
		tier := Tier(name)
		if !knownTier(tier) {
			return nil, fmt.Errorf("unknown tier %q", name)
		}
		seconds, ok, err := swimtime.Parse(text)
		if err != nil || !ok {
			return nil, fmt.Errorf("tier %s: bad threshold %q", name, text)
		}
		thresholds[tier] = seconds
	}
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("no tiers")
	}

	prev := 0.0
	for _, tier := range tierOrder {
		threshold, present := thresholds[tier]
		if !present {
			continue
		}
		if threshold <= prev {
			return nil, fmt.Errorf("tier %s threshold %.2f not above faster tier", tier, threshold)
		}
		prev = threshold
	}
	return thresholds, nil
}

func knownTier(t Tier) bool {
	for _, known := range tierOrder {
		if t == known {
			return true
		}
	}
	return false
}
