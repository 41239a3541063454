package calibration

import (
	"fmt"

	"gridiron/internal/catalog"
)

// Tuning scales the trait-influence bundle for one batch. Family
// multipliers apply to both sides' trait weights of the named family;
// outcome multipliers apply to the named outcome-profile constants of
// every play type. The scaled bundle is re-checksummed and loaded as a
// fresh catalog; the live engine's resources are never patched.
type Tuning struct {
	FamilyWeightMultipliers map[string]float64
	OutcomeMultipliers      map[string]float64
}

// outcomeKeys are the outcome-profile constants a multiplier may
// target. Integer-valued constants (clock deltas, thresholds) are
// excluded; scaling them is a resource edit, not a tuning knob.
var outcomeKeys = map[string]bool{
	"noise_scale":    true,
	"turnover_scale": true,
	"score_scale":    true,
}

// BuildTunedCatalog applies the tuning to the built-in trait-influence
// bundle and returns a freshly validated catalog under a new checksum.
func BuildTunedCatalog(tuning *Tuning) (*catalog.Catalog, error) {
	raw, err := catalog.DefaultRaw()
	if err != nil {
		return nil, fmt.Errorf("building base bundles: %w", err)
	}

	bundle := raw[catalog.FileTraitInfluences]
	resources, err := scaleInfluences(bundle.Resources, tuning)
	if err != nil {
		return nil, fmt.Errorf("scaling trait influences: %w", err)
	}
	manifest, err := catalog.NewManifest(
		catalog.BundleFiles[catalog.FileTraitInfluences], catalog.DefaultResourceVersion, resources)
	if err != nil {
		return nil, fmt.Errorf("re-checksumming trait influences: %w", err)
	}
	raw[catalog.FileTraitInfluences] = catalog.RawBundle{Manifest: manifest, Resources: resources}
	return catalog.FromRaw(raw)
}

// scaleInfluences mutates the freshly generated resource list in place.
// Unknown family names simply match nothing; unknown outcome keys are a
// hard error so a typo never yields an untuned batch.
func scaleInfluences(resources []any, tuning *Tuning) ([]any, error) {
	for key := range tuning.OutcomeMultipliers {
		if !outcomeKeys[key] {
			return nil, fmt.Errorf("outcome multiplier targets unknown key %q", key)
		}
	}

	for _, resource := range resources {
		influence, ok := resource.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("trait influence resource is not an object")
		}
		families, ok := influence["families"].([]any)
		if !ok {
			return nil, fmt.Errorf("trait influence %v has no families list", influence["id"])
		}
		for _, entry := range families {
			fam, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("trait influence %v family entry is not an object", influence["id"])
			}
			name, _ := fam["family"].(string)
			mult, tuned := tuning.FamilyWeightMultipliers[name]
			if !tuned || mult == 1.0 {
				continue
			}
			for _, side := range []string{"offense_weights", "defense_weights"} {
				weights, ok := fam[side].(map[string]any)
				if !ok {
					return nil, fmt.Errorf("family %s has no %s", name, side)
				}
				for code, value := range weights {
					v, ok := value.(float64)
					if !ok {
						return nil, fmt.Errorf("family %s weight %s is not numeric", name, code)
					}
					weights[code] = v * mult
				}
			}
		}

		outcome, ok := influence["outcome_profile"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("trait influence %v has no outcome profile", influence["id"])
		}
		for key, mult := range tuning.OutcomeMultipliers {
			value, ok := outcome[key].(float64)
			if !ok {
				return nil, fmt.Errorf("trait influence %v outcome key %s is not numeric", influence["id"], key)
			}
			outcome[key] = value * mult
		}
	}
	return resources, nil
}
