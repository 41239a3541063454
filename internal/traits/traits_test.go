package traits

import (
	"reflect"
	"testing"
)

func TestCatalog(t *testing.T) {
	entries := Catalog()

	t.Run("exactly ninety required traits", func(t *testing.T) {
		if len(entries) != Count {
			t.Fatalf("catalog has %d entries, want %d", len(entries), Count)
		}
		for _, entry := range entries {
			if !entry.Required {
				t.Fatalf("trait %q is not required", entry.Code)
			}
			if entry.Min != MinValue || entry.Max != MaxValue {
				t.Fatalf("trait %q has bounds [%v, %v]", entry.Code, entry.Min, entry.Max)
			}
		}
	})

	t.Run("unique codes", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, entry := range entries {
			if seen[entry.Code] {
				t.Fatalf("duplicate trait code %q", entry.Code)
			}
			seen[entry.Code] = true
		}
	})

	t.Run("availability traits present", func(t *testing.T) {
		byCode := make(map[string]Entry)
		for _, entry := range entries {
			byCode[entry.Code] = entry
		}
		for _, code := range []string{"contact_injury_risk", "soft_tissue_risk", "durability", "volatility_profile"} {
			if _, ok := byCode[code]; !ok {
				t.Fatalf("missing availability trait %q", code)
			}
		}
	})
}

func TestGenerate(t *testing.T) {
	truth := Truth{Overall: 0.72, Volatility: 0.3, InjurySusceptibility: 0.2}

	t.Run("complete and in range", func(t *testing.T) {
		vector, err := Generate("pl_001", "QB", truth)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(vector) != Count {
			t.Fatalf("vector has %d traits, want %d", len(vector), Count)
		}
		for code, value := range vector {
			if value < MinValue || value > MaxValue {
				t.Fatalf("trait %q value %v out of range", code, value)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := Generate("pl_001", "QB", truth)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, err := Generate("pl_001", "QB", truth)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("generation is not deterministic")
		}
	})

	t.Run("player id changes vector", func(t *testing.T) {
		a, _ := Generate("pl_001", "QB", truth)
		b, _ := Generate("pl_002", "QB", truth)
		if reflect.DeepEqual(a, b) {
			t.Fatalf("different players produced identical vectors")
		}
	})

	t.Run("out of domain truth fails", func(t *testing.T) {
		if _, err := Generate("pl_001", "QB", Truth{Overall: 1.5}); err == nil {
			t.Fatalf("expected error for out-of-domain derivation")
		}
	})
}
