// Command validate checks a crash-count GeoJSON dataset before it is served.
// It decodes the file, indexes it, and verifies year coverage, numeric ids,
// and that a map projection can be built from its geometry.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/wards.geojson
//
// Without -dataset the bundled sample is checked.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/crash-map/internal/dataset"
	"github.com/couchcryptid/crash-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("dataset", "", "path to the GeoJSON dataset (default: bundled sample)")
	flag.Parse()

	if code := run(*path, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Crash Dataset Validation ===")
	fmt.Fprintln(out)

	features, err := dataset.Load(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load dataset: %v\n", err)
		return 1
	}

	ix, structure := validateStructure(features)
	phases := []*phase{structure}
	if ix != nil {
		phases = append(phases,
			validateYearCoverage(ix),
			validateIdentifiers(ix),
			validateProjection(ix),
		)
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Features: %d decoded, %d distinct ids\n", len(features), ix.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Structure ──

func validateStructure(features []domain.Feature) (*domain.FeatureIndex, *phase) {
	p := &phase{name: "Phase 1: Structure"}

	ix, err := domain.IndexFeatures(features)
	if err != nil {
		p.errorf("%v", err)
		return nil, p
	}
	if ix.Len() == 0 {
		p.errorf("dataset has no features")
	}
	if dups := len(features) - ix.Len(); dups > 0 {
		p.errorf("%d duplicate feature ids (later features replace earlier ones)", dups)
	}
	for _, f := range ix.Features() {
		if f.Name == "" {
			p.errorf("feature %s: missing %q property", f.ID, dataset.NameProperty)
		}
	}
	return ix, p
}

// ── Phase 2: Year coverage ──

func validateYearCoverage(ix *domain.FeatureIndex) *phase {
	p := &phase{name: "Phase 2: Year Coverage"}

	for _, f := range ix.Features() {
		for _, y := range domain.Years {
			n, ok := f.Counts[y]
			switch {
			case !ok:
				p.errorf("feature %s: no count for %s", f.ID, y)
			case n < 0:
				p.errorf("feature %s: negative count %d for %s", f.ID, n, y)
			}
		}
	}
	return p
}

// ── Phase 3: Identifiers ──

func validateIdentifiers(ix *domain.FeatureIndex) *phase {
	p := &phase{name: "Phase 3: Numeric Identifiers"}

	for _, id := range ix.IDs() {
		if _, err := domain.ParseNumericID(id); err != nil {
			p.errorf("%v", err)
		}
	}
	return p
}

// ── Phase 4: Projection ──

func validateProjection(ix *domain.FeatureIndex) *phase {
	p := &phase{name: "Phase 4: Projection"}

	for _, mode := range []domain.BoundsMode{domain.BoundsIndependent, domain.BoundsCoupled} {
		opts := domain.DefaultProjectionOptions()
		opts.Bounds = mode

		proj, err := domain.BuildProjection(ix, opts)
		if err != nil {
			p.errorf("%s bounds: %v", mode, err)
			continue
		}
		for _, f := range ix.Features() {
			if proj.Path(f) == "" {
				p.errorf("%s bounds: feature %s renders an empty path", mode, f.ID)
			}
		}
	}
	return p
}
