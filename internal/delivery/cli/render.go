package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/usecase"
)

func renderOutcome(w io.Writer, outcome *domain.ScanOutcome) {
	p := outcome.Product
	fmt.Fprintf(w, "%s (%s)\n", p.DisplayName(), outcome.Barcode)
	if brands := p.Brands.OrEmpty(); brands != "" {
		fmt.Fprintf(w, "  brand: %s\n", brands)
	}

	if outcome.IsSafe {
		fmt.Fprintln(w, "  verdict: SAFE - none of your avoided ingredients were found")
	} else {
		fmt.Fprintf(w, "  verdict: AVOID - contains %s\n", strings.Join(outcome.FoundIngredients, ", "))
	}

	if text := p.IngredientsText.OrEmpty(); text != "" {
		fmt.Fprintf(w, "  ingredients: %s\n", text)
	}
	if url := p.URL.OrEmpty(); url != "" {
		fmt.Fprintf(w, "  more: %s\n", url)
	}
}

func renderList(w io.Writer, list []string) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No avoided ingredients. Add one with 'safeeat avoid add <ingredient>'.")
		return
	}
	for _, item := range list {
		fmt.Fprintf(w, "- %s\n", item)
	}
}

func renderSummary(w io.Writer, s usecase.Summary) {
	if s.AvoidedCount == 0 {
		fmt.Fprintln(w, "You are not avoiding anything yet. Open settings first.")
	} else {
		line := fmt.Sprintf("You avoid (%d): %s", s.AvoidedCount, strings.Join(s.Preview, ", "))
		if s.More > 0 {
			line += fmt.Sprintf(" +%d more", s.More)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Safe: %d  Avoid: %d\n", s.SafeCount, s.UnsafeCount)
}
