// Package docsource defines the boundary to the external document/OCR
// collaborator. The core never parses binary document formats itself; it
// consumes page-indexed plain text plus a density signal.
package docsource

import (
	"context"
	"strings"
)

type Page struct {
	Index int // 1-based
	Text  string
}

// Result is what the external collaborator hands back. Density is the
// fraction of pages carrying any text, a cheap signal that the document
// was readable at all.
type Result struct {
	Pages   []Page
	Density float64
}

// Source turns raw document bytes into page-indexed text. Implementations
// must honor ctx cancellation; callers bound every call with a timeout.
type Source interface {
	ExtractText(ctx context.Context, data []byte) (Result, error)
}

// PlainText treats the input as UTF-8 text with form-feed page breaks.
// It is the reference implementation used by the CLI and tests; PDF and
// OCR sources plug in behind the same interface.
type PlainText struct{}

func (PlainText) ExtractText(ctx context.Context, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	raw := strings.Split(string(data), "\f")
	res := Result{Pages: make([]Page, 0, len(raw))}
	nonEmpty := 0
	for i, text := range raw {
		res.Pages = append(res.Pages, Page{Index: i + 1, Text: text})
		if strings.TrimSpace(text) != "" {
			nonEmpty++
		}
	}
	if len(res.Pages) > 0 {
		res.Density = float64(nonEmpty) / float64(len(res.Pages))
	}
	return res, nil
}
