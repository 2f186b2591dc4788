package cli

import (
	"context"
	"fmt"
	"strings"
)

func resolveSyllabusID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("syllabus ID is required")
	}
	syllabi, err := app.Syllabi.List(ctx, app.userID)
	if err != nil {
		return "", err
	}
	for _, s := range syllabi {
		if s.ID == input {
			return s.ID, nil
		}
	}
	var matches []string
	for _, s := range syllabi {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("syllabus not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("syllabus ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveExtractionID(ctx context.Context, app *App, syllabusID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("extraction ID is required")
	}
	extractions, err := app.Syllabi.ListExtractions(ctx, app.userID, syllabusID)
	if err != nil {
		return "", err
	}
	for _, e := range extractions {
		if e.ID == input {
			return e.ID, nil
		}
	}
	var matches []string
	for _, e := range extractions {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("extraction not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("extraction ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
