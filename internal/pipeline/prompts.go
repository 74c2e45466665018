package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/sage/internal/prompts"
)

// ComposePrompt builds a prompt by combining tunable instructions, the
// immutable output spec, and any extra sections (retrieved context, the
// query itself) for a given pipeline stage. Empty sections are skipped.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	sections ...string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	for _, section := range sections {
		if section == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(section)
	}

	return sb.String(), nil
}

// contextSection renders retrieved context as prompt text. Returns "" when
// retrieval found nothing, so ComposePrompt drops the section entirely.
func contextSection(qc Context) string {
	if qc.Empty() {
		return ""
	}

	var sb strings.Builder

	if len(qc.Recent) > 0 {
		sb.WriteString("Recent conversation in this session (oldest first):\n")
		// Recent is ordered newest first; render chronologically.
		for i := len(qc.Recent) - 1; i >= 0; i-- {
			c := qc.Recent[i]
			sb.WriteString("User: ")
			sb.WriteString(c.Query)
			sb.WriteString("\nSage: ")
			sb.WriteString(truncate(c.Answer, 300))
			sb.WriteString("\n")
		}
	}

	if len(qc.Related) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Previously answered related queries:\n")
		for _, c := range qc.Related {
			sb.WriteString("- ")
			sb.WriteString(c.Query)
			sb.WriteString(" (answered by ")
			sb.WriteString(c.Handler)
			sb.WriteString(")\n")
		}
	}

	if qc.Notes != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Accumulated session notes:\n")
		sb.WriteString(truncate(qc.Notes, 1000))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// truncate caps s at limit bytes, backing up to a rune boundary so a
// multi-byte character is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
