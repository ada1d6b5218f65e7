package story

import (
	"fmt"
	"strings"
)

// Separator joins descriptions in the prompt; it preserves selection order.
const Separator = " -> "

const orderMarker = "Order of descriptions: "

const promptRules = `
[Writing rules]
1. Never add a title; start directly with the story.
2. Do not use markdown or special characters such as **, # or -.
3. Write plain text only.
4. Let the sentences flow into each other and fill the gaps between them with imagination.
5. However many descriptions there are, enrich what happens between them. Do not just repeat the descriptions.`

// BuildPrompt embeds the ordered descriptions in the generation prompt.
func BuildPrompt(descriptions []string) string {
	return "Connect the following descriptions, in order, into one continuous short story. " +
		orderMarker + strings.Join(descriptions, Separator) + "\n" + promptRules
}

// descriptionsFromPrompt recovers the ordered descriptions from a prompt
// built by BuildPrompt.
func descriptionsFromPrompt(prompt string) []string {
	i := strings.Index(prompt, orderMarker)
	if i < 0 {
		return nil
	}
	body := prompt[i+len(orderMarker):]
	if j := strings.Index(body, "\n[Writing rules]"); j >= 0 {
		body = body[:j]
	}
	var out []string
	for _, part := range strings.Split(body, strings.TrimSpace(Separator)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Fallback is the story shown when the generation service cannot be
// reached. It is built only from the chosen descriptions.
func Fallback(descriptions []string) string {
	return summarize("Offline story", descriptions,
		"(A longer story is written once the story service is reachable.)")
}

func summarize(label string, descriptions []string, note string) string {
	head := descriptions
	if len(head) > 3 {
		head = head[:3]
	}
	flat := make([]string, len(head))
	for i, d := range head {
		flat[i] = strings.Join(strings.Fields(d), " ")
	}
	return fmt.Sprintf("%s: %s...\n\n%s", label, strings.Join(flat, " → "), note)
}
