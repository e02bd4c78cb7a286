// File: services/estimate/prompts.go
package estimate

import (
	"fmt"
	"strings"

	"clearcare/models"
)

const severityPromptTmpl = `You are a medical triage assistant. Classify how soon the patient should seek the care described. Respond with JSON only, no prose:
{"urgency": "routine" | "soon" | "urgent", "reason": "<one short sentence>"}

Care needed: %s
Medical history: %s`

const answerPromptTmpl = `You are a healthcare cost advisor. Using ONLY the facts below, write a response for the patient. Respond with JSON only, no prose:
{"headline": "<one-line cost takeaway with a dollar figure>", "spoken_summary": "<2-3 conversational sentences suitable for reading aloud>", "next_step": "<one concrete action the patient should take>"}

Facts:
%s`

const critiquePromptTmpl = `You are a strict reviewer of healthcare cost answers. Score the draft against the facts on four dimensions, each an integer 0-100. Respond with JSON only, no prose:
{"completeness": <int>, "accuracy": <int>, "clarity": <int>, "safety": <int>, "feedback": "<one sentence naming the weakest part>"}

Facts:
%s

Draft:
headline: %s
spoken_summary: %s
next_step: %s`

func severityPrompt(careNeeded, medicalHistory string) string {
	if medicalHistory == "" {
		medicalHistory = "none provided"
	}
	return fmt.Sprintf(severityPromptTmpl, careNeeded, medicalHistory)
}

func answerPrompt(facts Facts, feedback string) string {
	prompt := fmt.Sprintf(answerPromptTmpl, renderFacts(facts))
	if feedback != "" {
		prompt += "\n\nA reviewer rejected the previous draft. Fix this before anything else: " + feedback
	}
	return prompt
}

func critiquePrompt(facts Facts, draft models.Draft) string {
	return fmt.Sprintf(critiquePromptTmpl, renderFacts(facts), draft.Headline, draft.SpokenSummary, draft.NextStep)
}

// renderFacts flattens the run facts into prompt lines. Only resolved
// data is included so the model cannot invent figures for missing ones.
func renderFacts(f Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- procedure: %s\n", f.CareNeeded)
	fmt.Fprintf(&b, "- zip code: %s\n", f.ZipCode)
	fmt.Fprintf(&b, "- plan: %s (%s)\n", f.Plan.PlanName, f.Plan.PlanType)
	if f.UsedDefaults {
		b.WriteString("- no plan was supplied; standard Medicare rates assumed\n")
	}
	fmt.Fprintf(&b, "- urgency: %s", f.Severity.Urgency)
	if f.Severity.Reason != nil {
		fmt.Fprintf(&b, " (%s)", *f.Severity.Reason)
	}
	b.WriteString("\n")
	if len(f.Hospitals) == 0 {
		b.WriteString("- no providers were found near this zip code\n")
	}
	for _, h := range f.Hospitals {
		if h.EstimatedCost != nil {
			fmt.Fprintf(&b, "- provider: %s, %s, estimated out-of-pocket $%.0f\n", h.Name, h.NetworkStatus, *h.EstimatedCost)
		} else {
			fmt.Fprintf(&b, "- provider: %s, %s, cost unknown\n", h.Name, h.NetworkStatus)
		}
	}
	if f.Alternative != nil {
		fmt.Fprintf(&b, "- cheaper alternative: %s at about $%.0f\n", f.Alternative.Description, f.Alternative.EstimatedCost)
	}
	return b.String()
}
