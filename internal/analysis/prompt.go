package analysis

import (
	"fmt"
	"strings"
)

var platforms = []string{
	"YouTube comment sections",
	"TikTok trends and comments",
	"comments on Instagram influencer posts",
	"Facebook groups and WhatsApp communities (the pains shared there)",
	"specialised forums (Reddit, Quora and niche forums)",
}

// BuildPrompt renders the instruction sent with every attempt.
func BuildPrompt(topic string, count int, language string) string {
	var b strings.Builder

	b.WriteString("Act as an expert in Market Intelligence and advanced Social Listening.\n")
	fmt.Fprintf(&b, "The user wants to discover profitable micro-niches inside the broad topic: %q.\n\n", topic)

	b.WriteString("Simulate deep research across these sources of real conversations:\n")
	for i, p := range platforms {
		fmt.Fprintf(&b, "%d. %s.\n", i+1, p)
	}

	fmt.Fprintf(&b, "\nIdentify %d specific micro-niches where demand is real (based on user pains and complaints) but the current offer is weak.\n\n", count)

	b.WriteString("For each micro-niche return:\n")
	b.WriteString("1. A catchy name and a description focused on the user's pain.\n")
	b.WriteString("2. demandScore (0-100): based on how often people comment or ask.\n")
	b.WriteString("3. supplyScore (0-100): based on the quality of existing videos and products.\n")
	b.WriteString("4. opportunityScore (0-100): demand versus supply.\n")
	b.WriteString("5. Trend data for the last 6 months simulating growth.\n")
	b.WriteString("6. 5 high-intent keywords (Google Ads) with volume and CPC labels.\n")
	b.WriteString("7. Supply insights: quality of existing content, number of direct competitors, entry difficulty.\n")
	b.WriteString("8. 2 digital products that would solve the problem.\n")
	b.WriteString("9. Platform insights: what people complain about or ask for on YouTube, TikTok, Google, Instagram, Facebook/WhatsApp and forums.\n\n")

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- All content MUST be written in %s.\n", language)
	b.WriteString("- Focus on real complaints (\"I hate when...\", \"Why does nobody talk about...\", \"Can anyone recommend...\").\n")
	b.WriteString("- Order the niches starting with the highest opportunityScore.\n\n")
	b.WriteString("Answer in strict JSON following the schema.\n")

	return b.String()
}
