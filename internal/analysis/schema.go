package analysis

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func float(v float64) *float64 { return &v }

func array(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

// ResponseSchema describes an AnalysisResult. Every niche field is required
// except id, which Normalize backfills.
func ResponseSchema() *genai.Schema {
	score := &genai.Schema{Type: genai.TypeInteger, Minimum: float(0), Maximum: float(100)}

	niche := object(
		[]string{
			"name", "description", "demandScore", "supplyScore", "opportunityScore",
			"trendData", "keywords", "supplyInsights", "products", "platformInsights",
		},
		map[string]*genai.Schema{
			"id":               str(),
			"name":             str(),
			"description":      str(),
			"demandScore":      score,
			"supplyScore":      score,
			"opportunityScore": score,
			"trendData": array(object([]string{"month", "value"}, map[string]*genai.Schema{
				"month": str(),
				"value": {Type: genai.TypeNumber},
			})),
			"keywords": array(object([]string{"term", "volume", "cpc"}, map[string]*genai.Schema{
				"term":   str(),
				"volume": str(),
				"cpc":    str(),
			})),
			"supplyInsights": object([]string{"qualityAssessment", "competitorCount", "entryDifficulty"}, map[string]*genai.Schema{
				"qualityAssessment": str(),
				"competitorCount":   str(),
				"entryDifficulty":   str(),
			}),
			"products": array(object([]string{"type", "title", "description"}, map[string]*genai.Schema{
				"type":        str(),
				"title":       str(),
				"description": str(),
			})),
			"platformInsights": object(platformKeys, map[string]*genai.Schema{
				"youtube":   str(),
				"tiktok":    str(),
				"google":    str(),
				"instagram": str(),
				"facebook":  str(),
				"forums":    str(),
			}),
		},
	)

	return object([]string{"topic", "niches"}, map[string]*genai.Schema{
		"topic":  str(),
		"niches": array(niche),
	})
}

var platformKeys = []string{"youtube", "tiktok", "google", "instagram", "facebook", "forums"}
