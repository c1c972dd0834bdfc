package models

// TrendPoint is one month of a niche's interest series.
type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Keyword is a search term with free-text volume and cost labels
// ("10k+", "$2.50").
type Keyword struct {
	Term   string `json:"term"`
	Volume string `json:"volume"`
	CPC    string `json:"cpc"`
}

// ProductOpportunity is a product idea that would serve the niche.
type ProductOpportunity struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SupplyInsights are free-text labels about the current offer.
type SupplyInsights struct {
	QualityAssessment string `json:"qualityAssessment"`
	CompetitorCount   string `json:"competitorCount"`
	EntryDifficulty   string `json:"entryDifficulty"`
}

// PlatformInsights summarise what people ask for on each platform.
// Facebook also covers WhatsApp communities; Forums covers Reddit and Quora.
type PlatformInsights struct {
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
	Google    string `json:"google"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Forums    string `json:"forums"`
}

// Niche is one market opportunity returned by the completion service.
// Scores are 0-100 and are never recomputed locally.
type Niche struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	DemandScore      int                  `json:"demandScore"`
	SupplyScore      int                  `json:"supplyScore"`
	OpportunityScore int                  `json:"opportunityScore"`
	TrendData        []TrendPoint         `json:"trendData"`
	Keywords         []Keyword            `json:"keywords"`
	SupplyInsights   SupplyInsights       `json:"supplyInsights"`
	Products         []ProductOpportunity `json:"products"`
	PlatformInsights PlatformInsights     `json:"platformInsights"`
}

// Clone returns a deep copy so saved niches never share slices with search
// results.
func (n Niche) Clone() Niche {
	c := n
	c.TrendData = cloneSlice(n.TrendData)
	c.Keywords = cloneSlice(n.Keywords)
	c.Products = cloneSlice(n.Products)
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// AnalysisResult is the structured answer for one topic search.
type AnalysisResult struct {
	Topic  string  `json:"topic"`
	Niches []Niche `json:"niches"`
}
