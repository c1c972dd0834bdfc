package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nichescope/internal/models"
)

// minIDLength is the shortest niche id taken as is from the service.
const minIDLength = 6

// Normalize repairs a decoded response before it enters the data model:
// it fills a missing topic, replaces absent or too short niche ids with
// <topic-slug>-<index>-<unix millis>, makes ids unique within the result and
// turns nil slices into empty ones.
func Normalize(topic string, res *models.AnalysisResult, now time.Time) {
	if strings.TrimSpace(res.Topic) == "" {
		res.Topic = topic
	}
	if res.Niches == nil {
		res.Niches = []models.Niche{}
	}

	seen := make(map[string]struct{}, len(res.Niches))
	for i := range res.Niches {
		n := &res.Niches[i]

		if len(n.ID) < minIDLength {
			n.ID = fmt.Sprintf("%s-%d-%d", slug(topic), i, now.UnixMilli())
		}
		if _, dup := seen[n.ID]; dup {
			base := n.ID
			for k := 2; ; k++ {
				n.ID = fmt.Sprintf("%s-%d", base, k)
				if _, dup := seen[n.ID]; !dup {
					break
				}
			}
		}
		seen[n.ID] = struct{}{}

		if n.TrendData == nil {
			n.TrendData = []models.TrendPoint{}
		}
		if n.Keywords == nil {
			n.Keywords = []models.Keyword{}
		}
		if n.Products == nil {
			n.Products = []models.ProductOpportunity{}
		}
	}
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
