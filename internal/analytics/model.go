package analytics

// FilterValues holds the distinct values the listing UI can filter on.
type FilterValues struct {
	Skills []string `json:"skills"`
	Cities []string `json:"cities"`
}

// Summary is the dashboard payload.
type Summary struct {
	SkillDistribution      map[string]int64 `json:"skill_distribution"`
	ExperienceDistribution map[string]int64 `json:"experience_distribution"`
}

// Experience buckets, half-open on the right: [0,2), [2,5), [5,10), [10,∞).
const (
	BucketJunior    = "0-2 years"
	BucketMid       = "2-5 years"
	BucketSenior    = "5-10 years"
	BucketPrincipal = "10+ years"
)

// ExperienceBuckets enumerates every bucket label in display order.
var ExperienceBuckets = []string{BucketJunior, BucketMid, BucketSenior, BucketPrincipal}

// BucketExperience assigns each value to its bucket. Every bucket is present
// in the result even when empty; negative values are dropped.
func BucketExperience(years []float64) map[string]int64 {
	out := make(map[string]int64, len(ExperienceBuckets))
	for _, label := range ExperienceBuckets {
		out[label] = 0
	}
	for _, y := range years {
		if label := bucketLabel(y); label != "" {
			out[label]++
		}
	}
	return out
}

func bucketLabel(years float64) string {
	switch {
	case years < 0:
		return ""
	case years < 2:
		return BucketJunior
	case years < 5:
		return BucketMid
	case years < 10:
		return BucketSenior
	default:
		return BucketPrincipal
	}
}
