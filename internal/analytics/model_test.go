package analytics

import "testing"

func TestBucketExperienceEdges(t *testing.T) {
	tests := []struct {
		years float64
		want  string
	}{
		{0, BucketJunior},
		{1.9, BucketJunior},
		{2.0, BucketMid}, // lower edge belongs to the higher bucket
		{4.99, BucketMid},
		{5.0, BucketSenior},
		{9.99, BucketSenior},
		{10.0, BucketPrincipal},
		{42, BucketPrincipal},
	}
	for _, tt := range tests {
		if got := bucketLabel(tt.years); got != tt.want {
			t.Errorf("bucketLabel(%v) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestBucketExperienceZeroFillsAndDropsNegatives(t *testing.T) {
	dist := BucketExperience([]float64{-1, 3})
	if len(dist) != len(ExperienceBuckets) {
		t.Fatalf("expected %d buckets, got %d", len(ExperienceBuckets), len(dist))
	}
	for _, label := range ExperienceBuckets {
		if _, ok := dist[label]; !ok {
			t.Errorf("missing bucket %q", label)
		}
	}
	if dist[BucketMid] != 1 {
		t.Errorf("expected one mid-bucket entry, got %d", dist[BucketMid])
	}
	if total := dist[BucketJunior] + dist[BucketMid] + dist[BucketSenior] + dist[BucketPrincipal]; total != 1 {
		t.Errorf("negative value must be dropped, total = %d", total)
	}
}
