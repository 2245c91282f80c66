package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "resumes/candidate_1.pdf", want: "resumes/candidate_1.pdf"},
		{name: "simple prefix", prefix: "root", key: "resumes/candidate_1.pdf", want: "root/resumes/candidate_1.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "resumes/candidate_1.pdf", want: "root/resumes/candidate_1.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/resumes/candidate_1.pdf", want: "root/resumes/candidate_1.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "resumes/candidate_1.pdf", want: "root/sub/resumes/candidate_1.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
