package techstack

import (
	"reflect"
	"testing"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "matches keywords case-insensitively",
			text: "Senior React Engineer with AWS and Docker experience",
			want: []string{"react", "aws", "docker"},
		},
		{
			name: "empty text yields no tags",
			text: "",
			want: nil,
		},
		{
			name: "nextjs keeps canonical display case",
			text: "we need a NEXT.JS developer",
			want: []string{"Next.js"},
		},
		{
			name: "golang matches both go and golang entries",
			text: "Backend engineer (Golang)",
			want: []string{"go", "golang"},
		},
		{
			name: "substring match without word boundaries",
			// "javascript" contains "java": a known false-positive, kept as-is.
			text: "JavaScript developer",
			want: []string{"javascript", "java"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Infer(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestInferNeverInventsTags(t *testing.T) {
	got := Infer("Senior React Engineer with AWS and Docker experience")
	for _, tag := range got {
		if tag == "go" {
			t.Errorf("inferred %q from text that does not contain it", tag)
		}
	}
}
