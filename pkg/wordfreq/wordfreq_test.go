package wordfreq

import (
	"reflect"
	"testing"
)

func TestFrequencies(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "stopwords dropped",
			text: "the golang compiler and the golang runtime",
			want: map[string]int{"golang": 2, "compiler": 1, "runtime": 1},
		},
		{
			name: "case folded and punctuation trimmed",
			text: "Docker, docker! DOCKER.",
			want: map[string]int{"docker": 3},
		},
		{
			name: "spanish stopwords dropped",
			text: "el tutorial de terraform para todos",
			want: map[string]int{"tutorial": 1, "terraform": 1},
		},
		{
			name: "ui noise dropped",
			text: "click the login button to search",
			want: map[string]int{},
		},
		{
			name: "empty text",
			text: "",
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Frequencies(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Frequencies(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	got := Merge([]map[string]int{
		{"golang": 2, "docker": 1},
		{"docker": 3, "kubernetes": 1},
	})
	want := map[string]int{"golang": 2, "docker": 4, "kubernetes": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
}

func TestTop(t *testing.T) {
	freqs := map[string]int{
		"golang": 3, "docker": 3, "kubernetes": 1, "terraform": 2,
	}

	got := Top(freqs, 3)
	// Ties break alphabetically, so docker sorts before golang.
	want := []string{"docker:3", "golang:3", "terraform:2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Top() = %v, want %v", got, want)
	}
}

func TestTop_NLargerThanInput(t *testing.T) {
	got := Top(map[string]int{"golang": 1}, 25)
	if len(got) != 1 || got[0] != "golang:1" {
		t.Errorf("Top() = %v, want [golang:1]", got)
	}
}
