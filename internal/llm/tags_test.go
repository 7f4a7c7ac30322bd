package llm

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "three clean tags",
			raw:  "#golang\n#coding\n#tips",
			want: []string{"#golang", "#coding", "#tips"},
		},
		{
			name: "junk stripped and bullets removed",
			raw:  "Here are your tags:\n- #Fun!\n* #dev ops\n",
			want: []string{"#Fun", "#devops", "#shorts"},
		},
		{
			name: "extra tags dropped after three",
			raw:  "#a1\n#b2\n#c3\n#d4\n#e5",
			want: []string{"#a1", "#b2", "#c3"},
		},
		{
			name: "no usable tags pads with defaults in order",
			raw:  "The transcript discusses cooking.",
			want: []string{"#shorts", "#video", "#daily"},
		},
		{
			name: "marker-only lines discarded",
			raw:  "#\n###\n#real",
			want: []string{"#real", "#shorts", "#video"},
		},
		{
			name: "empty input",
			raw:  "",
			want: []string{"#shorts", "#video", "#daily"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeTags(tt.raw)
			if len(got) != tagCount {
				t.Fatalf("len = %d, want exactly %d", len(got), tagCount)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTags() = %v, want %v", got, tt.want)
			}
		})
	}
}
