package wizard

import (
	"reflect"
	"testing"
)

func TestParseApps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "blog", []string{"blog"}},
		{"multiple", "blog,shop", []string{"blog", "shop"}},
		{"whitespace", " blog ,  shop ", []string{"blog", "shop"}},
		{"empty segments", "blog,,shop,", []string{"blog", "shop"}},
		{"only separators", " , , ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseApps(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseApps(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
