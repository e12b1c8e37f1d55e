package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	tests := []struct {
		increments int
		filled     int
		percent    string
	}{
		{0, 0, "0.00%"},
		{5, 5, "50.00%"},
		{10, 10, "100.00%"},
		{15, 10, "100.00%"},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		p := NewManualProgressBar(&buf, 10, 10)
		for i := 0; i < test.increments; i++ {
			p.Increment()
		}
		p.Display()

		out := buf.String()
		if got := strings.Count(out, "█"); got != test.filled {
			t.Errorf("%v increments: %v filled cells, want %v",
				test.increments, got, test.filled)
		}
		if !strings.Contains(out, test.percent) {
			t.Errorf("%v increments: output %q does not contain %v",
				test.increments, out, test.percent)
		}
	}
}
