package main

import (
	"fmt"
	"strings"
	"testing"
)

func Test_usage_formats_cleanly(t *testing.T) {
	usage := fmt.Sprintf(usageFormat, "markdown", 25, false, false)
	if strings.Contains(usage, "%!") {
		t.Fatalf("usage string has formatting artifacts:\n%v", usage)
	}
	for _, want := range []string{"Usage:", "q|query", "t|tools", "p|prompts", "(default 'markdown')", "(default 25)"} {
		if !strings.Contains(usage, want) {
			t.Fatalf("expected usage to contain %q", want)
		}
	}
}
