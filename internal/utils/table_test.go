package utils

import (
	"strings"
	"testing"
)

func TestRenderCSVTable(t *testing.T) {
	csv := "name,region\nbucket-a,us-east-1\nbucket-b,eu-west-1\n"
	got, err := RenderCSVTable(csv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(got, "| name     | region    |") {
		t.Errorf("expected aligned header, got:\n%v", got)
	}
	if !strings.Contains(got, "| bucket-a | us-east-1 |") {
		t.Errorf("expected aligned row, got:\n%v", got)
	}
	if !strings.Contains(got, "|----------|") {
		t.Errorf("expected header separator, got:\n%v", got)
	}
}

func TestRenderCSVTable_Ragged(t *testing.T) {
	csv := "a,b,c\n1,2\n"
	got, err := RenderCSVTable(csv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(got, "| 1 | 2 |   |") {
		t.Errorf("expected padded short row, got:\n%v", got)
	}
}

func TestRenderCSVTable_Empty(t *testing.T) {
	got, err := RenderCSVTable("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
