package terms

import (
	"strings"
	"testing"
)

func TestRender_SanitizesScript(t *testing.T) {
	svc := NewService()

	out, err := svc.Render("# Terms\n\n<script>alert(1)</script>\n\nRoyalty is **100** units.")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Error("rendered terms contain a script tag")
	}
	if !strings.Contains(out, "<strong>100</strong>") {
		t.Errorf("markdown emphasis not rendered: %s", out)
	}
}

func TestDigest_Deterministic(t *testing.T) {
	svc := NewService()

	doc := "# Terms\n\nNon-exclusive, perpetual."
	first := svc.Digest(doc)
	second := svc.Digest(doc)
	if first != second {
		t.Errorf("digest not deterministic: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(first))
	}
	if svc.Digest(doc+" ") == first {
		t.Error("digest unchanged after edit")
	}
}
