package feeds

import "testing"

func TestCleanHTMLStripsMarkup(t *testing.T) {
	in := `<p>Rift Valley fever <b>confirmed</b> in cattle.</p><img src="x.jpg"/>`
	want := "Rift Valley fever confirmed in cattle."
	if got := CleanHTML(in); got != want {
		t.Errorf("CleanHTML() = %q, want %q", got, want)
	}
}

func TestCleanHTMLDecodesEntities(t *testing.T) {
	got := CleanHTML("Sheep &amp; goats quarantined")
	if got != "Sheep & goats quarantined" {
		t.Errorf("entities not decoded: %q", got)
	}
}

func TestCleanHTMLCollapsesWhitespace(t *testing.T) {
	got := CleanHTML("plain   text\n\nwith   gaps")
	if got != "plain text with gaps" {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestCleanHTMLEmptyInput(t *testing.T) {
	if got := CleanHTML(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
