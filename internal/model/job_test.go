package model

import (
	"strings"
	"testing"
)

func TestDerivePostingID(t *testing.T) {
	byJobID := JobPosting{Source: SourceAmazon, JobID: "123", URL: "https://www.amazon.jobs/en/jobs/123"}

	first := DerivePostingID(byJobID)
	second := DerivePostingID(byJobID)
	if first != second {
		t.Errorf("id not deterministic: %s vs %s", first, second)
	}
	if len(first) != 40 {
		t.Errorf("expected sha1 hex id, got %q", first)
	}

	// job_id wins over url, so dropping the url must not change the id.
	noURL := byJobID
	noURL.URL = ""
	if DerivePostingID(noURL) != first {
		t.Error("id changed when url was dropped but job_id kept")
	}

	otherSource := byJobID
	otherSource.Source = SourceWorkday
	if DerivePostingID(otherSource) == first {
		t.Error("same job_id from different sources must not collide")
	}

	byURL := JobPosting{Source: SourceNetflix, URL: "https://explore.jobs.netflix.net/careers/job/790298"}
	if DerivePostingID(byURL) != DerivePostingID(byURL) {
		t.Error("url-seeded id not deterministic")
	}

	anon := JobPosting{Source: SourceNetflix, Title: "Engineer"}
	if DerivePostingID(anon) == DerivePostingID(anon) {
		t.Error("posting without job_id or url should get a random id each time")
	}
}

func TestTruncateSnippet(t *testing.T) {
	short := "a short snippet"
	if got := TruncateSnippet(short); got != short {
		t.Errorf("short snippet altered: %q", got)
	}

	long := strings.Repeat("x", MaxSnippetLen+100)
	got := TruncateSnippet(long)
	if len([]rune(got)) != MaxSnippetLen {
		t.Errorf("expected %d runes, got %d", MaxSnippetLen, len([]rune(got)))
	}

	// Rune cap, not byte cap: multibyte text must not be split mid-rune.
	hindi := strings.Repeat("अ", MaxSnippetLen+10)
	got = TruncateSnippet(hindi)
	if len([]rune(got)) != MaxSnippetLen {
		t.Errorf("expected %d runes for multibyte text, got %d", MaxSnippetLen, len([]rune(got)))
	}
	for _, r := range got {
		if r != 'अ' {
			t.Fatalf("rune corrupted to %q", r)
		}
	}
}
