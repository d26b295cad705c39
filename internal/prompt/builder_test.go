package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	req := &Request{
		Title:        "Add retry to uploads",
		Body:         "Retries transient failures with backoff.",
		ChangedFiles: "src/upload.go\nsrc/upload_test.go",
		Diff:         "diff --git a/src/upload.go b/src/upload.go\n@@ -1,1 +1,2 @@\n line1\n+line2\n",
	}

	p := Build(req)

	wantParts := []string{
		"You are an expert code reviewer.",
		"PR Title: Add retry to uploads",
		"PR Description: Retries transient failures with backoff.",
		"Changed Files:\nsrc/upload.go\nsrc/upload_test.go",
		"Code Diff:\ndiff --git a/src/upload.go",
		"Format your response as a JSON object",
		"line_comments (array of objects with file, line, concern, suggestion)",
	}
	for _, want := range wantParts {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuild_EmptyFields(t *testing.T) {
	p := Build(&Request{})

	if !strings.Contains(p, "PR Title: \n") {
		t.Error("empty title should still render its label")
	}
	if !strings.Contains(p, "Format your response as a JSON object") {
		t.Error("instructions missing")
	}
}
