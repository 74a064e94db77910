package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/otuschhoff/dskusage/internal/aggregate"
	"github.com/otuschhoff/dskusage/internal/format"
)

func TestTableIncludesEveryRootAndTotal(t *testing.T) {
	results := []aggregate.RootResult{
		{Path: "/a", Bytes: 100},
		{Path: "/b", Bytes: 200},
	}
	out := Table(format.New(format.Bytes), results)
	if !strings.Contains(out, "/a") || !strings.Contains(out, "/b") {
		t.Errorf("table output missing a root path: %s", out)
	}
	if !strings.Contains(out, "total") {
		t.Errorf("table output missing total row: %s", out)
	}
}

func TestJSONRoundTrips(t *testing.T) {
	results := []aggregate.RootResult{
		{Path: "/a", Bytes: 100, NumErrors: 1},
	}
	out, err := JSON(results)
	if err != nil {
		t.Fatal(err)
	}

	var decoded jsonOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Roots) != 1 || decoded.Roots[0].Path != "/a" {
		t.Errorf("decoded = %+v, want one root /a", decoded)
	}
	if decoded.TotalBytes != 100 {
		t.Errorf("TotalBytes = %d, want 100", decoded.TotalBytes)
	}
}
