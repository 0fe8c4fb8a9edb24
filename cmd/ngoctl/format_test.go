package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

func TestFormatINR(t *testing.T) {
	got := formatINR(1500000)
	if !strings.HasPrefix(got, "₹") || !strings.HasSuffix(got, ".00") {
		t.Fatalf("unexpected rupee format %q", got)
	}
	if !strings.Contains(got, ",") {
		t.Fatalf("expected digit grouping in %q", got)
	}
}

func TestFormatAmountForeignCurrency(t *testing.T) {
	got := formatAmount(12.5, "usd")
	if !strings.HasSuffix(got, " USD") || !strings.HasPrefix(got, "12.50") {
		t.Fatalf("unexpected amount %q", got)
	}
	if formatAmount(10, "") != formatINR(10) {
		t.Fatal("empty currency should format as INR")
	}
}

func TestPrintGrants(t *testing.T) {
	var buf bytes.Buffer
	err := printGrants(&buf, []models.Grant{
		{ID: "1", Title: "Tata Trusts Education Grant", Category: "Education", Amount: 500000, Deadline: "2024-12-31", Status: "active"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "Tata Trusts Education Grant") {
		t.Fatalf("unexpected table %q", buf.String())
	}
}

func TestOrDash(t *testing.T) {
	if orDash("") != "-" || orDash("US") != "US" {
		t.Fatal("orDash mismatch")
	}
}
