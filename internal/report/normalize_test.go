package report

import "testing"

func TestPadLeadingZeros(t *testing.T) {
	got := PadLeadingZeros([]string{"42", "123456", "7"}, 6)
	want := []string{"000042", "123456", "000007"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PadLeadingZeros[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPadLeadingZerosNeverTruncates(t *testing.T) {
	if got := PadLeadingZerosValue("1234567", 6); got != "1234567" {
		t.Fatalf("over-length value = %q, want unchanged", got)
	}
}

func TestFormatName(t *testing.T) {
	if got := FormatName(Ptr("Smith, Jane")); got == nil || *got != "Jane Smith" {
		t.Fatalf("FormatName(Smith, Jane) = %v", deref(got))
	}
	if got := FormatName(Ptr("Smith Jane")); got == nil || *got != "Smith Jane" {
		t.Fatalf("no-comma name should pass through, got %v", deref(got))
	}
	if got := FormatName(Ptr("Smith, Jane, Jr")); got == nil || *got != "Smith, Jane, Jr" {
		t.Fatalf("multi-comma name should pass through, got %v", deref(got))
	}
	if got := FormatName(nil); got != nil {
		t.Fatalf("FormatName(nil) = %v, want nil", *got)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
