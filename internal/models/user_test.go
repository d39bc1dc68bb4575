package models

import "testing"

func TestSubjectIDMatches_Strings(t *testing.T) {
	t.Parallel()

	if !SubjectIDMatches("3", "3") {
		t.Error("stored string \"3\" should match supplied \"3\"")
	}
	if !SubjectIDMatches("deepak-subject-1", "deepak-subject-1") {
		t.Error("non-numeric string ids should match natively")
	}
	if SubjectIDMatches("3", "30") {
		t.Error("\"3\" should not match \"30\"")
	}
	if SubjectIDMatches("deepak-subject-1", "anjali-subject-1") {
		t.Error("distinct string ids should not match")
	}
}

func TestSubjectIDMatches_NumericCoercion(t *testing.T) {
	t.Parallel()

	// JSON numbers come back from the store as int32, int64 or float64
	// depending on the write path; all must match the path string "3".
	stored := []interface{}{int32(3), int64(3), float64(3), 3}
	for _, s := range stored {
		if !SubjectIDMatches(s, "3") {
			t.Errorf("stored %T(%v) should match supplied \"3\"", s, s)
		}
	}

	if SubjectIDMatches(int32(3), "4") {
		t.Error("stored 3 should not match supplied \"4\"")
	}
	if SubjectIDMatches(float64(3.5), "3") {
		t.Error("stored 3.5 should not match supplied \"3\"")
	}
	if !SubjectIDMatches(float64(3.5), "3.5") {
		t.Error("stored 3.5 should match supplied \"3.5\"")
	}
}

func TestSubjectIDMatches_NonNumericSupplied(t *testing.T) {
	t.Parallel()

	if SubjectIDMatches(int32(3), "abc") {
		t.Error("numeric stored id should not match a non-numeric path segment")
	}
	if SubjectIDMatches(nil, "3") {
		t.Error("nil stored id should never match")
	}
	if SubjectIDMatches(true, "true") {
		t.Error("non-string, non-numeric stored ids should never match")
	}
}
