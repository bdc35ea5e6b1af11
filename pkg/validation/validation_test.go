package validation

import "testing"

func TestNewReportIsValid(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Error("new report must start valid")
	}
}

func TestAddErrorInvalidates(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelSchema, Message: "bad value"})
	if r.Valid {
		t.Error("expected invalid after AddError")
	}
	if r.Errors[0].Severity != SeverityError {
		t.Errorf("severity not stamped: %q", r.Errors[0].Severity)
	}
	if r.Summary != "1 errors, 0 warnings, 0 info" {
		t.Errorf("unexpected summary %q", r.Summary)
	}
}

func TestWarningsKeepReportValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelGeometry, Message: "suspicious"})
	r.AddInfo(Result{Level: LevelFeasibility, Message: "fyi"})
	if !r.Valid {
		t.Error("warnings and info must not invalidate")
	}
}

func TestMergePropagatesInvalidity(t *testing.T) {
	a := NewReport()
	a.AddWarning(Result{Level: LevelSchema, Message: "w"})

	b := NewReport()
	b.AddError(Result{Level: LevelGeometry, Message: "e"})

	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid report must invalidate")
	}
	if len(a.Errors) != 1 || len(a.Warnings) != 1 {
		t.Errorf("results not carried over: %d errors, %d warnings", len(a.Errors), len(a.Warnings))
	}

	a.Merge(nil)
	if len(a.Errors) != 1 {
		t.Error("merging nil must be a no-op")
	}
}
