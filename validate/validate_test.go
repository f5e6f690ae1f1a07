package validate

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"

	perrors "github.com/randalmurphal/propflow/errors"
	"github.com/randalmurphal/propflow/notify"
	"github.com/randalmurphal/propflow/testutil"
)

func lookupMap(m map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func newTestRegistry(rec *notify.Recorder) (*Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewRegistry(WithLogger(logger), WithNotifier(rec)), &buf
}

func TestValidate_RequiredPresent(t *testing.T) {
	reg, _ := newTestRegistry(&notify.Recorder{})
	reg.RequireProperties("deploy", "host", "port")

	err := reg.Validate(testutil.TestContext(t), lookupMap(map[string]string{"host": "h", "port": "22"}), []string{"deploy"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := map[string]string{"host": "h", "port": "22"}
	if diff := cmp.Diff(want, reg.Observed("deploy")); diff != "" {
		t.Errorf("Observed mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	rec := &notify.Recorder{}
	reg, _ := newTestRegistry(rec)
	reg.RequireProperties("deploy", "host", "user", "key")

	err := reg.Validate(testutil.TestContext(t), lookupMap(map[string]string{"user": "u"}), []string{"deploy"})
	if !perrors.IsMissingProperty(err) {
		t.Fatalf("error = %v, want missing property", err)
	}

	var propErr *perrors.PropertyError
	if !errors.As(err, &propErr) {
		t.Fatalf("error = %T, want *PropertyError", err)
	}
	if propErr.Unit != "deploy" || propErr.Name != "host" {
		t.Errorf("PropertyError = %+v, want deploy/host", propErr)
	}

	// every check runs even after the first failure
	if got := len(rec.OfType(notify.EventPropertyMissing)); got != 2 {
		t.Errorf("missing events = %d, want 2", got)
	}
	if diff := cmp.Diff(map[string]string{"user": "u"}, reg.Observed("deploy")); diff != "" {
		t.Errorf("Observed mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ScopedToPlan(t *testing.T) {
	reg, _ := newTestRegistry(&notify.Recorder{})
	reg.RequireProperty("deploy", "host")
	reg.RequireProperty("publish", "repoUrl")
	reg.RequireProperty("test", "dbUrl")

	lookup := lookupMap(map[string]string{"dbUrl": "jdbc"})
	err := reg.Validate(testutil.TestContext(t), lookup, []string{"test", "deploy", "publish", "deploy"})

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error = %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(merr.Errors), err)
	}
	var units []string
	for _, e := range merr.Errors {
		var pe *perrors.PropertyError
		if errors.As(e, &pe) {
			units = append(units, pe.Unit)
		}
	}
	if diff := cmp.Diff([]string{"deploy", "publish"}, units); diff != "" {
		t.Errorf("failed units mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UnitNotInPlan(t *testing.T) {
	reg, _ := newTestRegistry(&notify.Recorder{})
	reg.RequireProperty("deploy", "host")
	reg.RequireProperty("build", "version")

	err := reg.Validate(testutil.TestContext(t), lookupMap(map[string]string{"version": "1.0"}), []string{"build"})
	if err != nil {
		t.Fatalf("Validate() error = %v, units outside the plan must not be checked", err)
	}
	if got := reg.Pending("deploy"); len(got) != 1 {
		t.Errorf("Pending(deploy) = %v, want the check to stay pending", got)
	}
	if got := reg.Pending("build"); len(got) != 0 {
		t.Errorf("Pending(build) = %v, want drained", got)
	}

	// a drained unit has nothing left to check
	if err := reg.Validate(testutil.TestContext(t), lookupMap(nil), []string{"build"}); err != nil {
		t.Errorf("second Validate() error = %v", err)
	}
}

func TestValidate_Recommended(t *testing.T) {
	rec := &notify.Recorder{}
	reg, logs := newTestRegistry(rec)
	reg.RecommendProperties("deploy", []string{"timeout", "retries"}, "defaults from deploy.yaml")
	reg.RecommendProperty("deploy", "region", "")

	lookup := lookupMap(map[string]string{"retries": "3"})
	if err := reg.Validate(testutil.TestContext(t), lookup, []string{"deploy"}); err != nil {
		t.Fatalf("Validate() error = %v, recommended properties never fail", err)
	}

	events := rec.OfType(notify.EventPropertyRecommended)
	if len(events) != 2 {
		t.Fatalf("recommended events = %d, want 2", len(events))
	}
	if events[0].Property != "timeout" || events[0].Metadata["hint"] != "defaults from deploy.yaml" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Property != "region" || events[1].Metadata != nil {
		t.Errorf("second event = %+v", events[1])
	}
	if events[0].Severity != notify.SeverityWarning {
		t.Errorf("severity = %q, want warning", events[0].Severity)
	}

	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "property=timeout") {
		t.Errorf("missing warning log:\n%s", out)
	}
	if !strings.Contains(out, `hint="defaults from deploy.yaml"`) {
		t.Errorf("warning should carry the hint:\n%s", out)
	}

	want := map[string]string{"retries": "3"}
	if diff := cmp.Diff(want, reg.Observed("deploy")); diff != "" {
		t.Errorf("Observed mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NotifierFromContext(t *testing.T) {
	rec := &notify.Recorder{}
	reg := NewRegistry(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	reg.RequireProperty("deploy", "host")

	ctx := notify.WithNotifier(testutil.TestContext(t), rec)
	_ = reg.Validate(ctx, lookupMap(nil), []string{"deploy"})

	events := rec.OfType(notify.EventPropertyMissing)
	if len(events) != 1 || events[0].Unit != "deploy" {
		t.Errorf("events = %+v", events)
	}
}

func TestValidate_ExplainMissingProperty(t *testing.T) {
	reg, _ := newTestRegistry(&notify.Recorder{})
	reg.RequireProperty("deploy", "host")

	err := perrors.Explain(reg.Validate(testutil.TestContext(t), lookupMap(nil), []string{"deploy"}))

	var cliErr *perrors.CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("error = %T, want *CLIError", err)
	}
	if !strings.Contains(cliErr.Message, "'host'") || !strings.Contains(cliErr.Message, "deploy") {
		t.Errorf("message = %q", cliErr.Message)
	}
}

func TestKindString(t *testing.T) {
	if Required.String() != "required" || Recommended.String() != "recommended" || Kind(7).String() != "unknown" {
		t.Error("unexpected Kind strings")
	}
}
