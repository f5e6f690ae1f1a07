package propflow

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/randalmurphal/propflow/config"
	"github.com/randalmurphal/propflow/notify"
	"github.com/randalmurphal/propflow/project"
	"github.com/randalmurphal/propflow/sysprop"
	"github.com/randalmurphal/propflow/testutil"
)

const testUserHome = "/home/dev/.gradle"

func newTestPlugin(t *testing.T, fsys afero.Fs, opts ...Option) *Plugin {
	t.Helper()

	base := []Option{
		WithFs(fsys),
		WithUserHome(testUserHome),
		WithEnviron(func() []string { return nil }),
		WithSystemProps(sysprop.NewMapStore(nil)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	p, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestApplyProject_WritesBack(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle.properties", "appName=demo\nlogDir=/var/log\n")
	testutil.WriteFile(t, fsys, "/work/api/gradle.properties", "appName=api\n")
	nodes := testutil.Hierarchy("/work", "api")

	p := newTestPlugin(t, fsys, WithOverrides(map[string]string{"buildNumber": "7"}))
	ctx := testutil.TestContext(t)

	res, err := p.ApplyProject(ctx, nodes[1])
	if err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}

	for key, want := range map[string]string{"appName": "api", "logDir": "/var/log", "buildNumber": "7", "environmentName": "local"} {
		if got, _ := nodes[1].Props.Lookup(key); got != want {
			t.Errorf("Props[%s] = %q, want %q", key, got, want)
		}
	}

	tokens, ok := nodes[1].Ext[FilterTokensKey].(config.TokenMap)
	if !ok {
		t.Fatalf("Ext[%s] = %T, want config.TokenMap", FilterTokensKey, nodes[1].Ext[FilterTokensKey])
	}
	if diff := cmp.Diff(res.Tokens(), tokens); diff != "" {
		t.Errorf("published tokens mismatch (-want +got):\n%s", diff)
	}
	if tokens["app.name"] != "api" || tokens["log.dir"] != "/var/log" {
		t.Errorf("segmented tokens = %v", tokens)
	}

	if _, ok := nodes[0].Ext[FilterTokensKey]; ok {
		t.Error("resolving a child must not publish tokens on its parent")
	}
}

func TestApplyProject_Idempotent(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle.properties", "a=1\n")
	node := testutil.Hierarchy("/work")[0]
	p := newTestPlugin(t, fsys)
	ctx := testutil.TestContext(t)

	if _, err := p.ApplyProject(ctx, node); err != nil {
		t.Fatalf("first ApplyProject() error = %v", err)
	}

	testutil.WriteFile(t, fsys, "/work/gradle.properties", "a=2\n")
	res, err := p.ApplyProject(ctx, node)
	if err != nil {
		t.Fatalf("second ApplyProject() error = %v", err)
	}
	if res != nil {
		t.Error("second ApplyProject() should be a no-op")
	}
	if got, _ := node.Props.Lookup("a"); got != "1" {
		t.Errorf("a = %q, want the first resolution to stand", got)
	}
}

func TestApplyProject_MetaFromHost(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle-qa.properties", "db=qa-db\n")
	testutil.WriteFile(t, fsys, testUserHome+"/gradle-alice.properties", "token=abc\n")
	node := testutil.Hierarchy("/work")[0]
	node.Props.Set("environmentName", "qa")

	p := newTestPlugin(t, fsys, WithEnviron(func() []string {
		return []string{"ORG_GRADLE_PROJECT_gradleUserName=alice"}
	}))

	res, err := p.ApplyProject(testutil.TestContext(t), node)
	if err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if res.EnvName != "qa" {
		t.Errorf("EnvName = %q, want qa", res.EnvName)
	}
	for key, want := range map[string]string{"db": "qa-db", "token": "abc", "gradleUserName": "alice"} {
		if got := res.Namespace.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestApplyProject_MetaIndirection(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle-stage.properties", "x=staged\n")
	node := testutil.Hierarchy("/work")[0]

	p := newTestPlugin(t, fsys, WithOverrides(map[string]string{
		"propertiesPluginEnvironmentNameProperty": "deployEnv",
		"deployEnv": "stage",
	}))

	res, err := p.ApplyProject(testutil.TestContext(t), node)
	if err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if res.Namespace.Get("x") != "staged" || res.Namespace.Get("deployEnv") != "stage" {
		t.Errorf("namespace = %v", res.Namespace.All())
	}
	if res.Namespace.Has("environmentName") {
		t.Error("environmentName is not the environment property here")
	}
}

func TestApplyProject_InheritsParentMeta(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle-qa.properties", "")
	testutil.WriteFile(t, fsys, "/work/lib/gradle-qa.properties", "libOnly=1\n")
	nodes := testutil.Hierarchy("/work", "lib")
	nodes[0].Props.Set("environmentName", "qa")

	p := newTestPlugin(t, fsys)
	res, err := p.ApplyProject(testutil.TestContext(t), nodes[1])
	if err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if res.EnvName != "qa" || res.Namespace.Get("libOnly") != "1" {
		t.Errorf("EnvName = %q, namespace = %v", res.EnvName, res.Namespace.All())
	}
}

func TestApplyProject_Error(t *testing.T) {
	node := testutil.Hierarchy("/work")[0]
	p := newTestPlugin(t, testutil.NewFs(), WithOverrides(map[string]string{"environmentName": "prod"}))

	_, err := p.ApplyProject(testutil.TestContext(t), node)
	if err == nil {
		t.Fatal("ApplyProject() should fail without a prod environment file")
	}
	if _, ok := node.Ext[FilterTokensKey]; ok {
		t.Error("a failed resolution must not publish tokens")
	}
}

func TestApplyProject_NilStores(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle.properties", "a=1\n")
	node := &project.Node{Name: "bare", Dir: "/work"}

	if _, err := newTestPlugin(t, fsys).ApplyProject(testutil.TestContext(t), node); err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if got, _ := node.Props.Lookup("a"); got != "1" {
		t.Errorf("a = %q, want 1", got)
	}
}

func TestApplySettings(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle.properties", "systemProp.org.gradle.caching=true\nplugins=on\n")
	testutil.WriteFile(t, fsys, testUserHome+"/gradle.properties", "plugins=user\n")

	store := sysprop.NewMapStore(nil)
	p := newTestPlugin(t, fsys, WithSystemProps(store))
	settings := project.NewSettings("/work")

	res, err := p.ApplySettings(testutil.TestContext(t), settings)
	if err != nil {
		t.Fatalf("ApplySettings() error = %v", err)
	}
	if got, _ := settings.Lookup("plugins"); got != "user" {
		t.Errorf("plugins = %q, want user", got)
	}
	if v, _ := store.Lookup("org.gradle.caching"); v != "true" {
		t.Errorf("system property = %q, want true", v)
	}
	if _, ok := settings.Ext[FilterTokensKey]; !ok {
		t.Error("settings should carry the filter tokens")
	}
	if len(res.Descriptors) != 3 {
		t.Errorf("descriptors = %d, want 3", len(res.Descriptors))
	}

	again, err := p.ApplySettings(testutil.TestContext(t), settings)
	if err != nil || again != nil {
		t.Errorf("second ApplySettings() = %v, %v; want no-op", again, err)
	}
}

func TestPlugin_NotifierFromContext(t *testing.T) {
	fsys := testutil.NewFs()
	rec := &notify.Recorder{}
	ctx := notify.WithNotifier(testutil.TestContext(t), rec)

	if _, err := newTestPlugin(t, fsys).ApplyProject(ctx, testutil.Hierarchy("/work")[0]); err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}
	if len(rec.OfType(notify.EventResolutionCompleted)) != 1 {
		t.Errorf("events = %+v", rec.Events())
	}
}

func TestPlugin_Validator(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/work/gradle.properties", "deployHost=h\n")
	node := testutil.Hierarchy("/work")[0]
	rec := &notify.Recorder{}
	p := newTestPlugin(t, fsys, WithNotifier(rec))
	ctx := testutil.TestContext(t)

	p.Validator().RequireProperty("deploy", "deployHost")
	p.Validator().RequireProperty("publish", "repoUrl")

	if _, err := p.ApplyProject(ctx, node); err != nil {
		t.Fatalf("ApplyProject() error = %v", err)
	}

	if err := p.Validator().Validate(ctx, node.Lookup, []string{"deploy"}); err != nil {
		t.Errorf("Validate(deploy) error = %v", err)
	}
	if err := p.Validator().Validate(ctx, node.Lookup, []string{"publish"}); !errors.Is(err, ErrMissingRequiredProperty) {
		t.Errorf("Validate(publish) error = %v, want missing property", err)
	}
	if len(rec.OfType(notify.EventPropertyMissing)) != 1 {
		t.Errorf("missing events = %d, want 1", len(rec.OfType(notify.EventPropertyMissing)))
	}
}

func TestNew_UserHome(t *testing.T) {
	p, err := New(WithUserHome("/custom/home"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.UserHome() != "/custom/home" {
		t.Errorf("UserHome() = %q", p.UserHome())
	}

	t.Setenv("HOME", "/tmp/fakehome")
	p, err = New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.UserHome() == "" {
		t.Error("UserHome() should default to the home directory")
	}
}
