package config

import (
	"testing"

	"github.com/randalmurphal/propflow/testutil"
)

func TestFindRootDir(t *testing.T) {
	fsys := testutil.NewFs()
	testutil.WriteFile(t, fsys, "/repo/settings.gradle", "")
	testutil.WriteFile(t, fsys, "/repo/nested/settings.gradle.kts", "")
	testutil.Mkdir(t, fsys, "/repo/app/src")
	testutil.Mkdir(t, fsys, "/repo/nested/lib")
	testutil.Mkdir(t, fsys, "/loose/dir")

	tests := []struct {
		start string
		want  string
	}{
		{start: "/repo", want: "/repo"},
		{start: "/repo/app/src", want: "/repo"},
		{start: "/repo/nested/lib", want: "/repo/nested"},
		{start: "/loose/dir", want: "/loose/dir"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := FindRootDir(fsys, tt.start)
			if err != nil {
				t.Fatalf("FindRootDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindRootDir(%q) = %q, want %q", tt.start, got, tt.want)
			}
		})
	}
}
