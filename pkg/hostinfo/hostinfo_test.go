package hostinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestCurrentMatchesRuntimeCompiler(t *testing.T) {
	got := Current()
	switch runtime.Compiler {
	case "gc":
		if got != Gc {
			t.Errorf("Current() = %v, want Gc", got)
		}
	case "gccgo":
		if got != Gccgo {
			t.Errorf("Current() = %v, want Gccgo", got)
		}
	}
	if got.String() != runtime.Compiler && got != Unknown {
		t.Errorf("String() = %q, runtime.Compiler = %q", got.String(), runtime.Compiler)
	}
}

func TestToolchainString(t *testing.T) {
	cases := []struct {
		tc   Toolchain
		want string
	}{
		{Gc, "gc"},
		{Gccgo, "gccgo"},
		{TinyGo, "tinygo"},
	}
	for _, c := range cases {
		if got := c.tc.String(); got != c.want {
			t.Errorf("Toolchain(%d).String() = %q, want %q", c.tc, got, c.want)
		}
	}
	if got := Toolchain(99).String(); !strings.HasPrefix(got, "unknown") {
		t.Errorf("out-of-range String() = %q, want unknown prefix", got)
	}
}

func TestCollect(t *testing.T) {
	info := Collect()
	if info.GoVersion == "" {
		t.Error("Collect returned empty GoVersion")
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("Collect OS/Arch = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if !strings.Contains(info.String(), info.GoVersion) {
		t.Errorf("Info.String() = %q missing GoVersion", info.String())
	}
}
