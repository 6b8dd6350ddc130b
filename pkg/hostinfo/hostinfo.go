// Package hostinfo identifies the Go toolchain and host a binary was built
// for. It is build-configuration glue for surrounding code; nothing in the
// container packages changes behavior based on it.
package hostinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Toolchain enumerates known Go compiler vendors.
type Toolchain int

const (
	// Unknown means the compiler did not identify itself as any known vendor.
	Unknown Toolchain = iota
	// Gc is the standard Go compiler.
	Gc
	// Gccgo is the GCC Go frontend.
	Gccgo
	// TinyGo is the TinyGo compiler.
	TinyGo
)

// String returns the vendor name.
func (t Toolchain) String() string {
	switch t {
	case Gc:
		return "gc"
	case Gccgo:
		return "gccgo"
	case TinyGo:
		return "tinygo"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// Current reports the toolchain that compiled this binary.
func Current() Toolchain {
	switch runtime.Compiler {
	case "gc":
		return Gc
	case "gccgo":
		return Gccgo
	case "tinygo":
		return TinyGo
	default:
		return Unknown
	}
}

// Info describes the build environment of the running binary.
type Info struct {
	Toolchain Toolchain
	GoVersion string
	OS        string
	Arch      string
	Module    string
}

// Collect gathers build environment details. Module is empty when the
// binary carries no embedded build information.
func Collect() Info {
	info := Info{
		Toolchain: Current(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Module = bi.Main.Path
	}
	return info
}

// String formats the info on one line for banners and diagnostics.
func (i Info) String() string {
	return fmt.Sprintf("%s %s %s/%s", i.Toolchain, i.GoVersion, i.OS, i.Arch)
}
