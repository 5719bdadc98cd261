package dfg

// builtins is the §6.3 built-in identifier exclusion set, modelled as an
// injected set (per §9's "other language frontends can supply their own")
// rather than a hardcoded switch.
var builtins = map[string]bool{
	"true": true, "false": true, "null": true, "undefined": true,
	"this": true, "super": true, "console": true, "Math": true,
	"Object": true, "Array": true, "String": true, "Number": true,
	"Boolean": true, "Error": true, "Promise": true, "JSON": true,
	"Date": true, "RegExp": true,
}

// WithBuiltins returns a copy of the default built-in set extended with
// extra, for callers modelling a language whose intrinsics differ.
func WithBuiltins(extra ...string) map[string]bool {
	out := make(map[string]bool, len(builtins)+len(extra))
	for k := range builtins {
		out[k] = true
	}
	for _, e := range extra {
		out[e] = true
	}
	return out
}
