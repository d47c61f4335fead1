package runtime

import (
	"math"

	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/runtime/spl"
	"github.com/wudi/hey/values"
)

// GetAllBuiltinClasses aggregates every builtin class descriptor contributed
// by the runtime subpackages (exceptions, iterators/generators, concurrency
// primitives, SPL, mysqli and PDO compatibility shims) into a single catalog
// for registration at bootstrap time.
func GetAllBuiltinClasses() []*registry.ClassDescriptor {
	var out []*registry.ClassDescriptor
	out = append(out, GetClasses()...)
	out = append(out, GetIteratorClasses()...)
	out = append(out, GetConcurrencyClasses()...)
	out = append(out, spl.GetSplClasses()...)
	out = append(out, GetMySQLiClasses()...)
	out = append(out, GetPDOClassDescriptors()...)
	out = append(out, GetFiberClass())
	return out
}

// GetAllBuiltinInterfaces aggregates every builtin interface contributed by
// the runtime subpackages.
func GetAllBuiltinInterfaces() []*registry.Interface {
	var out []*registry.Interface
	out = append(out, GetInterfaces()...)
	out = append(out, spl.GetSplInterfaces()...)
	return out
}

// GetAllBuiltinConstants aggregates the core PHP language constants plus the
// extension-specific constant tables (mysqli, PDO) into descriptors suitable
// for registry.RegisterConstant.
func GetAllBuiltinConstants() []*registry.ConstantDescriptor {
	out := make([]*registry.ConstantDescriptor, 0, 256)

	for _, c := range coreConstants() {
		out = append(out, c)
	}

	for _, c := range GetMySQLiConstants() {
		out = append(out, &registry.ConstantDescriptor{Name: c.Name, Value: c.Value, IsFinal: true})
	}

	for name, value := range GetPDOGlobalConstants() {
		out = append(out, &registry.ConstantDescriptor{Name: name, Value: value, IsFinal: true})
	}

	return out
}

func coreConstants() []*registry.ConstantDescriptor {
	def := func(name string, v *values.Value) *registry.ConstantDescriptor {
		return &registry.ConstantDescriptor{Name: name, Value: v, IsFinal: true}
	}
	i := func(n int64) *values.Value { return values.NewInt(n) }
	f := func(n float64) *values.Value { return values.NewFloat(n) }
	s := func(v string) *values.Value { return values.NewString(v) }

	return []*registry.ConstantDescriptor{
		// Error reporting levels.
		def("E_ERROR", i(1)),
		def("E_WARNING", i(2)),
		def("E_PARSE", i(4)),
		def("E_NOTICE", i(8)),
		def("E_CORE_ERROR", i(16)),
		def("E_CORE_WARNING", i(32)),
		def("E_COMPILE_ERROR", i(64)),
		def("E_COMPILE_WARNING", i(128)),
		def("E_USER_ERROR", i(256)),
		def("E_USER_WARNING", i(512)),
		def("E_USER_NOTICE", i(1024)),
		def("E_STRICT", i(2048)),
		def("E_RECOVERABLE_ERROR", i(4096)),
		def("E_DEPRECATED", i(8192)),
		def("E_USER_DEPRECATED", i(16384)),
		def("E_ALL", i(30719)),

		// PHP_ /environment constants.
		def("PHP_VERSION", s("8.3.0")),
		def("PHP_MAJOR_VERSION", i(8)),
		def("PHP_MINOR_VERSION", i(3)),
		def("PHP_RELEASE_VERSION", i(0)),
		def("PHP_VERSION_ID", i(80300)),
		def("PHP_OS", s("Linux")),
		def("PHP_OS_FAMILY", s("Linux")),
		def("PHP_SAPI", s("cli")),
		def("PHP_EOL", s("\n")),
		def("PHP_INT_MAX", i(math.MaxInt64)),
		def("PHP_INT_MIN", i(math.MinInt64)),
		def("PHP_INT_SIZE", i(8)),
		def("PHP_FLOAT_EPSILON", f(2.2204460492503e-16)),
		def("PHP_FLOAT_MAX", f(math.MaxFloat64)),
		def("PHP_FLOAT_MIN", f(2.2250738585072014e-308)),
		def("PHP_FLOAT_DIG", i(15)),
		def("DIRECTORY_SEPARATOR", s("/")),
		def("PATH_SEPARATOR", s(":")),

		// Math constants.
		def("M_PI", f(math.Pi)),
		def("M_E", f(math.E)),
		def("M_LOG2E", f(math.Log2E)),
		def("M_LOG10E", f(math.Log10E)),
		def("M_LN2", f(math.Ln2)),
		def("M_LN10", f(math.Ln10)),
		def("M_PI_2", f(math.Pi/2)),
		def("M_PI_4", f(math.Pi/4)),
		def("M_1_PI", f(1/math.Pi)),
		def("M_2_PI", f(2/math.Pi)),
		def("M_SQRTPI", f(math.Sqrt(math.Pi))),
		def("M_2_SQRTPI", f(2/math.Sqrt(math.Pi))),
		def("M_SQRT2", f(math.Sqrt2)),
		def("M_SQRT3", f(math.Sqrt(3))),
		def("M_SQRT1_2", f(1/math.Sqrt2)),
		def("M_LNPI", f(math.Log(math.Pi))),
		def("M_EULER", f(0.57721566490153286061)),
		def("NAN", f(math.NaN())),
		def("INF", f(math.Inf(1))),

		// Sorting flags.
		def("SORT_REGULAR", i(0)),
		def("SORT_NUMERIC", i(1)),
		def("SORT_STRING", i(2)),
		def("SORT_DESC", i(3)),
		def("SORT_ASC", i(4)),
		def("SORT_LOCALE_STRING", i(5)),
		def("SORT_NATURAL", i(6)),
		def("SORT_FLAG_CASE", i(8)),

		// JSON flags.
		def("JSON_PRETTY_PRINT", i(128)),
		def("JSON_UNESCAPED_SLASHES", i(64)),
		def("JSON_UNESCAPED_UNICODE", i(256)),
		def("JSON_THROW_ON_ERROR", i(4194304)),
		def("JSON_FORCE_OBJECT", i(16)),
		def("JSON_NUMERIC_CHECK", i(32)),
		def("JSON_BIGINT_AS_STRING", i(2)),
		def("JSON_OBJECT_AS_ARRAY", i(1)),

		// str_pad / array flags.
		def("STR_PAD_RIGHT", i(1)),
		def("STR_PAD_LEFT", i(0)),
		def("STR_PAD_BOTH", i(2)),
		def("COUNT_NORMAL", i(0)),
		def("COUNT_RECURSIVE", i(1)),
		def("ARRAY_FILTER_USE_KEY", i(1)),
		def("ARRAY_FILTER_USE_BOTH", i(2)),

		// ENT_ / case folding flags used by htmlspecialchars() et al.
		def("ENT_QUOTES", i(3)),
		def("ENT_HTML401", i(0)),
		def("ENT_COMPAT", i(2)),
		def("ENT_NOQUOTES", i(0)),
		def("CASE_LOWER", i(0)),
		def("CASE_UPPER", i(1)),
	}
}
