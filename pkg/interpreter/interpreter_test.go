package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"axo/pkg/runtime"
)

func runOK(t *testing.T, src string) (runtime.Value, string) {
	t.Helper()
	var out bytes.Buffer
	ip := New(&out)
	env := runtime.NewEnvironment(nil)
	result, err := ip.RunSource(src, env, ".")
	if err != nil {
		t.Fatalf("unexpected error running %q: %v", src, err)
	}
	return result, out.String()
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	ip := New(&bytes.Buffer{})
	env := runtime.NewEnvironment(nil)
	_, err := ip.RunSource(src, env, ".")
	if err == nil {
		t.Fatalf("expected an error running %q", src)
	}
	return err
}

func TestArithmeticPromotionRules(t *testing.T) {
	result, _ := runOK(t, `1 + 2;`)
	if result != runtime.IntValue(3) {
		t.Fatalf("int+int should stay int, got %v", result)
	}
	result, _ = runOK(t, `1 + 2.5;`)
	if result != runtime.FloatValue(3.5) {
		t.Fatalf("int+float should promote to float, got %v", result)
	}
}

func TestDivisionByZeroIsFatalKindError(t *testing.T) {
	err := runErr(t, `1 / 0;`)
	if !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("expected a division-by-zero diagnostic, got %v", err)
	}
	err = runErr(t, `1 % 0;`)
	if !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("expected a division-by-zero diagnostic for %%, got %v", err)
	}
}

func TestPopOnEmptyArrayReturnsEmptyStringUnmutated(t *testing.T) {
	result, _ := runOK(t, `
	var a = [];
	var popped = pop(a);
	[popped, len(a)];
	`)
	arr := result.(*runtime.ArrayValue)
	if arr.Elements[0] != runtime.StringValue("") {
		t.Fatalf("expected pop() on empty array to return \"\", got %v", arr.Elements[0])
	}
	if arr.Elements[1] != runtime.IntValue(0) {
		t.Fatalf("expected the array to remain empty, got len %v", arr.Elements[1])
	}
}

func TestSliceRoundTripsOverWholeArray(t *testing.T) {
	result, _ := runOK(t, `
	var a = [1, 2, 3];
	toString(slice(a, 0, len(a))) == toString(a);
	`)
	if result != runtime.BoolValue(true) {
		t.Fatalf("expected slice(a,0,len(a)) == a, got %v", result)
	}
}

func TestReverseIsItsOwnInverse(t *testing.T) {
	result, _ := runOK(t, `
	var a = [1, 2, 3];
	toString(reverse(reverse(a))) == toString(a);
	`)
	if result != runtime.BoolValue(true) {
		t.Fatalf("expected reverse(reverse(a)) == a, got %v", result)
	}
}

func TestHasKeyMatchesIndexOfOverKeys(t *testing.T) {
	result, _ := runOK(t, `
	var o = {a: 1, b: 2};
	hasKey(o, "a") == (indexOf(keys(o), "a") != -1);
	`)
	if result != runtime.BoolValue(true) {
		t.Fatalf("expected hasKey(o,k) == (indexOf(keys(o),k) != -1), got %v", result)
	}
}

func TestToIntToStringRoundTrip(t *testing.T) {
	result, _ := runOK(t, `toInt(toString(42)) == 42;`)
	if result != runtime.BoolValue(true) {
		t.Fatalf("expected toInt(toString(n)) == n, got %v", result)
	}
}

func TestSubstrOutOfRangeStartReturnsEmptyString(t *testing.T) {
	result, _ := runOK(t, `substr("hello", 100, 2);`)
	if result != runtime.StringValue("") {
		t.Fatalf("expected \"\", got %v", result)
	}
}

func TestSwitchFallthroughAndDefaultInPlace(t *testing.T) {
	_, out := runOK(t, `
	var x = 1;
	switch (x) {
		case 1:
			print("one");
		default:
			print("default");
		case 2:
			print("two");
	}
	`)
	want := "one\ndefault\ntwo\n"
	if out != want {
		t.Fatalf("expected ordered fall-through output %q, got %q", want, out)
	}
}

func TestUseDoesNotCopyBindingsIntoCallerScope(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "side_effects.axo")
	if err := os.WriteFile(fixture, []byte(`
	var onlyInModule = 1;
	func helperOnlyInModule() { return 1; }
	print("module ran");
	`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := runtime.NewEnvironment(nil)
	ip := New(&bytes.Buffer{})
	_, out := runUseFixture(t, ip, env, dir)

	if out != "module ran\n" {
		t.Fatalf("expected the used module's body to actually execute, got %q", out)
	}
	if _, err := env.Get("onlyInModule"); err == nil {
		t.Fatalf("expected 'onlyInModule' to stay isolated inside the used module, but it leaked into the caller's env")
	}
	if _, err := env.Get("helperOnlyInModule"); err == nil {
		t.Fatalf("expected 'helperOnlyInModule' to stay isolated inside the used module, but it leaked into the caller's env")
	}
}

func runUseFixture(t *testing.T, ip *Interpreter, env *runtime.Environment, dir string) (runtime.Value, string) {
	t.Helper()
	var out bytes.Buffer
	ip.out = &out
	result, err := ip.RunSource(`use "side_effects.axo";`, env, dir)
	if err != nil {
		t.Fatalf("unexpected error running use: %v", err)
	}
	return result, out.String()
}

func TestTemplateStringInterpolation(t *testing.T) {
	result, _ := runOK(t, `
	var name = "world";
	"hello ${name}!";
	`)
	if result != runtime.StringValue("hello world!") {
		t.Fatalf("got %v", result)
	}
}

func TestCallResolvesFunctionRegistryOverAShadowingLocalVariable(t *testing.T) {
	result, _ := runOK(t, `
	func greet() { return "from function"; }
	func useIt(greet) {
		return greet();
	}
	useIt(42);
	`)
	if result != runtime.StringValue("from function") {
		t.Fatalf("expected the call to resolve 'greet' via the function registry ahead of the shadowing parameter, got %v", result)
	}
}

func TestProgramRegistryOutranksFunctionRegistryOfTheSameName(t *testing.T) {
	result, _ := runOK(t, `
	func dispatch() { return "func"; }
	program dispatch() { return "program"; }
	dispatch();
	`)
	if result != runtime.StringValue("program") {
		t.Fatalf("expected the program registry to win over the function registry for the same name, got %v", result)
	}
}

func TestFunctionClosureCapturesDefiningScope(t *testing.T) {
	result, _ := runOK(t, `
	func makeAdder(n) {
		return func(x) { return x + n; };
	}
	var addFive = makeAdder(5);
	addFive(10);
	`)
	if result != runtime.IntValue(15) {
		t.Fatalf("expected closure to capture n=5, got %v", result)
	}
}

func TestTryCatchCapturesThrownValue(t *testing.T) {
	result, _ := runOK(t, `
	var caught = 0;
	try {
		throw "boom";
	} catch (e) {
		caught = 1;
	}
	caught;
	`)
	if result != runtime.IntValue(1) {
		t.Fatalf("expected catch to run, got %v", result)
	}
}

func TestTryFinallyAlwaysRuns(t *testing.T) {
	result, _ := runOK(t, `
	var ran = 0;
	try {
		var x = 1;
	} finally {
		ran = 1;
	}
	ran;
	`)
	if result != runtime.IntValue(1) {
		t.Fatalf("expected finally to run, got %v", result)
	}
}

func TestArrayTypeCheckOnComplexDeclaredTypeAssignment(t *testing.T) {
	err := runErr(t, `
	var xs: [int] = [1, 2, 3];
	xs = "not an array";
	`)
	if err == nil {
		t.Fatalf("expected a type error assigning a string to a declared [int]")
	}
}

func TestMergeGivesSecondArgumentPrecedence(t *testing.T) {
	result, _ := runOK(t, `
	var a = {x: 1, y: 2};
	var b = {y: 3};
	merge(a, b);
	`)
	obj := result.(*runtime.ObjectValue)
	y, _ := obj.Get("y")
	if y != runtime.IntValue(3) {
		t.Fatalf("expected merge's second argument to win on collision, got %v", y)
	}
	x, _ := obj.Get("x")
	if x != runtime.IntValue(1) {
		t.Fatalf("expected a's non-colliding field to survive, got %v", x)
	}
}

func TestWhenFiresOnceItsConditionBecomesTrueAfterAssignment(t *testing.T) {
	_, out := runOK(t, `
	var ready = false;
	when (ready) {
		print("fired");
	}
	print("before");
	ready = true;
	print("after");
	`)
	want := "before\nfired\nafter\n"
	if out != want {
		t.Fatalf("expected the guard to fire right after the assignment that satisfies it, got %q", out)
	}
}

func TestWhenNeverFiresIfConditionStaysFalse(t *testing.T) {
	_, out := runOK(t, `
	var ready = false;
	when (ready) {
		print("fired");
	}
	print("done");
	`)
	if out != "done\n" {
		t.Fatalf("guard should not fire when its condition never becomes true, got %q", out)
	}
}

func TestAwaitOnNonProgramFallsBackToPlainEvaluation(t *testing.T) {
	result, _ := runOK(t, `
	func plain() { return 1; }
	await plain();
	`)
	if result != runtime.IntValue(1) {
		t.Fatalf("await on a non-program function should evaluate normally, got %v", result)
	}
}

func TestAwaitProgramRunsOnASeparateGoroutineAndReturnsItsResult(t *testing.T) {
	result, _ := runOK(t, `
	program compute(n) {
		return n * 2;
	}
	await compute(21);
	`)
	if result != runtime.IntValue(42) {
		t.Fatalf("expected the awaited program's result, got %v", result)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	src := `write("` + escaped + `", "hello file");
	read("` + escaped + `");`
	result, _ := runOK(t, src)
	if result != runtime.StringValue("hello file") {
		t.Fatalf("got %v", result)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello file" {
		t.Fatalf("expected the file to actually contain the written content, got %q, err %v", data, err)
	}
}

func TestReadDirListsWrittenFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.axo"), []byte(""), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	escaped := strings.ReplaceAll(dir, `\`, `\\`)
	result, _ := runOK(t, `readDir("`+escaped+`");`)
	arr := result.(*runtime.ArrayValue)
	found := false
	for _, el := range arr.Elements {
		if el == runtime.StringValue("a.axo") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected readDir to list a.axo, got %v", arr.Elements)
	}
}

func TestStringBuiltinSurface(t *testing.T) {
	cases := []struct {
		src  string
		want runtime.Value
	}{
		{`toUpper("hi");`, runtime.StringValue("HI")},
		{`toLower("HI");`, runtime.StringValue("hi")},
		{`indexOf("hello", "ll");`, runtime.IntValue(2)},
		{`indexOf("hello", "zz");`, runtime.IntValue(-1)},
		{`contains("hello", "ell");`, runtime.BoolValue(true)},
		{`trim("  hi  ");`, runtime.StringValue("hi")},
		{`replace("aaa", "a", "b");`, runtime.StringValue("baa")},
		{`startsWith("hello", "he");`, runtime.BoolValue(true)},
		{`endsWith("hello", "lo");`, runtime.BoolValue(true)},
		{`repeat("ab", 3);`, runtime.StringValue("ababab")},
		{`charAt("hello", 1);`, runtime.StringValue("e")},
		{`charCodeAt("A", 0);`, runtime.IntValue(65)},
		{`charAt("hi", 99);`, runtime.StringValue("")},
	}
	for _, tc := range cases {
		result, _ := runOK(t, tc.src)
		if result != tc.want {
			t.Errorf("%s => %v, want %v", tc.src, result, tc.want)
		}
	}
}

func TestMathBuiltinSurfacePreservesIntKindForAbsMinMax(t *testing.T) {
	result, _ := runOK(t, `abs(-5);`)
	if result != runtime.IntValue(5) {
		t.Fatalf("abs(-5) should stay int, got %v (%T)", result, result)
	}
	result, _ = runOK(t, `min(3, 7);`)
	if result != runtime.IntValue(3) {
		t.Fatalf("min(3,7) should stay int, got %v", result)
	}
	result, _ = runOK(t, `max(3, 7);`)
	if result != runtime.IntValue(7) {
		t.Fatalf("max(3,7) should stay int, got %v", result)
	}
}

func TestMathBuiltinRoundingAlwaysReturnsFloat(t *testing.T) {
	result, _ := runOK(t, `floor(3.0);`)
	if _, ok := result.(runtime.FloatValue); !ok {
		t.Fatalf("floor should always return float, got %T", result)
	}
}

func TestClampBoundsValue(t *testing.T) {
	result, _ := runOK(t, `clamp(10.0, 0.0, 5.0);`)
	if result != runtime.FloatValue(5) {
		t.Fatalf("expected clamp to cap at the upper bound, got %v", result)
	}
}
