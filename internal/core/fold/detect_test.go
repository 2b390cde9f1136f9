package fold

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
)

type span struct{ start, end int }

func spans(rs []FunctionRange) []span {
	out := make([]span, 0, len(rs))
	for _, r := range rs {
		out = append(out, span{r.StartLine, r.EndLine})
	}
	return out
}

func wantSpans(t *testing.T, got []FunctionRange, want ...span) {
	t.Helper()
	if want == nil {
		want = []span{}
	}
	if g := spans(got); !reflect.DeepEqual(g, want) {
		t.Fatalf("spans=%v want %v", g, want)
	}
}

func src(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestDetect_JSCanonicalFunctions(t *testing.T) {
	text := src(
		"function a() {",
		"  return 1;",
		"}",
		"",
		"export async function b(x) {",
		"  if (x) {",
		"    return 2;",
		"  }",
		"  for (const y of x) {",
		"    console.log(y);",
		"  }",
		"}",
	)

	got := Detect(context.Background(), text, FamilyJSTS)
	wantSpans(t, got, span{0, 2}, span{4, 11})
	if got[0].Kind != KindFunctionDeclaration || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("got=%+v", got)
	}
}

func TestDetect_JSArrowAndExpressionShapes(t *testing.T) {
	text := src(
		"const add = (a, b) => {",
		"  return a + b;",
		"};",
		"const sq = (x) => x * x;",
		"export const handler: Handler = async (req) => {",
		"  await req.done();",
		"};",
		"let legacy = function (x) {",
		"  return x;",
		"};",
	)

	got := Detect(context.Background(), text, FamilyJSTS)
	wantSpans(t, got, span{0, 2}, span{4, 6}, span{7, 9})
	if got[0].Kind != KindArrowFunction {
		t.Fatalf("kind[0]=%s", got[0].Kind)
	}
	if got[1].Kind != KindTypedArrowFunction || got[1].Name != "handler" {
		t.Fatalf("got[1]=%+v", got[1])
	}
	if got[2].Kind != KindFunctionExpression {
		t.Fatalf("kind[2]=%s", got[2].Kind)
	}
}

func TestDetect_JSClassMethods(t *testing.T) {
	text := src(
		"class Calc {",
		"  multiply(a, b) {",
		"    return a * b;",
		"  }",
		"  static async load(): Promise<Calc> {",
		"    return new Calc();",
		"  }",
		"  private reset() {",
		"    this.v = 0;",
		"  }",
		"}",
	)

	got := Detect(context.Background(), text, FamilyJSTS)
	wantSpans(t, got, span{1, 3}, span{4, 6}, span{7, 9})
	if got[0].Kind != KindMethodShorthand {
		t.Fatalf("kind[0]=%s", got[0].Kind)
	}
	if got[1].Kind != KindClassMethod || got[1].Name != "load" {
		t.Fatalf("got[1]=%+v", got[1])
	}
}

func TestDetect_JSCommentsNeverOpenFunctions(t *testing.T) {
	text := src(
		"// function fake() {",
		"/* function other() { */",
		"function real() {",
		"  return 1;",
		"}",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyJSTS), span{2, 4})
}

func TestDetect_JSUnterminatedBraceEndsAtLastLine(t *testing.T) {
	text := src(
		"function broken() {",
		"  let x = 1;",
		"  return x;",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyJSTS), span{0, 2})
}

func TestDetect_JSNestedFunctionsOverlap(t *testing.T) {
	text := src(
		"function outer() {",
		"  const inner = () => {",
		"    return 1;",
		"  };",
		"  return inner;",
		"}",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyJSTS), span{0, 5}, span{1, 3})
}

func TestDetect_JSSingleLineBodiesAreDropped(t *testing.T) {
	text := src(
		"function one() { return 1; }",
		"const two = () => 2;",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyJSTS))
}

func TestDetect_CRLF(t *testing.T) {
	text := "function a() {\r\n  return 1;\r\n}\r\n"

	wantSpans(t, Detect(context.Background(), text, FamilyJSTS), span{0, 2})
}

func TestDetect_ByteOrderMark(t *testing.T) {
	js := "\ufefffunction a() {\n  return 1;\n}\n"
	wantSpans(t, Detect(context.Background(), js, FamilyJSTS), span{0, 2})

	py := "\ufeffdef f():\n    return 1\n"
	wantSpans(t, Detect(context.Background(), py, FamilyPython), span{0, 1})

	decorated := "\ufeff@cache\ndef f():\n    return 1\n"
	got := Detect(context.Background(), decorated, FamilyPython)
	wantSpans(t, got, span{0, 2})
	if got[0].Name != "f" {
		t.Fatalf("name=%q", got[0].Name)
	}
}

func TestDetect_PythonDecoratorInclusion(t *testing.T) {
	text := src(
		"@decorator",
		"def f():",
		"    return 1",
	)

	got := Detect(context.Background(), text, FamilyPython)
	wantSpans(t, got, span{0, 2})
	if got[0].Kind != KindPythonDef || got[0].Name != "f" {
		t.Fatalf("got=%+v", got[0])
	}
}

func TestDetect_PythonIndentationTermination(t *testing.T) {
	text := src(
		"def f():",
		"    x = 1",
		"def g():",
		"    y = 2",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyPython), span{0, 1}, span{2, 3})
}

func TestDetect_PythonMethodsAndComments(t *testing.T) {
	text := src(
		"class C:",
		"    def m(self):",
		"        return 1",
		"",
		"    async def n(self):",
		"        # note",
		"        return 2",
		"x = 1",
	)

	got := Detect(context.Background(), text, FamilyPython)
	wantSpans(t, got, span{1, 2}, span{4, 6})
	if got[1].Kind != KindPythonAsyncDef {
		t.Fatalf("kind[1]=%s", got[1].Kind)
	}
}

func TestDetect_PythonNestedOverlap(t *testing.T) {
	text := src(
		"def outer():",
		"    def inner():",
		"        return 1",
		"    return inner",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyPython), span{0, 3}, span{1, 2})
}

func TestDetect_PythonInlineBodyHasNoRange(t *testing.T) {
	text := src(
		"def f(): return 1",
		"x = f()",
	)

	wantSpans(t, Detect(context.Background(), text, FamilyPython))
}

func TestDetect_PythonTabsCountAsOne(t *testing.T) {
	text := "def f():\n\tx = 1\n\treturn x\n"

	wantSpans(t, Detect(context.Background(), text, FamilyPython), span{0, 2})
}

func TestDetect_NoFunctions(t *testing.T) {
	wantSpans(t, Detect(context.Background(), "let x = 1;\nconsole.log(x);\n", FamilyJSTS))
	wantSpans(t, Detect(context.Background(), "x = 1\nprint(x)\n", FamilyPython))
	wantSpans(t, Detect(context.Background(), "", FamilyPython))
}

func TestDetect_Idempotent(t *testing.T) {
	text := src(
		"function a() {",
		"  return () => {",
		"    return 1;",
		"  };",
		"}",
	)

	first := Detect(context.Background(), text, FamilyJSTS)
	second := Detect(context.Background(), text, FamilyJSTS)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("first=%+v second=%+v", first, second)
	}
}

func TestDetect_CancelledBeforeScanIsEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := src(
		"function a() {",
		"  return 1;",
		"}",
	)
	if got := Detect(ctx, text, FamilyJSTS); got != nil {
		t.Fatalf("got=%+v", got)
	}
	if got := Detect(ctx, "def f():\n    pass\n", FamilyPython); got != nil {
		t.Fatalf("got=%+v", got)
	}
}

// cutoffCtx reports cancellation once Err has been consulted more than
// allow times.
type cutoffCtx struct {
	context.Context
	allow int32
	calls atomic.Int32
}

func (c *cutoffCtx) Err() error {
	if c.calls.Add(1) > c.allow {
		return context.Canceled
	}
	return nil
}

func TestDetect_CancelledMidScanDropsEarlierRanges(t *testing.T) {
	js := src(
		"function a() {",
		"  return 1;",
		"}",
		"function b() {",
		"  return 2;",
		"}",
	)
	// Line 0 already yields a range; the scan is cut at line 4.
	ctx := &cutoffCtx{Context: context.Background(), allow: 4}
	if got := Detect(ctx, js, FamilyJSTS); got != nil {
		t.Fatalf("js got=%+v", got)
	}
	if ctx.calls.Load() != 5 {
		t.Fatalf("scan did not stop at the cutoff: calls=%d", ctx.calls.Load())
	}

	py := "def f():\n    pass\ndef g():\n    pass\n"
	if got := Detect(&cutoffCtx{Context: context.Background(), allow: 3}, py, FamilyPython); got != nil {
		t.Fatalf("py got=%+v", got)
	}

	// Enough budget for every line: nothing is dropped.
	wantSpans(t, Detect(&cutoffCtx{Context: context.Background(), allow: 100}, js, FamilyJSTS), span{0, 2}, span{3, 5})
}

func TestDetect_UnknownFamily(t *testing.T) {
	if got := Detect(context.Background(), "function a() {\n}\n", Family(0)); got != nil {
		t.Fatalf("got=%+v", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	got, err := DetectLanguage(context.Background(), "def f():\n    pass\n", "python")
	if err != nil {
		t.Fatalf("python: %v", err)
	}
	wantSpans(t, got, span{0, 1})

	got, err = DetectLanguage(context.Background(), "function a() {\n}\n", "typescriptreact")
	if err != nil {
		t.Fatalf("tsx: %v", err)
	}
	wantSpans(t, got, span{0, 1})

	if _, err := DetectLanguage(context.Background(), "fn main() {}", "rust"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("rust err=%v", err)
	}
}

func TestCanonicalDocumentsYieldOneRangePerFunction(t *testing.T) {
	var b strings.Builder
	const n = 25
	for i := 0; i < n; i++ {
		b.WriteString("function f")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("(a) {\n  return a;\n}\n\n")
	}

	got := Detect(context.Background(), b.String(), FamilyJSTS)
	if len(got) != n {
		t.Fatalf("len=%d want %d", len(got), n)
	}
	for i, r := range got {
		if r.StartLine != i*4 || r.EndLine != i*4+2 {
			t.Fatalf("range %d=%+v", i, r)
		}
	}
}
