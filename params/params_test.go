package params

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"

	"honnef.co/go/linkage"
	"honnef.co/go/linkage/logging"
)

func TestParseAllKeys(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	values := url.Values{
		"r1":     {"1.5"},
		"r2":     {"2"},
		"r3":     {" 3 "},
		"r4":     {"4e0"},
		"r6":     {"0"},
		"beta":   {"-45"},
		"theta2": {"370"},
		"other":  {"ignored"},
	}
	cfg := Parse(values, linkage.DefaultConfig, logger)
	test.That(t, cfg, test.ShouldResemble, linkage.Config{R1: 1.5, R2: 2, R3: 3, R4: 4, R6: 0, Beta: -45, Theta2: 370})
	test.That(t, logs.Len(), test.ShouldEqual, 0)
}

func TestParseDefaultsEachKey(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	values := url.Values{
		"r1":     {"abc"},
		"r2":     {"NaN"},
		"r3":     {"-1"},
		"r4":     {"6"},
		"r6":     {"-0.5"},
		"beta":   {"Inf"},
		"theta2": {""},
	}
	cfg := Parse(values, linkage.DefaultConfig, logger)

	want := linkage.DefaultConfig
	want.R4 = 6
	test.That(t, cfg, test.ShouldResemble, want)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	test.That(t, warnings, test.ShouldHaveLength, 6)
	var keys []string
	for _, w := range warnings {
		keys = append(keys, w.ContextMap()["key"].(string))
	}
	test.That(t, keys, test.ShouldResemble, []string{"r1", "r2", "r3", "r6", "beta", "theta2"})
}

func TestParseAbsentKeys(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	cfg := Parse(url.Values{"r3": {"5"}}, linkage.DefaultConfig, logger)
	want := linkage.DefaultConfig
	want.R3 = 5
	test.That(t, cfg, test.ShouldResemble, want)
	test.That(t, logs.Len(), test.ShouldEqual, 0)

	test.That(t, Parse(nil, linkage.DefaultConfig, nil), test.ShouldResemble, linkage.DefaultConfig)
}

func TestParseNilLoggerUsesGlobal(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	orig := logging.Global()
	logging.ReplaceGlobal(logger)
	t.Cleanup(func() { logging.ReplaceGlobal(orig) })

	cfg := Parse(url.Values{"r1": {"abc"}}, linkage.DefaultConfig, nil)
	test.That(t, cfg, test.ShouldResemble, linkage.DefaultConfig)
	test.That(t, logs.FilterMessage("ignoring parameter, using default").Len(), test.ShouldEqual, 1)

	ParseOptions(url.Values{"step": {"-1"}}, DefaultOptions, nil)
	ParseQuery("r2=%zz", DefaultDocument, nil)
	_, err := Decode(strings.NewReader(`{colour: "red"}`), DefaultDocument, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("malformed parameters").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("ignoring unknown key").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterLevelExact(zapcore.WarnLevel).Len(), test.ShouldBeGreaterThanOrEqualTo, 4)
}

func TestParseQuery(t *testing.T) {
	logger := logging.NewTestLogger(t)
	doc := ParseQuery("?r1=2&theta2=90&mode=crossed&step=5", DefaultDocument, logger)
	test.That(t, doc.R1, test.ShouldEqual, 2.0)
	test.That(t, doc.Theta2, test.ShouldEqual, 90.0)
	test.That(t, doc.R2, test.ShouldEqual, linkage.DefaultConfig.R2)
	test.That(t, doc.AssemblyMode(), test.ShouldEqual, linkage.Crossed)
	test.That(t, doc.Step, test.ShouldEqual, 5.0)
	test.That(t, doc.Validate(), test.ShouldBeNil)

	doc = ParseQuery("mode=sideways&step=-2&r2=%zz", DefaultDocument, logger)
	test.That(t, doc, test.ShouldResemble, DefaultDocument)
}

func TestValuesRoundTrip(t *testing.T) {
	doc := DefaultDocument
	doc.Theta2 = 42.5
	doc.Mode = "crossed"
	got := ParseQuery(Values(doc).Encode(), Document{}, nil)
	test.That(t, got, test.ShouldResemble, doc)
}

func TestDocumentValidate(t *testing.T) {
	test.That(t, DefaultDocument.Validate(), test.ShouldBeNil)

	doc := Document{
		Config:  linkage.Config{R1: 0, R2: 1, R3: 1, R4: 1},
		Options: Options{Mode: "sideways", Step: 0},
	}
	errs := multierr.Errors(doc.Validate())
	test.That(t, errs, test.ShouldHaveLength, 3)
	test.That(t, errs[0].Error(), test.ShouldContainSubstring, "invalid linkage: r1 must be positive")
	test.That(t, errs[1].Error(), test.ShouldContainSubstring, "sideways")
	test.That(t, errs[2].Error(), test.ShouldContainSubstring, "step")
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkage.json5")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestReadFile(t *testing.T) {
	t.Setenv("LINKAGE_COUPLER", "3")
	path := writeFile(t, `{
		// crank-rocker
		r1: 4,
		r2: 1,
		r3: $LINKAGE_COUPLER,
		r4: "3.5",
		mode: "crossed",
		step: "0.5",
	}`)

	logger, logs := logging.NewObservedTestLogger(t)
	doc, err := ReadFile(path, DefaultDocument, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.Len(), test.ShouldEqual, 0)

	want := DefaultDocument
	want.R1, want.R2, want.R3, want.R4 = 4, 1, 3, 3.5
	want.Mode = "crossed"
	want.Step = 0.5
	test.That(t, doc, test.ShouldResemble, want)
	test.That(t, doc.Classify(), test.ShouldEqual, linkage.CrankRocker)
}

func TestReadFileFallbacks(t *testing.T) {
	path := writeFile(t, `{r1: "wide", r2: 3, mode: "sideways", colour: "red"}`)

	logger, logs := logging.NewObservedTestLogger(t)
	doc, err := ReadFile(path, DefaultDocument, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.R1, test.ShouldEqual, linkage.DefaultConfig.R1)
	test.That(t, doc.R2, test.ShouldEqual, 3.0)
	test.That(t, doc.Mode, test.ShouldEqual, DefaultOptions.Mode)

	var msgs []string
	for _, entry := range logs.All() {
		msgs = append(msgs, entry.Message+" "+entry.ContextMap()["key"].(string))
	}
	test.That(t, msgs, test.ShouldContain, "ignoring parameter, using default r1")
	test.That(t, msgs, test.ShouldContain, "ignoring parameter, using default mode")
	test.That(t, msgs, test.ShouldContain, "ignoring unknown key colour")
}

func TestDecodeRejectsBooleans(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	doc, err := Decode(strings.NewReader(`{r1: true, r2: 3, r3: null}`), DefaultDocument, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.R1, test.ShouldEqual, linkage.DefaultConfig.R1)
	test.That(t, doc.R2, test.ShouldEqual, 3.0)
	test.That(t, doc.R3, test.ShouldEqual, linkage.DefaultConfig.R3)

	warnings := logs.FilterMessage("ignoring parameter, using default").All()
	test.That(t, warnings, test.ShouldHaveLength, 2)
	test.That(t, warnings[0].ContextMap()["key"], test.ShouldEqual, "r1")
	test.That(t, warnings[0].ContextMap()["error"], test.ShouldContainSubstring, "must be a number, got bool")
}

func TestToFloat(t *testing.T) {
	for _, raw := range []any{2.5, float32(2.5), " 2.5 ", json.Number("2.5")} {
		v, err := toFloat(raw)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, 2.5)
	}
	v, err := toFloat(int64(3))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, 3.0)

	for _, raw := range []any{true, false, nil, []any{1.0}, map[string]any{}, "1e400"} {
		_, err := toFloat(raw)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json5"), DefaultDocument, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing.json5")

	_, err = ReadFile(writeFile(t, `{r1: `), DefaultDocument, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "parsing JSON5")

	_, err = Decode(strings.NewReader(`{step: [1, 2]}`), DefaultDocument, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "decoding options")
}

func TestSchema(t *testing.T) {
	b, err := json.Marshal(Schema())
	test.That(t, err, test.ShouldBeNil)
	for _, key := range append(Keys, KeyMode, KeyStep) {
		test.That(t, string(b), test.ShouldContainSubstring, `"`+key+`"`)
	}
	test.That(t, string(b), test.ShouldContainSubstring, "crossed")
}
