// Package params turns external key/value parameters and configuration files
// into linkage configurations.
//
// Every geometry key is read independently: a key that is absent, cannot be
// parsed as a number, or holds a value the solver cannot work with keeps its
// default, and the fallback is logged at warn level. Parsing therefore never
// fails, and one bad key never discards the others.
package params

import (
	"encoding/json"
	"math"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"honnef.co/go/linkage"
	"honnef.co/go/linkage/logging"
)

// Geometry keys, one per field of [linkage.Config].
const (
	KeyR1     = "r1"
	KeyR2     = "r2"
	KeyR3     = "r3"
	KeyR4     = "r4"
	KeyR6     = "r6"
	KeyBeta   = "beta"
	KeyTheta2 = "theta2"
)

// Option keys.
const (
	KeyMode = "mode"
	KeyStep = "step"
)

// Keys lists the geometry keys in the order of the config's fields.
var Keys = []string{KeyR1, KeyR2, KeyR3, KeyR4, KeyR6, KeyBeta, KeyTheta2}

// field describes how one key maps onto a config.
type field struct {
	get   func(*linkage.Config) *float64
	valid func(float64) bool
	// Human-readable form of valid, for log messages.
	want string
}

func positive(f float64) bool    { return f > 0 }
func nonNegative(f float64) bool { return f >= 0 }
func anyReal(float64) bool       { return true }

var fields = map[string]field{
	KeyR1:     {func(c *linkage.Config) *float64 { return &c.R1 }, positive, "a positive number"},
	KeyR2:     {func(c *linkage.Config) *float64 { return &c.R2 }, positive, "a positive number"},
	KeyR3:     {func(c *linkage.Config) *float64 { return &c.R3 }, positive, "a positive number"},
	KeyR4:     {func(c *linkage.Config) *float64 { return &c.R4 }, positive, "a positive number"},
	KeyR6:     {func(c *linkage.Config) *float64 { return &c.R6 }, nonNegative, "a non-negative number"},
	KeyBeta:   {func(c *linkage.Config) *float64 { return &c.Beta }, anyReal, "a number"},
	KeyTheta2: {func(c *linkage.Config) *float64 { return &c.Theta2 }, anyReal, "a number"},
}

// Parse reads the geometry keys from values, URL query style. For a key given
// more than once the first value wins. Keys that are not geometry keys are
// ignored. A nil logger falls back to [logging.Global].
func Parse(values url.Values, defaults linkage.Config, logger *zap.Logger) linkage.Config {
	return parse(func(key string) (any, bool) {
		if !values.Has(key) {
			return nil, false
		}
		return values.Get(key), true
	}, defaults, logger)
}

func parse(lookup func(key string) (any, bool), defaults linkage.Config, logger *zap.Logger) linkage.Config {
	if logger == nil {
		logger = logging.Global()
	}
	cfg := defaults
	for _, key := range Keys {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		f := fields[key]
		dst := f.get(&cfg)
		v, err := toFloat(raw)
		if err == nil && !f.valid(v) {
			err = errors.Errorf("must be %s", f.want)
		}
		if err != nil {
			logger.Warn("ignoring parameter, using default",
				zap.String("key", key),
				zap.Any("value", raw),
				zap.Float64("default", *dst),
				zap.Error(err))
			continue
		}
		*dst = v
	}
	return cfg
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case string:
		raw = strings.TrimSpace(v)
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
	default:
		// cast turns booleans into 0 and 1.
		return 0, errors.Errorf("must be a number, got %T", raw)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be finite")
	}
	return v, nil
}

// ParseOptions reads the mode and step keys from values. Like geometry keys,
// each falls back to its default on its own.
func ParseOptions(values url.Values, defaults Options, logger *zap.Logger) Options {
	if logger == nil {
		logger = logging.Global()
	}
	opts := defaults
	if values.Has(KeyMode) {
		opts.Mode = values.Get(KeyMode)
	}
	if values.Has(KeyStep) {
		step, err := toFloat(values.Get(KeyStep))
		if err != nil {
			logger.Warn("ignoring parameter, using default",
				zap.String("key", KeyStep),
				zap.String("value", values.Get(KeyStep)),
				zap.Float64("default", defaults.Step),
				zap.Error(err))
		} else {
			opts.Step = step
		}
	}
	return opts.withFallbacks(defaults, logger)
}

// ParseQuery reads a document from a URL query string such as
// "r1=1&r2=2.5&mode=crossed". A leading '?' is allowed. Malformed pairs are
// logged and skipped.
func ParseQuery(raw string, defaults Document, logger *zap.Logger) Document {
	if logger == nil {
		logger = logging.Global()
	}
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		logger.Warn("malformed parameters", zap.String("query", raw), zap.Error(err))
	}
	return Document{
		Config:  Parse(values, defaults.Config, logger),
		Options: ParseOptions(values, defaults.Options, logger),
	}
}

// Values encodes doc as URL query values, the inverse of [ParseQuery].
func Values(doc Document) url.Values {
	v := url.Values{}
	cfg := doc.Config
	for _, key := range Keys {
		v.Set(key, cast.ToString(*fields[key].get(&cfg)))
	}
	if doc.Mode != "" {
		v.Set(KeyMode, doc.Mode)
	}
	if doc.Step != 0 {
		v.Set(KeyStep, cast.ToString(doc.Step))
	}
	return v
}
