package params

import (
	"bytes"
	"io"
	"math"
	"slices"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"honnef.co/go/linkage"
	"honnef.co/go/linkage/logging"
)

// Options are the settings that accompany a configuration but are not part of
// the linkage itself.
type Options struct {
	// Assembly mode, as accepted by linkage.ParseAssemblyMode.
	Mode string `json:"mode,omitempty" mapstructure:"mode" jsonschema:"description=assembly mode,enum=open,enum=crossed,default=open"`
	// Driver angle increment of the coupler curve in degrees.
	Step float64 `json:"step,omitempty" mapstructure:"step" jsonschema:"description=driver angle increment of the coupler curve in degrees,default=2"`
}

// DefaultOptions assemble the linkage open and trace it at the default step.
var DefaultOptions = Options{
	Mode: linkage.Open.String(),
	Step: linkage.DefaultStep,
}

// AssemblyMode returns the parsed mode. An empty or unknown mode is Open.
func (o Options) AssemblyMode() linkage.AssemblyMode {
	m, err := linkage.ParseAssemblyMode(o.Mode)
	if err != nil {
		return linkage.Open
	}
	return m
}

// withFallbacks replaces the options that don't parse with their defaults.
func (o Options) withFallbacks(defaults Options, logger *zap.Logger) Options {
	if _, err := linkage.ParseAssemblyMode(o.Mode); err != nil {
		logger.Warn("ignoring parameter, using default",
			zap.String("key", KeyMode),
			zap.String("value", o.Mode),
			zap.String("default", defaults.Mode),
			zap.Error(err))
		o.Mode = defaults.Mode
	}
	if !(o.Step > 0) || math.IsInf(o.Step, 0) {
		logger.Warn("ignoring parameter, using default",
			zap.String("key", KeyStep),
			zap.Float64("value", o.Step),
			zap.Float64("default", defaults.Step),
			zap.Error(errors.New("must be a positive number")))
		o.Step = defaults.Step
	}
	return o
}

// Document is a configuration file: the linkage's geometry and driver angle
// at the top level, next to the options.
//
//	{
//	  // lengths
//	  r1: 1, r2: 2, r3: 3.5, r4: 4,
//	  r6: 2.236, beta: 26.565,
//	  theta2: 0,
//	  mode: "crossed",
//	  step: 1,
//	}
type Document struct {
	linkage.Config `mapstructure:",squash"`
	Options        `mapstructure:",squash"`
}

// DefaultDocument combines the default linkage with the default options.
var DefaultDocument = Document{
	Config:  linkage.DefaultConfig,
	Options: DefaultOptions,
}

// Validate reports every problem with doc.
func (doc Document) Validate() error {
	var err error
	if cerr := doc.Config.Validate(); cerr != nil {
		err = multierr.Append(err, errors.Wrap(cerr, "invalid linkage"))
	}
	if _, merr := linkage.ParseAssemblyMode(doc.Mode); merr != nil {
		err = multierr.Append(err, errors.Wrap(merr, "invalid options"))
	}
	if !(doc.Step > 0) || math.IsInf(doc.Step, 0) {
		err = multierr.Append(err, errors.Errorf("invalid options: step must be a positive number, got %g", doc.Step))
	}
	return err
}

// ReadFile reads a JSON5 document from path, expanding environment variables
// like $R1 or ${R1} first. Fields missing from the file keep their defaults.
func ReadFile(path string, defaults Document, logger *zap.Logger) (Document, error) {
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		return defaults, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := Decode(bytes.NewReader(buf), defaults, logger)
	if err != nil {
		return defaults, errors.Wrapf(err, "decoding %s", path)
	}
	return doc, nil
}

// Decode reads a JSON5 document from r. Unlike [ReadFile] it does not expand
// environment variables.
//
// Geometry keys fall back to their defaults as in [Parse]. Options must have
// the right type, but unknown modes and non-positive steps fall back to their
// defaults too. Unknown keys are logged.
func Decode(r io.Reader, defaults Document, logger *zap.Logger) (Document, error) {
	if logger == nil {
		logger = logging.Global()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return defaults, errors.Wrap(err, "reading document")
	}
	var raw map[string]any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return defaults, errors.Wrap(err, "parsing JSON5")
	}

	doc := defaults
	doc.Config = parse(func(key string) (any, bool) {
		v, ok := raw[key]
		return v, ok
	}, defaults.Config, logger)

	opts := map[string]any{}
	for key, v := range raw {
		if !slices.Contains(Keys, key) {
			opts[key] = v
		}
	}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           &doc.Options,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return defaults, err
	}
	if err := decoder.Decode(opts); err != nil {
		return defaults, errors.Wrap(err, "decoding options")
	}
	for _, key := range md.Unused {
		logger.Warn("ignoring unknown key", zap.String("key", key))
	}
	doc.Options = doc.Options.withFallbacks(defaults.Options, logger)
	return doc, nil
}

// Schema describes the document format.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Document{})
}
