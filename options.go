package swaggerdoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/broady/swaggerdoc/parser"
	"github.com/broady/swaggerdoc/translator"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Options holds the configuration for documentation generation.
// It can be loaded from YAML with LoadOptions.
type Options struct {
	// APIVersion is the version of the documented API, e.g. "1.0".
	APIVersion string `yaml:"apiVersion" validate:"required"`

	// APIBasePath is the base URL of the documented API, written into every
	// resource declaration. e.g. "https://api.example.com/v1"
	APIBasePath string `yaml:"apiBasePath" validate:"required"`

	// DocBasePath is the base URL of the generated documents, written into the
	// resource listing. Default: APIBasePath.
	DocBasePath string `yaml:"docBasePath"`

	// SwaggerVersion is the Swagger spec version. Default: "1.1".
	SwaggerVersion string `yaml:"swaggerVersion" validate:"required"`

	// Translator names the naming strategy: "namebased" (default) or "json".
	Translator string `yaml:"translator" validate:"required,oneof=namebased json"`

	// OpaqueTypes are qualified type names never expanded into models.
	OpaqueTypes []string `yaml:"opaqueTypes" validate:"dive,required"`

	// ExcludedAnnotations hide any parameter carrying one of them.
	// Default: ["Context"].
	ExcludedAnnotations []string `yaml:"excludedAnnotations" validate:"dive,required"`

	// ErrorTags are documentation tags parsed as response messages.
	// Default: ["HTTP"].
	ErrorTags []string `yaml:"errorTags" validate:"dive,required"`

	// ExcludedNamespaces are qualified-name prefixes never expanded into models.
	// Default: ["javax.", "java."].
	ExcludedNamespaces []string `yaml:"excludedNamespaces" validate:"dive,required"`

	// DisableModels skips model extraction for operation parameters and
	// return types.
	DisableModels bool `yaml:"disableModels"`

	// UIBundle is the path of a zip archive unpacked next to the generated
	// documents. Empty disables it.
	UIBundle string `yaml:"uiBundle"`

	// Concurrency bounds the number of classes processed at once.
	// Default: GOMAXPROCS.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`

	// Logger receives progress logs. Default: slog.Default().
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

// WithDefaults returns a copy of o with unset fields defaulted.
func (o Options) WithDefaults() Options {
	if o.DocBasePath == "" {
		o.DocBasePath = o.APIBasePath
	}
	if o.SwaggerVersion == "" {
		o.SwaggerVersion = "1.1"
	}
	if o.Translator == "" {
		o.Translator = "namebased"
	}
	if o.ExcludedAnnotations == nil {
		o.ExcludedAnnotations = []string{"Context"}
	}
	if o.ErrorTags == nil {
		o.ErrorTags = []string{"HTTP"}
	}
	if o.ExcludedNamespaces == nil {
		o.ExcludedNamespaces = []string{"javax.", "java."}
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every problem with o at once.
// The returned error is an *Error with code invalid_config.
func (o Options) Validate() error {
	var result *multierror.Error
	if err := validate.Struct(o); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return wrapError(CodeInvalidConfig, err, "validate options")
		}
		for _, ve := range valErrs {
			result = multierror.Append(result, fmt.Errorf("%s: %s", ve.Namespace(), formatValidationError(ve)))
		}
	}
	if o.UIBundle != "" {
		if _, err := os.Stat(o.UIBundle); err != nil {
			result = multierror.Append(result, fmt.Errorf("Options.UIBundle: %w", err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return wrapError(CodeInvalidConfig, err, "invalid options")
	}
	return nil
}

// parserOptions converts o into the core parser configuration.
func (o Options) parserOptions() (parser.Options, error) {
	tr, err := translator.ByName(o.Translator)
	if err != nil {
		return parser.Options{}, wrapError(CodeInvalidConfig, err, "translator")
	}
	return parser.Options{
		Translator:          tr,
		OpaqueTypes:         o.OpaqueTypes,
		ExcludedAnnotations: o.ExcludedAnnotations,
		ErrorTags:           o.ErrorTags,
		ExcludedNamespaces:  o.ExcludedNamespaces,
		ParseModels:         !o.DisableModels,
	}, nil
}

// LoadOptions reads Options from a YAML file. Unknown keys are rejected.
func LoadOptions(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, wrapError(CodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()
	return DecodeOptions(f)
}

// DecodeOptions reads Options from YAML.
func DecodeOptions(r io.Reader) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, wrapError(CodeInvalidConfig, err, "decode options")
	}
	return o, nil
}
