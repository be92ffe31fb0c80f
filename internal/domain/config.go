package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

// DefaultReportPath is where failure blocks are appended unless configured
// otherwise. Relative paths resolve against the working directory.
const DefaultReportPath = "build-error.txt"

// DefaultMandatoryKeys are the keys every metadata section must carry.
var DefaultMandatoryKeys = []string{"name", "format", "description", "maintainer", "os", "devices"}

// Config holds run configuration loaded from .repovalidate.yaml and
// overridden by command-line flags.
type Config struct {
	ReportPath     string          `yaml:"report_path"     json:"report_path"             validate:"required"`
	DefaultVariant Variant         `yaml:"default_variant" json:"default_variant"         validate:"oneof=shell php skip"`
	Timeout        time.Duration   `yaml:"timeout"         json:"timeout,omitempty"       validate:"gte=0"`
	ExcludePaths   []string        `yaml:"exclude_paths"   json:"exclude_paths,omitempty" validate:"dive,required,glob"`
	Extensions     ExtensionConfig `yaml:"extensions"      json:"extensions"`
	Style          StyleConfig     `yaml:"style"           json:"style"`
	Shellcheck     ToolConfig      `yaml:"shellcheck"      json:"shellcheck"`
	PHP            ToolConfig      `yaml:"php"             json:"php"`
	Metadata       MetadataConfig  `yaml:"metadata"        json:"metadata"`
}

// ExtensionConfig lists the filename suffixes that select each variant.
type ExtensionConfig struct {
	StructuredData []string `yaml:"structured_data" json:"structured_data" validate:"dive,required"`
	Style          []string `yaml:"style"           json:"style"           validate:"dive,required"`
	PHP            []string `yaml:"php"             json:"php"             validate:"dive,required"`
}

// StyleConfig configures the in-process style checker.
type StyleConfig struct {
	Enabled       bool     `yaml:"enabled"         json:"enabled"`
	Ignore        []string `yaml:"ignore"          json:"ignore"          validate:"dive,required"`
	MaxLineLength int      `yaml:"max_line_length" json:"max_line_length" validate:"gte=1"`
}

// ToolConfig configures an external checker. Command may carry leading
// arguments, e.g. "docker run --rm koalaman/shellcheck".
type ToolConfig struct {
	Command string   `yaml:"command" json:"command"          validate:"required"`
	Ignore  []string `yaml:"ignore"  json:"ignore,omitempty" validate:"dive,required"`
}

// MetadataConfig configures the metadata completeness check of
// structured-data files.
type MetadataConfig struct {
	MandatoryKeys  []string `yaml:"mandatory_keys"   json:"mandatory_keys"   validate:"min=1,dive,required"`
	MissingIsFatal bool     `yaml:"missing_is_fatal" json:"missing_is_fatal"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		ReportPath:     DefaultReportPath,
		DefaultVariant: VariantShell,
		Extensions: ExtensionConfig{
			StructuredData: []string{".yaml"},
			Style:          []string{".py"},
			PHP:            []string{".php"},
		},
		Style: StyleConfig{
			Enabled:       true,
			Ignore:        []string{"E501"},
			MaxLineLength: 79,
		},
		Shellcheck: ToolConfig{Command: "shellcheck"},
		PHP:        ToolConfig{Command: "php"},
		Metadata: MetadataConfig{
			MandatoryKeys:  append([]string(nil), DefaultMandatoryKeys...),
			MissingIsFatal: true,
		},
	}
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = configValidate.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (%s)", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
