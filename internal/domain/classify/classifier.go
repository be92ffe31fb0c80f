package classify

import (
	"strings"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// Classifier maps a target path to a validator variant by filename suffix.
// Whether the style rule can match is decided once, at construction.
type Classifier struct {
	structured []string
	style      []string
	php        []string
}

// New builds a Classifier. A nil style checker disables the style rule, so
// style-extension files fall through to the later rules.
func New(ext domain.ExtensionConfig, style domain.StyleChecker) *Classifier {
	c := &Classifier{
		structured: ext.StructuredData,
		php:        ext.PHP,
	}
	if style != nil {
		c.style = ext.Style
	}
	return c
}

// Classify applies the rules in precedence order: structured data, style,
// PHP, then VariantOther for everything else.
func (c *Classifier) Classify(path string) domain.Variant {
	switch {
	case hasAnySuffix(path, c.structured):
		return domain.VariantStructuredData
	case hasAnySuffix(path, c.style):
		return domain.VariantStyle
	case hasAnySuffix(path, c.php):
		return domain.VariantPHP
	default:
		return domain.VariantOther
	}
}

// StyleEnabled reports whether the style rule is active.
func (c *Classifier) StyleEnabled() bool { return len(c.style) > 0 }

func hasAnySuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
