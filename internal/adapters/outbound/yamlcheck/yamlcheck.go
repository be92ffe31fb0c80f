package yamlcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/repovalidate/repovalidate/internal/domain/metadata"
)

var errMultipleDocuments = errors.New("expected a single document in the stream but found another document")

// Validator implements domain.Validator for structured-data files: the file
// must parse as a single YAML document and carry a complete metadata section.
type Validator struct {
	mandatory []string
}

// New creates a Validator requiring the given metadata keys.
func New(mandatory []string) *Validator {
	return &Validator{mandatory: mandatory}
}

// Validate returns the YAMLVALID outcome and, when parsing succeeded, the
// METADATA outcome.
func (v *Validator) Validate(_ context.Context, path string) ([]domain.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := parse(data)
	if err != nil {
		return []domain.Outcome{
			domain.Fail(domain.CheckYAMLValid, path, domain.KindParseFailure, strings.Split(err.Error(), "\n")...),
		}, nil
	}

	return []domain.Outcome{
		domain.Pass(domain.CheckYAMLValid, path),
		v.checkMetadata(path, doc),
	}, nil
}

func (v *Validator) checkMetadata(path string, doc *yaml.Node) domain.Outcome {
	res := metadata.Check(doc, v.mandatory)
	switch {
	case res.SectionMissing:
		return domain.Fail(domain.CheckMetadata, path, domain.KindMetadataMissing, domain.ErrMetadataMissing.Error())
	case res.NotMapping:
		return domain.Fail(domain.CheckMetadata, path, domain.KindMetadataIncomplete, "metadata section is not a mapping")
	case len(res.MissingKeys) > 0:
		return domain.Fail(domain.CheckMetadata, path, domain.KindMetadataIncomplete,
			fmt.Sprintf("mandatory keys missing: %s", strings.Join(res.MissingKeys, ", ")),
			fmt.Sprintf("actual keys present: %s", strings.Join(res.PresentKeys, ", ")),
		)
	case res.EmptyKey != "":
		return domain.Fail(domain.CheckMetadata, path, domain.KindMetadataIncomplete,
			fmt.Sprintf("%s has no content", res.EmptyKey))
	default:
		return domain.Pass(domain.CheckMetadata, path)
	}
}

// parse decodes exactly one document. An empty stream yields a nil node.
func parse(data []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, errMultipleDocuments
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	return &doc, nil
}
