package swaggerdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{APIVersion: "1", APIBasePath: "/api"}.WithDefaults()
	assert.Equal(t, "/api", o.DocBasePath)
	assert.Equal(t, "1.1", o.SwaggerVersion)
	assert.Equal(t, "namebased", o.Translator)
	assert.Equal(t, []string{"Context"}, o.ExcludedAnnotations)
	assert.Equal(t, []string{"HTTP"}, o.ErrorTags)
	assert.Equal(t, []string{"javax.", "java."}, o.ExcludedNamespaces)
	assert.Positive(t, o.Concurrency)
	assert.NotNil(t, o.Logger)

	kept := Options{DocBasePath: "/docs", ErrorTags: []string{}}.WithDefaults()
	assert.Equal(t, "/docs", kept.DocBasePath)
	assert.Empty(t, kept.ErrorTags, "explicitly empty lists are kept")
	require.NoError(t, o.Validate())
}

func TestOptions_ValidateAggregates(t *testing.T) {
	o := Options{Translator: "snake", ErrorTags: []string{""}, UIBundle: "/does/not/exist.zip"}.WithDefaults()
	err := o.Validate()
	require.Error(t, err)

	var docErr *Error
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, CodeInvalidConfig, docErr.Code)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	msgs := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, joined, "Options.APIVersion: required")
	assert.Contains(t, joined, "Options.APIBasePath: required")
	assert.Contains(t, joined, "Options.Translator: must be one of: namebased json")
	assert.Contains(t, joined, "Options.ErrorTags[0]: required")
	assert.Contains(t, joined, "Options.UIBundle")
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swaggerdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
apiVersion: "2.0"
apiBasePath: https://api.example.com
translator: json
opaqueTypes: [github.com/acme/api.Money]
errorTags: [HTTP, Status]
disableModels: true
concurrency: 2
`), 0o644))

	o, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", o.APIVersion)
	assert.Equal(t, "json", o.Translator)
	assert.Equal(t, []string{"github.com/acme/api.Money"}, o.OpaqueTypes)
	assert.Equal(t, []string{"HTTP", "Status"}, o.ErrorTags)
	assert.True(t, o.DisableModels)
	assert.Equal(t, 2, o.Concurrency)
	require.NoError(t, o.WithDefaults().Validate())
}

func TestLoadOptions_Errors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = DecodeOptions(strings.NewReader("bogus: 1\n"))
	var docErr *Error
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, CodeInvalidConfig, docErr.Code)

	o, err := DecodeOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, o.APIVersion)
}
