package swaggerdoc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/broady/swaggerdoc/sink"
	"github.com/broady/swaggerdoc/swagger"
	"github.com/mholt/archives"
)

// ListingFile is the name of the resource listing document.
const ListingFile = "service.json"

// ResourceName derives the file name of a declaration from its resource
// path: the leading slash is dropped, slashes become underscores and braces
// are removed. "/users/{id}/orders" becomes "users_id_orders".
func ResourceName(resourcePath string) string {
	name := strings.TrimPrefix(resourcePath, "/")
	name = strings.ReplaceAll(name, "/", "_")
	return strings.NewReplacer("{", "", "}", "").Replace(name)
}

// Write stores each declaration as <name>.json and the resource listing as
// service.json. Entries of a listing already present in out are kept after
// the new ones, so several modules can share one output directory. The UI
// bundle, if configured, is unpacked last.
func (g *Generator) Write(ctx context.Context, out sink.Sink, decls []*swagger.Declaration) (*Result, error) {
	opts := g.opts.WithDefaults()
	log := opts.Logger
	res := &Result{
		Declarations: decls,
		Listing: &swagger.ResourceListing{
			APIVersion:     opts.APIVersion,
			SwaggerVersion: opts.SwaggerVersion,
			BasePath:       opts.DocBasePath,
			APIs:           []swagger.ResourceListingAPI{},
		},
	}

	for _, d := range decls {
		if d.ResourcePath == "" {
			continue
		}
		name := ResourceName(d.ResourcePath)
		file := name + ".json"
		if err := writeJSON(ctx, out, file, d); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, file)
		res.Listing.APIs = append(res.Listing.APIs, swagger.ResourceListingAPI{
			Path:        "/" + name + ".{format}",
			Description: d.Description,
		})
	}

	merged, err := mergeListing(ctx, out, res.Listing)
	if err != nil {
		return nil, err
	}
	if merged > 0 {
		log.Info("merged existing resource listing", slog.Int("apis", merged))
	}
	if err := writeJSON(ctx, out, ListingFile, res.Listing); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, ListingFile)

	if opts.UIBundle != "" {
		files, err := extractBundle(ctx, out, opts.UIBundle)
		if err != nil {
			return nil, err
		}
		log.Info("unpacked UI bundle", slog.String("bundle", opts.UIBundle), slog.Int("files", len(files)))
		res.Files = append(res.Files, files...)
	}
	return res, nil
}

// mergeListing appends the entries of a previously written listing that
// listing does not already contain. It returns the number of entries added.
func mergeListing(ctx context.Context, out sink.Sink, listing *swagger.ResourceListing) (int, error) {
	data, err := out.ReadFile(ctx, ListingFile)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapError(CodeWrite, err, "read existing %s", ListingFile)
	}
	var existing swagger.ResourceListing
	if err := json.Unmarshal(data, &existing); err != nil {
		return 0, wrapError(CodeWrite, err, "parse existing %s", ListingFile)
	}
	added := 0
	for _, api := range existing.APIs {
		if !listing.Contains(api) {
			listing.APIs = append(listing.APIs, api)
			added++
		}
	}
	return added, nil
}

func writeJSON(ctx context.Context, out sink.Sink, file string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return wrapError(CodeWrite, err, "encode %s", file)
	}
	if err := out.WriteFile(ctx, file, append(data, '\n')); err != nil {
		return wrapError(CodeWrite, err, "write %s", file)
	}
	return nil
}

// extractBundle copies every regular file of a zip archive into out,
// keeping archive paths.
func extractBundle(ctx context.Context, out sink.Sink, bundle string) ([]string, error) {
	f, err := os.Open(bundle)
	if err != nil {
		return nil, wrapError(CodeBundle, err, "open UI bundle")
	}
	defer f.Close()

	var files []string
	err = archives.Zip{}.Extract(ctx, f, func(ctx context.Context, info archives.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		name := path.Clean(strings.TrimPrefix(info.NameInArchive, "/"))
		rc, err := info.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if err := out.WriteFile(ctx, name, data); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	})
	if err != nil {
		return nil, wrapError(CodeBundle, err, "unpack UI bundle %s", bundle)
	}
	return files, nil
}
