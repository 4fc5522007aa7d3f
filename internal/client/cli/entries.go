package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/common"
)

// fail reports err and ends the local session when the server rejected the
// saved token.
func (a *App) fail(err error) error {
	if errors.Is(err, common.ErrorUnauthorized) {
		a.setUserName("")
	}
	return a.report(err)
}

func (a *App) List(ctx context.Context) error {
	entries, err := a.entryService.List(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, e)
	}
	return nil
}

// Add prompts for every field and creates the entry. Empty answers are
// stored as empty strings.
func (a *App) Add(ctx context.Context) error {
	var in models.EntryInput

	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Title", &in.Title},
		{"Writer", &in.Writer},
		{"Date (e.g. 2024-05-01)", &in.Date},
	} {
		s, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return a.report(err)
		}
		*f.dst = &s
	}

	text, err := getMultiline(a.reader, "Text", a.out)
	if err != nil {
		return a.report(err)
	}
	in.Text = &text

	image, err := getSimpleText(a.reader, "Image key or URL (optional)", a.out)
	if err != nil {
		return a.report(err)
	}
	in.Image = &image

	e, err := a.entryService.Add(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Created", e.ID)
	return nil
}

// Edit prompts for an id and for each field; empty answers keep the field.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to edit", a.out)
	if err != nil {
		return a.report(err)
	}

	var in models.EntryInput
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Title", &in.Title},
		{"Writer", &in.Writer},
		{"Date", &in.Date},
		{"Text", &in.Text},
		{"Image", &in.Image},
	} {
		v, err := getOptionalText(a.reader, f.prompt, a.out)
		if err != nil {
			return a.report(err)
		}
		*f.dst = v
	}

	e, err := a.entryService.Edit(ctx, id, in)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Updated", e)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", a.out)
	if err != nil {
		return a.report(err)
	}
	if err := a.entryService.Delete(ctx, id); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Entry deleted successfully")
	return nil
}

// AddImage uploads a local file through a presigned URL and prints its key,
// which goes into an entry's image field. With no path it only prints the
// presigned URL for an upload done by other means.
func (a *App) AddImage(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path of image file (empty for a bare upload URL)", a.out)
	if err != nil {
		return a.report(err)
	}

	if path == "" {
		up, err := a.entryService.NewImageUpload(ctx)
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintf(a.out, "key: %s\nupload with: curl -X PUT --upload-file <file> '%s'\n", up.Key, up.UploadURL)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return a.report(err)
	}
	key, err := a.entryService.UploadImage(ctx, data)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Uploaded, key:", key)
	return nil
}

func (a *App) ShowImage(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter image key", a.out)
	if err != nil {
		return a.report(err)
	}
	u, err := a.entryService.ImageURL(ctx, key)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, u)
	return nil
}
