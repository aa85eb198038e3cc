package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
)

// encodeMultipart builds a multipart/form-data body. Scalar parameters become
// text parts, binary parameters read the referenced file in full and attach
// its bytes under the parameter key with the file's base name.
func encodeMultipart(params *Params) (*requestBody, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, pair := range params.Pairs() {
		if err := w.WriteField(pair.Key, pair.Value); err != nil {
			return nil, fmt.Errorf("failed to write field %q: %w", pair.Key, err)
		}
	}

	for _, file := range params.files() {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %q: %w", file.Key, err)
		}
		part, err := w.CreateFormFile(file.Key, filepath.Base(file.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to create part %q: %w", file.Key, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write part %q: %w", file.Key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &requestBody{
		reader:      buf,
		contentType: w.FormDataContentType(),
	}, nil
}
