package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Multimodal content parts. Files travel base64-encoded inside JSON; files
// too large for inline transport are uploaded via a presigned URL first and
// referenced by their storage key (see GetUploadURL and FileRef).

// ContentPart is one element of a multimodal content list.
type ContentPart interface {
	isContentPart()
}

// TextContent is a plain text block.
type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) isContentPart() {}

func (t TextContent) MarshalJSON() ([]byte, error) {
	type alias TextContent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"text", alias(t)})
}

// ImageContent is a base64-encoded image.
type ImageContent struct {
	Data      string `json:"data"`
	MediaType string `json:"media_type"`
	Filename  string `json:"filename,omitempty"`
}

func (ImageContent) isContentPart() {}

func (i ImageContent) MarshalJSON() ([]byte, error) {
	type alias ImageContent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"image", alias(i)})
}

// AudioContent is a base64-encoded audio recording for transcription.
type AudioContent struct {
	Data      string `json:"data"`
	MediaType string `json:"media_type"`
	Filename  string `json:"filename,omitempty"`
}

func (AudioContent) isContentPart() {}

func (a AudioContent) MarshalJSON() ([]byte, error) {
	type alias AudioContent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"audio", alias(a)})
}

// DocumentContent is a base64-encoded document for text extraction.
type DocumentContent struct {
	Data      string `json:"data"`
	MediaType string `json:"media_type"`
	Filename  string `json:"filename,omitempty"`
}

func (DocumentContent) isContentPart() {}

func (d DocumentContent) MarshalJSON() ([]byte, error) {
	type alias DocumentContent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"document", alias(d)})
}

// FileRef references a previously uploaded file by its opaque storage key.
type FileRef struct {
	StorageKey string `json:"s3_key"`
	Bucket     string `json:"bucket,omitempty"`
	MediaType  string `json:"media_type,omitempty"`
	Filename   string `json:"filename,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
}

func (FileRef) isContentPart() {}

func (f FileRef) MarshalJSON() ([]byte, error) {
	type alias FileRef
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"s3_ref", alias(f)})
}

// Extension tables for media-type detection.
var (
	imageExtensions = map[string]string{
		".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
		".gif": "image/gif", ".webp": "image/webp", ".bmp": "image/bmp",
		".svg": "image/svg+xml",
	}
	audioExtensions = map[string]string{
		".mp3": "audio/mpeg", ".wav": "audio/wav", ".m4a": "audio/mp4",
		".ogg": "audio/ogg", ".flac": "audio/flac", ".aac": "audio/aac",
		".webm": "audio/webm",
	}
	documentExtensions = map[string]string{
		".pdf": "application/pdf", ".doc": "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".txt": "text/plain", ".csv": "text/csv", ".rtf": "application/rtf",
		".md": "text/markdown", ".json": "application/json",
	}
)

// LoadFile reads a file, base64-encodes it, and returns the matching
// content part based on the file extension.
func LoadFile(path string) (ContentPart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}
	return PartFromBytes(data, filepath.Base(path))
}

// PartFromBytes builds a content part from raw bytes, detecting the part
// kind and media type from the filename extension.
func PartFromBytes(data []byte, filename string) (ContentPart, error) {
	encoded := base64.StdEncoding.EncodeToString(data)
	ext := strings.ToLower(filepath.Ext(filename))
	if mediaType, ok := imageExtensions[ext]; ok {
		return ImageContent{Data: encoded, MediaType: mediaType, Filename: filename}, nil
	}
	if mediaType, ok := audioExtensions[ext]; ok {
		return AudioContent{Data: encoded, MediaType: mediaType, Filename: filename}, nil
	}
	if mediaType, ok := documentExtensions[ext]; ok {
		return DocumentContent{Data: encoded, MediaType: mediaType, Filename: filename}, nil
	}
	return nil, &ClientError{
		Message: fmt.Sprintf("cannot detect file type for %q", filename),
	}
}

// MultimodalOptions selects the processing models for multimodal content.
type MultimodalOptions struct {
	VisionModel string
	AudioModel  string
	FastMode    bool
}

// ProcessMultimodalContent extracts text from content parts (OCR,
// transcription, image description) without storing anything.
func (c *Client) ProcessMultimodalContent(ctx context.Context, parts []ContentPart, opts *MultimodalOptions) (map[string]interface{}, error) {
	if len(parts) == 0 {
		return nil, &ClientError{Message: "content parts are required"}
	}
	if opts == nil {
		opts = &MultimodalOptions{}
	}
	payload := map[string]interface{}{
		"content_parts": parts,
		"fast_mode":     opts.FastMode,
	}
	if opts.VisionModel != "" {
		payload["vision_model"] = opts.VisionModel
	}
	if opts.AudioModel != "" {
		payload["audio_model"] = opts.AudioModel
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/multimodal/process", requestOptions{jsonBody: payload})
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(unwrapResults(raw), &result); err != nil {
		return nil, &ClientError{Message: "malformed multimodal response", Err: err}
	}
	return result, nil
}

// GetUploadURL requests a presigned upload slot for a large file. The
// returned storage key is referenced via FileRef in subsequent writes.
func (c *Client) GetUploadURL(ctx context.Context, filename, contentType string, fileSize int64) (*UploadTarget, error) {
	if err := requireArg("filename", filename); err != nil {
		return nil, err
	}
	if err := requireArg("contentType", contentType); err != nil {
		return nil, err
	}
	query := queryValues(map[string]interface{}{
		"filename":     filename,
		"content_type": contentType,
		"file_size":    fileSize,
	})
	raw, err := c.do(ctx, http.MethodPost, "/v1/upload-url", requestOptions{query: query})
	if err != nil {
		return nil, err
	}
	var target UploadTarget
	if err := json.Unmarshal(unwrapResults(raw), &target); err != nil {
		return nil, &ClientError{Message: "malformed upload-url response", Err: err}
	}
	return &target, nil
}
