// Package media holds the session's generated and uploaded visual content:
// the MediaItem record, payload encoding helpers and the ordered,
// de-duplicated history backing the gallery.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"time"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"product-studio/internal/domain"
)

// Kind identifies how an item entered the history.
type Kind string

const (
	KindOriginal  Kind = "original"
	KindEdit      Kind = "edit"
	KindVariant   Kind = "color-variant"
	KindAdShot    Kind = "ad-shot"
	KindLifestyle Kind = "lifestyle-scenario"
	KindAnimation Kind = "animation"
	KindMockup3D  Kind = "3d-mockup"
)

// Item is one unit of visual content tracked in the session history.
// Payload is a data URI (data:image/png;base64,... or data:video/mp4;...).
type Item struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Payload     string    `json:"payload"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	ColorTag    string    `json:"color_tag,omitempty"`
}

// NewItem assembles an item with a fresh ID and timestamp.
func NewItem(kind Kind, payload, displayName, colorTag string) Item {
	return Item{
		ID:          uuid.NewString(),
		Kind:        kind,
		Payload:     payload,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
		ColorTag:    colorTag,
	}
}

// IsVideo reports whether the payload carries video content.
func (it Item) IsVideo() bool {
	return strings.HasPrefix(it.Payload, "data:video/")
}

// MIME extracts the MIME type from the payload data URI. Payloads without a
// recognizable prefix default to image/png, matching how bare base64 images
// were treated upstream.
func (it Item) MIME() string {
	return PayloadMIME(it.Payload)
}

// Filename derives a download filename from the display name and payload MIME.
func (it Item) Filename() string {
	name := strings.ToLower(strings.TrimSpace(it.DisplayName))
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '/' || r == '\\'
	}), "-")
	if name == "" {
		name = string(it.Kind)
	}
	ext := ExtensionForMIME(it.MIME())
	if ext == "" {
		ext = ".bin"
	}
	return name + ext
}

// Bytes decodes the base64 component of the payload.
func (it Item) Bytes() ([]byte, error) {
	raw := StripDataURI(it.Payload)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("media: decode payload: %w", err)
	}
	return data, nil
}

// PayloadMIME returns the MIME type encoded in a data URI, or image/png for
// bare base64 strings.
func PayloadMIME(payload string) string {
	if !strings.HasPrefix(payload, "data:") {
		return "image/png"
	}
	rest := strings.TrimPrefix(payload, "data:")
	if idx := strings.IndexAny(rest, ";,"); idx >= 0 {
		rest = rest[:idx]
	}
	if rest == "" {
		return "image/png"
	}
	return rest
}

// StripDataURI returns the base64 component of a data URI: everything after
// the first comma. Strings without a comma pass through unchanged.
func StripDataURI(payload string) string {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		return payload[idx+1:]
	}
	return payload
}

// DataURI wraps a base64 string into a data URI with the given MIME type.
func DataURI(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// ExtensionForMIME maps a MIME type to a download extension.
func ExtensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}

// ValidateImagePayload checks that a payload (data URI or bare base64)
// decodes to a usable image and returns its dimensions. Tool panels call
// this before dispatching a request so a broken source fails locally.
func ValidateImagePayload(payload string) (width, height int, err error) {
	raw := StripDataURI(strings.TrimSpace(payload))
	if raw == "" {
		return 0, 0, domain.ErrNoImageSelected
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("media: payload is not base64: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("media: payload is not a decodable image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

var titleCaser = cases.Title(language.Und)

// TitleName joins non-empty parts into a title-cased display name.
func TitleName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, titleCaser.String(p))
		}
	}
	return strings.Join(kept, " - ")
}
