package media

import (
	"errors"
	"strings"
	"testing"

	"product-studio/internal/domain"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestStripDataURI(t *testing.T) {
	if got := StripDataURI("data:image/png;base64,QUJD"); got != "QUJD" {
		t.Fatalf("StripDataURI = %q", got)
	}
	// Bare base64 passes through, even when it contains no comma.
	if got := StripDataURI("QUJD"); got != "QUJD" {
		t.Fatalf("bare payload = %q", got)
	}
}

func TestPayloadMIME(t *testing.T) {
	cases := map[string]string{
		"data:video/mp4;base64,AAAA":  "video/mp4",
		"data:image/jpeg;base64,AAAA": "image/jpeg",
		"QUJD":                        "image/png",
	}
	for payload, want := range cases {
		if got := PayloadMIME(payload); got != want {
			t.Fatalf("PayloadMIME(%q) = %q, want %q", payload, got, want)
		}
	}
}

func TestItemFilenameUsesMIMEExtension(t *testing.T) {
	video := NewItem(KindAnimation, DataURI("video/mp4", "AAAA"), "Hero Reveal", "")
	if name := video.Filename(); !strings.HasSuffix(name, ".mp4") {
		t.Fatalf("video filename = %q, want .mp4 suffix", name)
	}
	jpeg := NewItem(KindEdit, DataURI("image/jpeg", "AAAA"), "Touch Up", "")
	if name := jpeg.Filename(); name != "touch-up.jpg" {
		t.Fatalf("jpeg filename = %q, want touch-up.jpg", name)
	}
	unnamed := NewItem(KindAdShot, DataURI("image/png", "AAAA"), "", "")
	if name := unnamed.Filename(); name != "ad-shot.png" {
		t.Fatalf("fallback filename = %q", name)
	}
}

func TestValidateImagePayload(t *testing.T) {
	w, h, err := ValidateImagePayload(DataURI("image/png", tinyPNG))
	if err != nil {
		t.Fatalf("valid png rejected: %v", err)
	}
	if w != 1 || h != 1 {
		t.Fatalf("dimensions = %dx%d, want 1x1", w, h)
	}

	if _, _, err := ValidateImagePayload(""); !errors.Is(err, domain.ErrNoImageSelected) {
		t.Fatalf("empty payload err = %v, want ErrNoImageSelected", err)
	}
	if _, _, err := ValidateImagePayload("not base64!!"); err == nil {
		t.Fatalf("garbage payload should be rejected")
	}
	if _, _, err := ValidateImagePayload("QUJDRA=="); err == nil {
		t.Fatalf("non-image bytes should be rejected")
	}
}

func TestTitleName(t *testing.T) {
	if got := TitleName("urban walking", "red"); got != "Urban Walking - Red" {
		t.Fatalf("TitleName = %q", got)
	}
	if got := TitleName("", "neon city"); got != "Neon City" {
		t.Fatalf("TitleName with empty part = %q", got)
	}
}
