// Package request turns panel selections into fully composed generation
// requests. Builders are pure: they validate inputs, compose prompts from
// the catalog tables and return the exact body to POST, without touching the
// network or the history.
package request

import (
	"fmt"
	"strings"

	"product-studio/internal/catalog"
	"product-studio/internal/domain"
	"product-studio/internal/media"
)

// Generation endpoints on the remote inference service.
const (
	EndpointImage     = "/api/generate"
	EndpointVideo     = "/api/generate-video"
	EndpointMockup3D  = "/api/generate-3d-mockup"
	EndpointBasicEdit = "/api/basic-edit"
)

// Source is one input image for a generation request.
type Source struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

// Generation is a single ready-to-dispatch request plus the metadata needed
// to record its result in the history.
type Generation struct {
	Endpoint    string
	Body        map[string]any
	Label       string
	Kind        media.Kind
	DisplayName string
	ColorTag    string
}

// ColorSelection is one swatch picked on the color variation panel. Name is
// optional for palette colors and labels custom picker values.
type ColorSelection struct {
	Hex  string `json:"hex"`
	Name string `json:"name,omitempty"`
}

// AnimationKnobs carries the advanced animation controls. Zero values take
// the panel defaults.
type AnimationKnobs struct {
	Guidance float64 `json:"guidance_scale,omitempty"`
	Steps    int     `json:"num_inference_steps,omitempty"`
	Frames   int     `json:"num_frames,omitempty"`
	Motion   float64 `json:"motion_strength,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Duration int     `json:"duration,omitempty"`
	Seed     int     `json:"seed,omitempty"`
}

// Builder composes generation requests from catalog presets.
type Builder struct {
	cat *catalog.Catalog
}

// NewBuilder wires a builder to the preset catalog.
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Edit builds an AI edit request. Either presetID or prompt must be set;
// presets win when both are. Strength in [0, 100] scales the guidance from
// 7.0 up to 10.0.
func (b *Builder) Edit(src Source, presetID, prompt string, strength float64) (Generation, error) {
	if err := validateSource(src); err != nil {
		return Generation{}, err
	}
	if err := inRange("strength", strength, 0, 100); err != nil {
		return Generation{}, err
	}
	name := "Custom Edit"
	if presetID != "" {
		preset, err := b.cat.EditPreset(presetID)
		if err != nil {
			return Generation{}, err
		}
		prompt = preset.Prompt
		name = preset.Name
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Generation{}, domain.ErrEmptyPrompt
	}
	guidance := 7.0 + strength/100*3.0
	return Generation{
		Endpoint: EndpointImage,
		Body: map[string]any{
			"prompt":              prompt,
			"image_base64":        media.StripDataURI(src.Payload),
			"guidance_scale":      guidance,
			"num_inference_steps": 25,
		},
		Label:       "Applying " + name,
		Kind:        media.KindEdit,
		DisplayName: name,
	}, nil
}

// ColorVariants builds one request per selected swatch. Palette colors use
// their tuned prompt; custom hexes get the generic transformation prompt.
func (b *Builder) ColorVariants(src Source, colors []ColorSelection, preserveDetails bool) ([]Generation, error) {
	if err := validateSource(src); err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("no colors selected: %w", domain.ErrInvalidParameter)
	}
	image := media.StripDataURI(src.Payload)
	gens := make([]Generation, 0, len(colors))
	for _, sel := range colors {
		if sel.Hex == "" {
			return nil, fmt.Errorf("color selection without hex: %w", domain.ErrInvalidParameter)
		}
		prompt := b.cat.ColorPrompt(sel.Hex, sel.Name) + b.cat.ColorSuffix
		if preserveDetails {
			prompt += b.cat.PreserveDetailsSuffix
		}
		name := sel.Name
		if name == "" {
			name = b.cat.ColorName(sel.Hex)
		}
		gens = append(gens, Generation{
			Endpoint: EndpointImage,
			Body: map[string]any{
				"prompt":              prompt,
				"image_base64":        image,
				"guidance_scale":      7.0,
				"num_inference_steps": 25,
			},
			Label:       "Generating " + name + " variant",
			Kind:        media.KindVariant,
			DisplayName: media.TitleName(name, "variant"),
			ColorTag:    sel.Hex,
		})
	}
	return gens, nil
}

// AdShots builds one styled advertisement request per source image. Either
// styleID or prompt must be set; the style prompt wins when both are.
func (b *Builder) AdShots(sources []Source, styleID, prompt string) ([]Generation, error) {
	styleName := "Custom"
	if styleID != "" {
		style, err := b.cat.AdStyle(styleID)
		if err != nil {
			return nil, err
		}
		prompt = style.Prompt
		styleName = style.Name
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if len(sources) == 0 {
		return nil, domain.ErrNoImageSelected
	}
	gens := make([]Generation, 0, len(sources))
	for _, src := range sources {
		if err := validateSource(src); err != nil {
			return nil, err
		}
		gens = append(gens, Generation{
			Endpoint: EndpointImage,
			Body: map[string]any{
				"prompt":              prompt + b.cat.AdSuffix,
				"image_base64":        media.StripDataURI(src.Payload),
				"guidance_scale":      8.0,
				"num_inference_steps": 35,
			},
			Label:       "Creating " + styleName + " ad",
			Kind:        media.KindAdShot,
			DisplayName: media.TitleName(styleName, "ad", src.Name),
		})
	}
	return gens, nil
}

// Lifestyle builds scenario shots for every source image. Enumeration order
// is sources outermost, scenarios innermost, so the gallery groups results
// by variant. An empty scenario list means every scenario in the category.
func (b *Builder) Lifestyle(sources []Source, categoryID, styleID string, scenarioNames []string) ([]Generation, error) {
	if len(sources) == 0 {
		return nil, domain.ErrNoImageSelected
	}
	cat := b.cat.Category(categoryID)
	style := b.cat.PhotoStyle(styleID)

	scenarios := cat.Scenarios
	if len(scenarioNames) > 0 {
		scenarios = nil
		for _, want := range scenarioNames {
			found := false
			for _, sc := range cat.Scenarios {
				if strings.EqualFold(sc.Name, want) {
					scenarios = append(scenarios, sc)
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("scenario %q: %w", want, domain.ErrUnknownPreset)
			}
		}
	}

	gens := make([]Generation, 0, len(sources)*len(scenarios))
	for _, src := range sources {
		if err := validateSource(src); err != nil {
			return nil, err
		}
		image := media.StripDataURI(src.Payload)
		for _, sc := range scenarios {
			prompt := sc.Prompt + ", " + style.Prompt + b.cat.LifestyleSuffix
			gens = append(gens, Generation{
				Endpoint: EndpointImage,
				Body: map[string]any{
					"prompt":              prompt,
					"image_base64":        image,
					"guidance_scale":      7.5,
					"num_inference_steps": 35,
					"width":               1024,
					"height":              1024,
				},
				Label:       "Shooting " + sc.Name,
				Kind:        media.KindLifestyle,
				DisplayName: media.TitleName(sc.Name, src.Name),
			})
		}
	}
	return gens, nil
}

// Animation builds a video generation request. With no custom prompt the
// prompt is composed from the product category and animation style tables;
// the resolved category and style IDs travel in the body either way.
func (b *Builder) Animation(src Source, prompt, categoryID, styleID string, knobs AnimationKnobs) (Generation, error) {
	if err := validateSource(src); err != nil {
		return Generation{}, err
	}
	category := b.cat.AnimationCategory(categoryID)
	if styleID == "" {
		styleID = b.cat.AnimationStyles[0].ID
	}
	styleName := "Custom Animation"
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		style, err := b.cat.AnimationStyle(styleID)
		if err != nil {
			return Generation{}, err
		}
		prompt = category.Prompt + ", " + style.Prompt + b.cat.AnimationSuffix
		styleName = style.Name
		styleID = style.ID
	}

	if knobs.Guidance == 0 {
		knobs.Guidance = 4.0
	}
	if knobs.Steps == 0 {
		knobs.Steps = 35
	}
	if knobs.Frames == 0 {
		knobs.Frames = 49
	}
	if knobs.Motion == 0 {
		knobs.Motion = 0.8
	}
	if knobs.Width == 0 && knobs.Height == 0 {
		knobs.Width, knobs.Height = 1280, 720
	}
	if err := validateAnimationKnobs(knobs); err != nil {
		return Generation{}, err
	}

	body := map[string]any{
		"prompt":              prompt,
		"image_base64":        media.StripDataURI(src.Payload),
		"category":            category.ID,
		"animation_style":     styleID,
		"guidance_scale":      knobs.Guidance,
		"num_inference_steps": knobs.Steps,
		"num_frames":          knobs.Frames,
		"motion_strength":     knobs.Motion,
		"width":               knobs.Width,
		"height":              knobs.Height,
		"cinematic_mode":      true,
	}
	if knobs.Duration != 0 {
		body["duration"] = knobs.Duration
	}
	if knobs.Seed != 0 {
		body["seed"] = knobs.Seed
	}
	return Generation{
		Endpoint:    EndpointVideo,
		Body:        body,
		Label:       "Animating " + src.Name,
		Kind:        media.KindAnimation,
		DisplayName: media.TitleName(styleName, src.Name),
	}, nil
}

// Mockup3D builds a device mockup request from catalog option IDs.
func (b *Builder) Mockup3D(src Source, modelID, angleID, lightingID string) (Generation, error) {
	if err := validateSource(src); err != nil {
		return Generation{}, err
	}
	model, err := b.cat.MockupModel(modelID)
	if err != nil {
		return Generation{}, err
	}
	angle, err := b.cat.MockupAngle(angleID)
	if err != nil {
		return Generation{}, err
	}
	light, err := b.cat.MockupLight(lightingID)
	if err != nil {
		return Generation{}, err
	}
	return Generation{
		Endpoint: EndpointMockup3D,
		Body: map[string]any{
			"image_base64": media.StripDataURI(src.Payload),
			"model":        model.ID,
			"angle":        angle.ID,
			"lighting":     light.ID,
		},
		Label:       "Rendering " + model.Name + " mockup",
		Kind:        media.KindMockup3D,
		DisplayName: media.TitleName(model.Name, angle.Name, "mockup"),
	}, nil
}

// Basic edit operations accepted by the remote endpoint.
var basicOps = map[string]struct{}{
	"brightness": {},
	"contrast":   {},
	"saturation": {},
	"rotate":     {},
	"flip":       {},
}

// BasicEdit builds a deterministic (non-AI) edit request.
func (b *Builder) BasicEdit(src Source, operation string, value float64) (Generation, error) {
	if err := validateSource(src); err != nil {
		return Generation{}, err
	}
	if _, ok := basicOps[operation]; !ok {
		return Generation{}, fmt.Errorf("basic edit operation %q: %w", operation, domain.ErrInvalidParameter)
	}
	return Generation{
		Endpoint: EndpointBasicEdit,
		Body: map[string]any{
			"image_base64": media.StripDataURI(src.Payload),
			"operation":    operation,
			"value":        value,
		},
		Label:       "Applying " + operation,
		Kind:        media.KindEdit,
		DisplayName: media.TitleName(operation, src.Name),
	}, nil
}

func validateSource(src Source) error {
	_, _, err := media.ValidateImagePayload(src.Payload)
	return err
}

func validateAnimationKnobs(k AnimationKnobs) error {
	if err := inRange("guidance_scale", k.Guidance, 1, 20); err != nil {
		return err
	}
	if err := inRange("num_inference_steps", float64(k.Steps), 1, 100); err != nil {
		return err
	}
	if err := inRange("num_frames", float64(k.Frames), 8, 120); err != nil {
		return err
	}
	if err := inRange("motion_strength", k.Motion, 0, 1); err != nil {
		return err
	}
	if err := dimension("width", k.Width); err != nil {
		return err
	}
	if err := dimension("height", k.Height); err != nil {
		return err
	}
	if k.Duration != 0 {
		if err := inRange("duration", float64(k.Duration), 1, 10); err != nil {
			return err
		}
	}
	return nil
}

func inRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %v outside [%v, %v]: %w", name, v, lo, hi, domain.ErrInvalidParameter)
	}
	return nil
}

// dimension allows 0 (omit, provider default) or a sane pixel size.
func dimension(name string, v int) error {
	if v == 0 {
		return nil
	}
	return inRange(name, float64(v), 256, 2048)
}
