package request

import (
	"errors"
	"strings"
	"testing"

	"product-studio/internal/catalog"
	"product-studio/internal/domain"
	"product-studio/internal/media"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return NewBuilder(cat)
}

func pngSource(name string) Source {
	return Source{Name: name, Payload: media.DataURI("image/png", tinyPNG)}
}

func TestEditRequiresPromptOrPreset(t *testing.T) {
	b := testBuilder(t)

	if _, err := b.Edit(pngSource("cup"), "", "   ", 50); !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("err = %v, want ErrEmptyPrompt", err)
	}
}

func TestEditGuidanceScalesWithStrength(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.Edit(pngSource("cup"), "", "make it shinier", 50)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if gen.Endpoint != EndpointImage {
		t.Fatalf("endpoint = %q", gen.Endpoint)
	}
	if g := gen.Body["guidance_scale"].(float64); g != 8.5 {
		t.Fatalf("guidance at strength 50 = %v, want 8.5", g)
	}
	if s := gen.Body["num_inference_steps"].(int); s != 25 {
		t.Fatalf("steps = %v, want 25", s)
	}
	// Outbound payload is bare base64, no data URI prefix.
	if img := gen.Body["image_base64"].(string); strings.HasPrefix(img, "data:") {
		t.Fatalf("outbound image kept data URI prefix")
	}

	if _, err := b.Edit(pngSource("cup"), "", "x", 150); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("strength 150 err = %v, want ErrInvalidParameter", err)
	}
}

func TestEditPresetWinsOverCustomPrompt(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.Edit(pngSource("cup"), "background-remove", "ignored", 0)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if p := gen.Body["prompt"].(string); !strings.Contains(p, "transparent") {
		t.Fatalf("prompt = %q, want preset prompt", p)
	}
	if _, err := b.Edit(pngSource("cup"), "no-such-preset", "", 0); !errors.Is(err, domain.ErrUnknownPreset) {
		t.Fatalf("unknown preset err = %v", err)
	}
}

func TestColorVariantsComposePrompts(t *testing.T) {
	b := testBuilder(t)

	gens, err := b.ColorVariants(pngSource("cup"), []ColorSelection{
		{Hex: "#dc2626", Name: "Red"},
		{Hex: "#abcdef", Name: "Ice"},
	}, true)
	if err != nil {
		t.Fatalf("ColorVariants: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("len = %d, want 2", len(gens))
	}

	red := gens[0].Body["prompt"].(string)
	if !strings.Contains(red, "red color scheme") {
		t.Fatalf("palette prompt = %q", red)
	}
	if !strings.Contains(red, "studio lighting") {
		t.Fatalf("missing studio suffix: %q", red)
	}
	if !strings.Contains(red, "preserve textures") {
		t.Fatalf("missing preserve-details suffix: %q", red)
	}
	if gens[0].ColorTag != "#dc2626" || gens[0].Kind != media.KindVariant {
		t.Fatalf("metadata = %+v", gens[0])
	}

	custom := gens[1].Body["prompt"].(string)
	if !strings.Contains(custom, "Ice color scheme") {
		t.Fatalf("custom color fell through to wrong prompt: %q", custom)
	}
}

func TestColorVariantsRejectEmptySelection(t *testing.T) {
	b := testBuilder(t)

	if _, err := b.ColorVariants(pngSource("cup"), nil, false); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if _, err := b.ColorVariants(Source{Name: "cup"}, []ColorSelection{{Hex: "#fff"}}, false); !errors.Is(err, domain.ErrNoImageSelected) {
		t.Fatalf("missing payload err = %v, want ErrNoImageSelected", err)
	}
}

func TestAdShotsOnePerSource(t *testing.T) {
	b := testBuilder(t)

	gens, err := b.AdShots([]Source{pngSource("a"), pngSource("b")}, "neon-city", "")
	if err != nil {
		t.Fatalf("AdShots: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("len = %d, want 2", len(gens))
	}
	for _, g := range gens {
		if g.Body["guidance_scale"].(float64) != 8.0 || g.Body["num_inference_steps"].(int) != 35 {
			t.Fatalf("knobs = %v / %v", g.Body["guidance_scale"], g.Body["num_inference_steps"])
		}
		if p := g.Body["prompt"].(string); !strings.Contains(p, "award-winning commercial photography") {
			t.Fatalf("missing ad suffix: %q", p)
		}
	}

	if _, err := b.AdShots([]Source{pngSource("a")}, "", ""); !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("empty style+prompt err = %v", err)
	}
	if _, err := b.AdShots(nil, "neon-city", ""); !errors.Is(err, domain.ErrNoImageSelected) {
		t.Fatalf("no sources err = %v", err)
	}
}

func TestLifestyleEnumerationOrder(t *testing.T) {
	b := testBuilder(t)

	gens, err := b.Lifestyle([]Source{pngSource("red"), pngSource("blue")}, "shoes", "", []string{"Urban Walking", "Coffee Shop"})
	if err != nil {
		t.Fatalf("Lifestyle: %v", err)
	}
	// Sources are the outer loop, scenarios the inner loop.
	wantNames := []string{
		"Urban Walking - Red",
		"Coffee Shop - Red",
		"Urban Walking - Blue",
		"Coffee Shop - Blue",
	}
	if len(gens) != len(wantNames) {
		t.Fatalf("len = %d, want %d", len(gens), len(wantNames))
	}
	for i, want := range wantNames {
		if gens[i].DisplayName != want {
			t.Fatalf("gens[%d] = %q, want %q", i, gens[i].DisplayName, want)
		}
		if w := gens[i].Body["width"].(int); w != 1024 {
			t.Fatalf("width = %d, want 1024", w)
		}
	}

	if _, err := b.Lifestyle([]Source{pngSource("a")}, "shoes", "", []string{"Moon Base"}); !errors.Is(err, domain.ErrUnknownPreset) {
		t.Fatalf("unknown scenario err = %v", err)
	}
}

func TestAnimationDefaults(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.Animation(pngSource("cup"), "", "product", "cinematic_hero_reveal", AnimationKnobs{})
	if err != nil {
		t.Fatalf("Animation: %v", err)
	}
	if gen.Endpoint != EndpointVideo {
		t.Fatalf("endpoint = %q", gen.Endpoint)
	}
	body := gen.Body
	if body["guidance_scale"].(float64) != 4.0 || body["num_inference_steps"].(int) != 35 {
		t.Fatalf("guidance/steps = %v / %v", body["guidance_scale"], body["num_inference_steps"])
	}
	if body["num_frames"].(int) != 49 || body["motion_strength"].(float64) != 0.8 {
		t.Fatalf("frames/motion = %v / %v", body["num_frames"], body["motion_strength"])
	}
	if body["width"].(int) != 1280 || body["height"].(int) != 720 {
		t.Fatalf("dimensions = %vx%v", body["width"], body["height"])
	}
	if body["cinematic_mode"].(bool) != true {
		t.Fatalf("cinematic_mode not set")
	}
	if body["category"] != "product" || body["animation_style"] != "cinematic_hero_reveal" {
		t.Fatalf("category/style = %v / %v", body["category"], body["animation_style"])
	}
	if _, ok := body["seed"]; ok {
		t.Fatalf("seed should be omitted when unset")
	}
}

func TestAnimationSeedPassthrough(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.Animation(pngSource("cup"), "slow spin", "", "", AnimationKnobs{Seed: 42})
	if err != nil {
		t.Fatalf("Animation: %v", err)
	}
	if gen.Body["seed"].(int) != 42 {
		t.Fatalf("seed = %v, want 42", gen.Body["seed"])
	}
	// A custom prompt still carries the category and a concrete style ID.
	if gen.Body["category"] != "product" || gen.Body["animation_style"] == "" {
		t.Fatalf("category/style = %v / %v", gen.Body["category"], gen.Body["animation_style"])
	}
}

// The remote endpoints read the source image from image_base64; a body keyed
// any other way would generate from a null image.
func TestBodiesUseWireFieldNames(t *testing.T) {
	b := testBuilder(t)
	src := pngSource("cup")

	edit, err := b.Edit(src, "", "shine", 0)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	variants, err := b.ColorVariants(src, []ColorSelection{{Hex: "#dc2626"}}, false)
	if err != nil {
		t.Fatalf("ColorVariants: %v", err)
	}
	ads, err := b.AdShots([]Source{src}, "neon-city", "")
	if err != nil {
		t.Fatalf("AdShots: %v", err)
	}
	life, err := b.Lifestyle([]Source{src}, "shoes", "", []string{"Urban Walking"})
	if err != nil {
		t.Fatalf("Lifestyle: %v", err)
	}
	anim, err := b.Animation(src, "", "product", "cinematic_hero_reveal", AnimationKnobs{})
	if err != nil {
		t.Fatalf("Animation: %v", err)
	}
	mock, err := b.Mockup3D(src, "laptop", "front", "studio")
	if err != nil {
		t.Fatalf("Mockup3D: %v", err)
	}
	basic, err := b.BasicEdit(src, "rotate", 90)
	if err != nil {
		t.Fatalf("BasicEdit: %v", err)
	}

	for _, gen := range []Generation{edit, variants[0], ads[0], life[0], anim, mock, basic} {
		if _, ok := gen.Body["image_base64"]; !ok {
			t.Fatalf("%s body lacks image_base64: %v", gen.Endpoint, gen.Body)
		}
		if _, ok := gen.Body["image"]; ok {
			t.Fatalf("%s body carries stray image key", gen.Endpoint)
		}
	}
	for _, key := range []string{"category", "animation_style"} {
		if _, ok := anim.Body[key]; !ok {
			t.Fatalf("video body lacks %s: %v", key, anim.Body)
		}
	}
}

func TestAnimationKnobValidation(t *testing.T) {
	b := testBuilder(t)
	cases := []AnimationKnobs{
		{Guidance: 25},
		{Steps: 500},
		{Frames: 4},
		{Motion: 1.5},
		{Width: 100, Height: 720},
		{Duration: 60},
	}
	for i, k := range cases {
		if _, err := b.Animation(pngSource("x"), "spin", "", "", k); !errors.Is(err, domain.ErrInvalidParameter) {
			t.Fatalf("case %d: err = %v, want ErrInvalidParameter", i, err)
		}
	}
}

func TestMockup3DOptions(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.Mockup3D(pngSource("app"), "laptop", "angle", "studio")
	if err != nil {
		t.Fatalf("Mockup3D: %v", err)
	}
	if gen.Endpoint != EndpointMockup3D || gen.Kind != media.KindMockup3D {
		t.Fatalf("gen = %+v", gen)
	}
	if gen.Body["model"] != "laptop" || gen.Body["angle"] != "angle" || gen.Body["lighting"] != "studio" {
		t.Fatalf("body = %v", gen.Body)
	}

	if _, err := b.Mockup3D(pngSource("app"), "fridge", "front", "studio"); !errors.Is(err, domain.ErrUnknownPreset) {
		t.Fatalf("unknown model err = %v", err)
	}
}

func TestBasicEditOperations(t *testing.T) {
	b := testBuilder(t)

	gen, err := b.BasicEdit(pngSource("cup"), "brightness", 20)
	if err != nil {
		t.Fatalf("BasicEdit: %v", err)
	}
	if gen.Endpoint != EndpointBasicEdit || gen.Body["operation"] != "brightness" {
		t.Fatalf("gen = %+v", gen)
	}

	if _, err := b.BasicEdit(pngSource("cup"), "sharpen", 1); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("unknown op err = %v", err)
	}
}
