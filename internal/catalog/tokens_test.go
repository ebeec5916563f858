package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTokens_AppliesPresetAndBrand(t *testing.T) {
	tokens, err := ResolveTokens("modern-trust", "Acme Plumbing", TokenTweaks{})
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing", tokens.Brand)
	assert.Equal(t, "#1d4ed8", tokens.Palette.Primary)
	assert.Equal(t, "Inter", tokens.Typography.HeadingFamily)
	assert.Equal(t, DensityNormal, tokens.Density)
}

func TestResolveTokens_TweaksOverridePreset(t *testing.T) {
	tokens, err := ResolveTokens("modern-trust", "Acme", TokenTweaks{
		Primary: "#ff0000",
		Accent:  "#00ff00",
		Density: DensityTight,
	})
	require.NoError(t, err)

	assert.Equal(t, "#ff0000", tokens.Palette.Primary)
	assert.Equal(t, "#00ff00", tokens.Palette.Accent)
	assert.Equal(t, DensityTight, tokens.Density)
	// Untweaked values keep the preset.
	assert.Equal(t, "#1e3a8a", tokens.Palette.Secondary)
}

func TestResolveTokens_UnknownPreset(t *testing.T) {
	_, err := ResolveTokens("vaporwave", "Acme", TokenTweaks{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vaporwave")
}

func TestResolveTokens_SnapshotIsIndependent(t *testing.T) {
	first, err := ResolveTokens("warm-studio", "Acme", TokenTweaks{Primary: "#123456"})
	require.NoError(t, err)

	second, err := ResolveTokens("warm-studio", "Acme", TokenTweaks{})
	require.NoError(t, err)

	assert.Equal(t, "#123456", first.Palette.Primary)
	assert.Equal(t, "#9a3412", second.Palette.Primary, "tweaks must not leak into the preset table")
}

func TestPresetIDs_AllResolve(t *testing.T) {
	for _, id := range PresetIDs() {
		_, err := ResolveTokens(id, "Acme", TokenTweaks{})
		assert.NoError(t, err, "preset %s should resolve", id)
	}
}

func TestValidSignature_KnownAndEmpty(t *testing.T) {
	assert.True(t, ValidSignature(SignatureNone))
	for _, sig := range Signatures() {
		assert.True(t, ValidSignature(sig))
	}
	assert.False(t, ValidSignature("vaporwave"))
}

func TestValidDensity_KnownAndEmpty(t *testing.T) {
	assert.True(t, ValidDensity(""))
	assert.True(t, ValidDensity(DensityLoose))
	assert.False(t, ValidDensity("cramped"))
}
