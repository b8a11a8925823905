package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Slug Generation Tests
// ============================================

func TestGenerateSlug_Various(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedSlug string
	}{
		{"accented", "Électronique", "electronique"},
		{"accented suffix", "Beauté", "beaute"},
		{"plain", "Mode", "mode"},
		{"with spaces", "Maison & Jardin", "maison-jardin"},
		{"with underscores", "Sport_Plein_Air", "sport-plein-air"},
		{"leading/trailing spaces", "  Sport  ", "sport"},
		{"multiple hyphens", "Multi---Hyphen", "multi-hyphen"},
		{"non latin", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedSlug, generateSlug(tt.input))
		})
	}
}

// ============================================
// Lookup Tests
// ============================================

func TestList_OrderAndSlugs(t *testing.T) {
	list := List()

	require.Len(t, list, 5)
	assert.Equal(t, "Électronique", list[0].Name)
	assert.Equal(t, "electronique", list[0].Slug)
	assert.Equal(t, "Sport", list[4].Name)
	assert.Equal(t, "Électronique", Default())
}

func TestIsAll(t *testing.T) {
	assert.True(t, IsAll("Tous"))
	assert.True(t, IsAll(""))
	assert.True(t, IsAll("all"))
	assert.True(t, IsAll(" ALL "))
	assert.False(t, IsAll("Mode"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mode", "Mode"},
		{"beaute", "Beauté"},
		{"Beauté", "Beauté"},
		{"electronique", "Électronique"},
		{"Tous", All},
		{"", All},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("Jouets")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
