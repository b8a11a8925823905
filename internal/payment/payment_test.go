package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Request Tests
// ============================================

func TestSplitName(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedFirst string
		expectedLast  string
	}{
		{"two words", "Awa Traoré", "Awa", "Traoré"},
		{"single word", "Moussa", "Moussa", "Client"},
		{"three words keeps the rest", "Jean Paul Kouassi", "Jean", "Paul Kouassi"},
		{"surrounding spaces", "  Fatou  Diop ", "Fatou", "Diop"},
		{"empty", "", "", "Client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			assert.Equal(t, tt.expectedFirst, first)
			assert.Equal(t, tt.expectedLast, last)
		})
	}
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("ref-1", 925000, "Awa Traoré", "awa@test.com", "pk_test")

	assert.Equal(t, "ref-1", req.Reference)
	assert.Equal(t, 925000, req.Amount)
	assert.Equal(t, "XOF", req.Currency)
	assert.Equal(t, "Commande AfriMarket pour Awa Traoré", req.Description)
	assert.Equal(t, Customer{FirstName: "Awa", LastName: "Traoré", Email: "awa@test.com"}, req.Customer)
	assert.Equal(t, "pk_test", req.PublicKey)
}

// ============================================
// Outcome Tests
// ============================================

func TestClassify(t *testing.T) {
	tests := []struct {
		status   string
		expected Outcome
	}{
		{"approved", OutcomeApproved},
		{"successful", OutcomeApproved},
		{"APPROVED", OutcomeApproved},
		{"canceled", OutcomeCanceled},
		{"declined", OutcomeFailed},
		{"", OutcomeFailed},
		{"pending", OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.status))
		})
	}
}

// ============================================
// Country Tests
// ============================================

func TestCountries(t *testing.T) {
	all, err := Countries()

	require.NoError(t, err)
	require.Len(t, all, 20)
	assert.Equal(t, "CI", all[0].Code)
	assert.Equal(t, "+225", all[0].Prefix)
	assert.Contains(t, all[0].Operators, "Wave")
	for _, c := range all {
		assert.NotEmpty(t, c.Operators, c.Code)
	}
}

func TestFindCountry(t *testing.T) {
	sn, err := FindCountry("sn")
	require.NoError(t, err)
	assert.Equal(t, "Sénégal", sn.Name)

	_, err = FindCountry("FR")
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestCountries_ReturnsCopy(t *testing.T) {
	all, err := Countries()
	require.NoError(t, err)
	all[0].Name = "changed"
	all[0].Operators[0] = "changed"

	again, err := Countries()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Name)
	assert.NotContains(t, again[0].Operators, "changed")

	sn, err := FindCountry("SN")
	require.NoError(t, err)
	sn.Operators[0] = "changed"
	sn, err = FindCountry("SN")
	require.NoError(t, err)
	assert.NotContains(t, sn.Operators, "changed")
}
