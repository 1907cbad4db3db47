package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractField(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		key    string
		want   string
		wantOK bool
	}{
		{"single quoted", `{'Industry': 'Retail'}`, "Industry", "Retail", true},
		{"double quoted", `{"Industry": "Retail"}`, "Industry", "Retail", true},
		{"no spaces", `{'Sector':'Diversified','Industry':'Diversified Financials','Zip':'33160'}`, "Industry", "Diversified Financials", true},
		{"apostrophe inside value", `{'CEO': 'Dan O'Neil', 'Industry': 'Food & Drug Stores'}`, "Industry", "Food & Drug Stores", true},
		{"apostrophe value itself", `{'CEO': 'Dan O'Neil'}`, "CEO", "Dan O'Neil", true},
		{"escaped quote", `{'Name': 'It\'s'}`, "Name", "It's", true},
		{"bare number", `{'Zip': 33160}`, "Zip", "33160", true},
		{"trailing comma", `{'Industry': 'Retail',}`, "Industry", "Retail", true},
		{"missing key", `{'Sector': 'Retail'}`, "Industry", "", false},
		{"null value", `{'Industry': None}`, "Industry", "", false},
		{"empty value", `{'Industry': ''}`, "Industry", "", false},
		{"empty text", "", "Industry", "", false},
		{"blank text", "   ", "Industry", "", false},
		{"not a mapping", "not-json", "Industry", "", false},
		{"unterminated", `{'Industry': 'Retail`, "Industry", "", false},
		{"trailing garbage", `{'Industry': 'Retail'} extra`, "Industry", "", false},
		{"nested value", `{'Industry': {'a': 'b'}}`, "Industry", "", false},
		{"unquoted key", `{Industry: 'Retail'}`, "Industry", "", false},
		{"unicode escape", `{"Industry": "Caf\u00e9"}`, "Industry", "Café", true},
		{"newline escape", `{"Industry": "A\nB"}`, "Industry", "A\nB", true},
		{"tab and slash escapes", `{"Industry": "A\t\/B\\C"}`, "Industry", "A\t/B\\C", true},
		{"surrogate pair", `{"Industry": "Retail \ud83d\ude00"}`, "Industry", "Retail 😀", true},
		{"unknown escape", `{"Industry": "A\qB"}`, "Industry", "", false},
		{"truncated unicode escape", `{"Industry": "Caf\u00"}`, "Industry", "", false},
		{"invalid hex escape", `{"Industry": "Caf\u00zz"}`, "Industry", "", false},
		{"unpaired surrogate", `{"Industry": "A\ud83d B"}`, "Industry", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractField(tt.text, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMapping_Errors(t *testing.T) {
	_, err := ParseMapping("")
	assert.True(t, errors.Is(err, ErrEmptySubfield))

	_, err = ParseMapping("not-json")
	assert.True(t, errors.Is(err, ErrMalformedSubfield))
}

func TestParseMapping_AllFields(t *testing.T) {
	fields, err := ParseMapping(`{'Sector': 'Retail', 'Ticker': None, 'Zip': '10001'}`)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, "Retail", *fields["Sector"])
	assert.Nil(t, fields["Ticker"])
	assert.Equal(t, "10001", *fields["Zip"])
}

func TestParseMapping_Empty(t *testing.T) {
	fields, err := ParseMapping("{ }")
	require.NoError(t, err)
	assert.Empty(t, fields)
}
