package employee

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileInputDistinguishesAbsentNullAndEmpty(t *testing.T) {
	body := `{
		"personalDetails": {"personal_email": "a@example.com", "first_name": "A"},
		"education": [],
		"additionalInfo": null,
		"workHistory": [{"company_name": "Acme", "designation": "Clerk", "from_date": "2020-01-01"}]
	}`
	var in ProfileInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.True(t, in.PersonalDetails.Valid)
	assert.Equal(t, "A", in.PersonalDetails.Value.FirstName)

	assert.True(t, in.Education.Set)
	assert.True(t, in.Education.Valid)
	assert.Empty(t, in.Education.Value)

	assert.True(t, in.AdditionalInfo.Set)
	assert.False(t, in.AdditionalInfo.Valid)

	assert.False(t, in.LanguageSkills.Set)
	assert.False(t, in.section("languageSkills").present())
	assert.True(t, in.section("additionalInfo").null())

	require.Len(t, in.WorkHistory.Value, 1)
	assert.Equal(t, "2020-01-01", *in.WorkHistory.Value[0].FromDate)
}

func TestProfileInputMarshalOmitsAbsentSections(t *testing.T) {
	in := ProfileInput{
		Education:      Some([]Education{}),
		AdditionalInfo: Null[AdditionalInfo](),
	}
	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"education": [], "additionalInfo": null}`, string(out))
}

func TestPerformanceRatingAliases(t *testing.T) {
	var p PerformanceRating
	require.NoError(t, json.Unmarshal([]byte(`{
		"last_year_year": "2023", "last_year": "A",
		"second_last_year_rating": "B+", "second_last_year": "C",
		"third_last_year": "B"
	}`), &p))

	assert.Equal(t, "2023", *p.LastYearYear)
	assert.Equal(t, "A", *p.LastYearRating)
	assert.Equal(t, "B+", *p.SecondLastYearRating)
	assert.Equal(t, "B", *p.ThirdLastYearRating)
}
