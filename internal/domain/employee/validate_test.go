package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateListsEveryMissingField(t *testing.T) {
	in := sampleInput(key)
	in.PersonalDetails.Value.FirstName = ""
	in.PersonalDetails.Value.MobileNo = ""
	in.ProfessionalDetails.Value.JobBand = ""
	in.Education.Value[1].Institution = ""
	in.EmergencyContacts.Value[0].ContactNumber = ""
	in.NischchintNominee.Value.Relation = ""

	assert.Equal(t, []string{
		"first_name",
		"mobile_no",
		"professionalDetails.job_band",
		"nischchintNominee.relation",
		"emergencyContacts[0].contact_number",
		"education[1].institution",
	}, validationFields(t, Validate(in, true)))
}

func TestValidateCreateRequiresRoot(t *testing.T) {
	err := Validate(&ProfileInput{}, true)
	assert.Equal(t, []string{"personalDetails"}, validationFields(t, err))

	err = Validate(nil, true)
	assert.Equal(t, []string{"personalDetails"}, validationFields(t, err))
}

func TestValidateEmailShape(t *testing.T) {
	for _, email := range []string{"plainaddress", "a@b", "a b@example.com"} {
		in := sampleInput(email)
		assert.Equal(t, []string{"personal_email"}, validationFields(t, Validate(in, true)), email)
	}
	assert.NoError(t, Validate(sampleInput("first.last+hr@sub.example.co.in"), true))
}

func TestValidateUpdate(t *testing.T) {
	assert.NoError(t, Validate(&ProfileInput{}, false))

	in := sampleInput("")
	assert.NoError(t, Validate(in, false))

	in.PersonalDetails.Value.LastName = ""
	assert.Equal(t, []string{"last_name"}, validationFields(t, Validate(in, false)))

	err := Validate(&ProfileInput{PersonalDetails: Null[PersonalDetails]()}, false)
	assert.Equal(t, []string{"personalDetails"}, validationFields(t, err))
}

func TestValidateSkipsNullSections(t *testing.T) {
	in := &ProfileInput{
		ProfessionalDetails: Null[ProfessionalDetails](),
		Education:           Null[[]Education](),
		WorkHistory:         Some([]WorkHistory{}),
	}
	assert.NoError(t, Validate(in, false))
}
