package employee

import "encoding/json"

// PersonalDetails is the aggregate root, keyed by personal email.
type PersonalDetails struct {
	PersonalEmail      string  `json:"personal_email" db:"personal_email" validate:"required,mailbox"`
	OfficialEmail      *string `json:"official_email" db:"official_email"`
	JoiningReferenceID *string `json:"joining_reference_id" db:"joining_reference_id"`
	PoornataID         *string `json:"poornata_id" db:"poornata_id"`
	EmployeeCode       *string `json:"employee_code" db:"employee_code"`
	Prefix             *string `json:"prefix" db:"prefix"`
	FirstName          string  `json:"first_name" db:"first_name" validate:"required"`
	MiddleName         *string `json:"middle_name" db:"middle_name"`
	LastName           string  `json:"last_name" db:"last_name" validate:"required"`
	FathersName        *string `json:"fathers_name" db:"fathers_name"`
	MothersName        *string `json:"mothers_name" db:"mothers_name"`
	DOB                *string `json:"dob" db:"dob"`
	Gender             *string `json:"gender" db:"gender"`
	MaritalStatus      *string `json:"marital_status" db:"marital_status"`
	BloodGroup         *string `json:"blood_group" db:"blood_group"`
	Nationality        *string `json:"nationality" db:"nationality"`
	BirthState         *string `json:"birth_state" db:"birth_state"`
	BirthLocation      *string `json:"birth_location" db:"birth_location"`
	Religion           *string `json:"religion" db:"religion"`
	Caste              *string `json:"caste" db:"caste"`
	PermanentAddress   string  `json:"permanent_address" db:"permanent_address" validate:"required"`
	CurrentAddress     *string `json:"current_address" db:"current_address"`
	QuarterNo          *string `json:"quarter_no" db:"quarter_no"`
	PanNo              *string `json:"pan_no" db:"pan_no"`
	AadharNo           string  `json:"aadhar_no" db:"aadhar_no" validate:"required"`
	BankName           *string `json:"bank_name" db:"bank_name"`
	BankAccountNo      *string `json:"bank_account_no" db:"bank_account_no"`
	IFSCCode           *string `json:"ifsc_code" db:"ifsc_code"`
	MobileNo           string  `json:"mobile_no" db:"mobile_no" validate:"required"`
}

type ProfessionalDetails struct {
	PersonalEmail    string  `json:"personal_email,omitempty" db:"personal_email"`
	DOJUnit          *string `json:"doj_unit" db:"doj_unit"`
	DOJGroup         *string `json:"doj_group" db:"doj_group"`
	Department       string  `json:"department" db:"department" validate:"required"`
	Designation      string  `json:"designation" db:"designation" validate:"required"`
	JobBand          string  `json:"job_band" db:"job_band" validate:"required"`
	LOIIssueDate     *string `json:"loi_issue_date" db:"loi_issue_date"`
	ConfirmationDate *string `json:"confirmation_date" db:"confirmation_date"`
	CurrentCTC       *string `json:"current_ctc" db:"current_ctc"`
	SupervisorName   *string `json:"supervisor_name" db:"supervisor_name"`
}

type GPANominee struct {
	ID            *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	Name          string  `json:"name" db:"name" validate:"required"`
	Relation      string  `json:"relation" db:"relation" validate:"required"`
	DOB           *string `json:"dob" db:"dob"`
	Age           *int    `json:"age" db:"age"`
	Contribution  *string `json:"contribution" db:"contribution"`
}

type NischchintNominee struct {
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	Name          string  `json:"name" db:"name" validate:"required"`
	Relation      string  `json:"relation" db:"relation" validate:"required"`
	DOB           *string `json:"dob" db:"dob"`
	Age           *int    `json:"age" db:"age"`
	Contribution  *string `json:"contribution" db:"contribution"`
}

type MediclaimDependent struct {
	ID            *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	Name          string  `json:"name" db:"name" validate:"required"`
	Relation      string  `json:"relation" db:"relation" validate:"required"`
	DOB           *string `json:"dob" db:"dob"`
	Age           *int    `json:"age" db:"age"`
	Gender        *string `json:"gender" db:"gender"`
	BirthState    *string `json:"birth_state" db:"birth_state"`
	Address       *string `json:"address" db:"address"`
	AadharNumber  *string `json:"aadhar_number" db:"aadhar_number"`
	MaritalStatus *string `json:"marital_status" db:"marital_status"`
}

type FamilyMember struct {
	ID                  *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail       string  `json:"personal_email,omitempty" db:"personal_email"`
	Name                string  `json:"name" db:"name" validate:"required"`
	Relation            string  `json:"relation" db:"relation" validate:"required"`
	DOB                 *string `json:"dob" db:"dob"`
	Occupation          *string `json:"occupation" db:"occupation"`
	MarriageAnniversary *string `json:"marriage_anniversary" db:"marriage_anniversary"`
	Mobile              *string `json:"mobile" db:"mobile"`
}

type EmergencyContact struct {
	ID            *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	Name          string  `json:"name" db:"name" validate:"required"`
	Relation      string  `json:"relation" db:"relation" validate:"required"`
	ContactNumber string  `json:"contact_number" db:"contact_number" validate:"required"`
	Address       *string `json:"address" db:"address"`
}

type Education struct {
	ID             *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail  string  `json:"personal_email,omitempty" db:"personal_email"`
	Degree         string  `json:"degree" db:"degree" validate:"required"`
	Institution    string  `json:"institution" db:"institution" validate:"required"`
	Specialization *string `json:"specialization" db:"specialization"`
	YearOfPassing  *string `json:"year_of_passing" db:"year_of_passing"`
	Percentage     *string `json:"percentage" db:"percentage"`
	State          *string `json:"state" db:"state"`
}

type WorkHistory struct {
	ID            *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	CompanyName   string  `json:"company_name" db:"company_name" validate:"required"`
	Designation   string  `json:"designation" db:"designation" validate:"required"`
	FromDate      *string `json:"from_date" db:"from_date"`
	ToDate        *string `json:"to_date" db:"to_date"`
	InGroup       *string `json:"in_group" db:"in_group"`
	State         *string `json:"state" db:"state"`
	EndingCTC     *string `json:"ending_ctc" db:"ending_ctc"`
}

type LanguageSkill struct {
	ID            *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail string  `json:"personal_email,omitempty" db:"personal_email"`
	Language      string  `json:"language" db:"language" validate:"required"`
	Speaking      *string `json:"speaking" db:"speaking"`
	Reading       *string `json:"reading" db:"reading"`
	Writing       *string `json:"writing" db:"writing"`
}

type AdditionalInfo struct {
	PersonalEmail     string  `json:"personal_email,omitempty" db:"personal_email"`
	CurrentUnitName   *string `json:"current_unit_name" db:"current_unit_name"`
	LastJobChangeDate *string `json:"last_job_change_date" db:"last_job_change_date"`
	Hobbies           *string `json:"hobbies" db:"hobbies"`
	TotalExperience   *string `json:"total_experience" db:"total_experience"`
	LastPromotionDate *string `json:"last_promotion_date" db:"last_promotion_date"`
	AttendedDAC       *string `json:"attended_dac" db:"attended_dac"`
	DACDate           *string `json:"dac_date" db:"dac_date"`
	SpecialAbilities  *string `json:"special_abilities" db:"special_abilities"`
}

type PerformanceRating struct {
	PersonalEmail        string  `json:"personal_email,omitempty" db:"personal_email"`
	LastYearYear         *string `json:"last_year_year" db:"last_year_year"`
	LastYearRating       *string `json:"last_year_rating" db:"last_year_rating"`
	SecondLastYearYear   *string `json:"second_last_year_year" db:"second_last_year_year"`
	SecondLastYearRating *string `json:"second_last_year_rating" db:"second_last_year_rating"`
	ThirdLastYearYear    *string `json:"third_last_year_year" db:"third_last_year_year"`
	ThirdLastYearRating  *string `json:"third_last_year_rating" db:"third_last_year_rating"`
}

// UnmarshalJSON also accepts the short rating keys older clients send
// (last_year, second_last_year, third_last_year).
func (p *PerformanceRating) UnmarshalJSON(data []byte) error {
	type plain PerformanceRating
	var aux struct {
		plain
		LastYear       *string `json:"last_year"`
		SecondLastYear *string `json:"second_last_year"`
		ThirdLastYear  *string `json:"third_last_year"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = PerformanceRating(aux.plain)
	if p.LastYearRating == nil {
		p.LastYearRating = aux.LastYear
	}
	if p.SecondLastYearRating == nil {
		p.SecondLastYearRating = aux.SecondLastYear
	}
	if p.ThirdLastYearRating == nil {
		p.ThirdLastYearRating = aux.ThirdLastYear
	}
	return nil
}

type PFDetail struct {
	ID              *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail   string  `json:"personal_email,omitempty" db:"personal_email"`
	UANNumber       *string `json:"uan_number" db:"uan_number"`
	PFNumber        *string `json:"pf_number" db:"pf_number"`
	EPSNumber       *string `json:"eps_number" db:"eps_number"`
	NomineeName     *string `json:"nominee_name" db:"nominee_name"`
	NomineeRelation *string `json:"nominee_relation" db:"nominee_relation"`
	SharePercentage *string `json:"share_percentage" db:"share_percentage"`
}

type GratuityDetail struct {
	ID               *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail    string  `json:"personal_email,omitempty" db:"personal_email"`
	NomineeName      *string `json:"nominee_name" db:"nominee_name"`
	NomineeRelation  *string `json:"nominee_relation" db:"nominee_relation"`
	SharePercentage  *string `json:"share_percentage" db:"share_percentage"`
	NomineeAge       *int    `json:"nominee_age" db:"nominee_age"`
	EmployeeAge      *int    `json:"employee_age" db:"employee_age"`
	ConfirmationDate *string `json:"confirmation_date" db:"confirmation_date"`
}

type SuperannuationDetail struct {
	ID               *int64  `json:"id,omitempty" db:"id"`
	PersonalEmail    string  `json:"personal_email,omitempty" db:"personal_email"`
	NomineeName      *string `json:"nominee_name" db:"nominee_name"`
	NomineeRelation  *string `json:"nominee_relation" db:"nominee_relation"`
	SharePercentage  *string `json:"share_percentage" db:"share_percentage"`
	MarriageDate     *string `json:"marriage_date" db:"marriage_date"`
	ConfirmationDate *string `json:"confirmation_date" db:"confirmation_date"`
}

// Profile is the assembled aggregate returned by reads. Singletons are nil when
// absent and lists are never nil.
type Profile struct {
	PersonalDetails       *PersonalDetails       `json:"personalDetails"`
	ProfessionalDetails   *ProfessionalDetails   `json:"professionalDetails"`
	GPANominees           []GPANominee           `json:"gpaNominees"`
	NischchintNominee     *NischchintNominee     `json:"nischchintNominee"`
	MediclaimDependents   []MediclaimDependent   `json:"mediclaimDependents"`
	FamilyMembers         []FamilyMember         `json:"familyMembers"`
	EmergencyContacts     []EmergencyContact     `json:"emergencyContacts"`
	Education             []Education            `json:"education"`
	WorkHistory           []WorkHistory          `json:"workHistory"`
	LanguageSkills        []LanguageSkill        `json:"languageSkills"`
	AdditionalInfo        *AdditionalInfo        `json:"additionalInfo"`
	PerformanceRating     *PerformanceRating     `json:"performanceRating"`
	PFDetails             []PFDetail             `json:"pfDetails"`
	GratuityDetails       []GratuityDetail       `json:"gratuityDetails"`
	SuperannuationDetails []SuperannuationDetail `json:"superannuationDetails"`
}

// ProfileInput is a create or update request. Each section records whether its
// key was present and whether it was null, so "leave untouched" and "clear"
// stay distinct.
type ProfileInput struct {
	PersonalDetails       Optional[PersonalDetails]        `json:"personalDetails,omitzero"`
	ProfessionalDetails   Optional[ProfessionalDetails]    `json:"professionalDetails,omitzero"`
	GPANominees           Optional[[]GPANominee]           `json:"gpaNominees,omitzero"`
	NischchintNominee     Optional[NischchintNominee]      `json:"nischchintNominee,omitzero"`
	MediclaimDependents   Optional[[]MediclaimDependent]   `json:"mediclaimDependents,omitzero"`
	FamilyMembers         Optional[[]FamilyMember]         `json:"familyMembers,omitzero"`
	EmergencyContacts     Optional[[]EmergencyContact]     `json:"emergencyContacts,omitzero"`
	Education             Optional[[]Education]            `json:"education,omitzero"`
	WorkHistory           Optional[[]WorkHistory]          `json:"workHistory,omitzero"`
	LanguageSkills        Optional[[]LanguageSkill]        `json:"languageSkills,omitzero"`
	AdditionalInfo        Optional[AdditionalInfo]         `json:"additionalInfo,omitzero"`
	PerformanceRating     Optional[PerformanceRating]      `json:"performanceRating,omitzero"`
	PFDetails             Optional[[]PFDetail]             `json:"pfDetails,omitzero"`
	GratuityDetails       Optional[[]GratuityDetail]       `json:"gratuityDetails,omitzero"`
	SuperannuationDetails Optional[[]SuperannuationDetail] `json:"superannuationDetails,omitzero"`
}

// Summary is one row of the directory listing.
type Summary struct {
	PersonalEmail string  `json:"personal_email"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	PoornataID    *string `json:"poornata_id"`
	EmployeeCode  *string `json:"employee_code"`
	OfficialEmail *string `json:"official_email"`
	MobileNo      string  `json:"mobile_no"`
	Department    *string `json:"department"`
	Designation   *string `json:"designation"`
}
