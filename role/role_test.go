package role

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"CareLink360/util"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"doctor", "assistant", "patient"} {
		r, err := Parse(s)
		assert.NoError(t, err)
		assert.Equal(t, Role(s), r)
	}

	for _, s := range []string{"", "admin", "Doctor", "DOCTOR"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, util.ErrUnauthenticated)
	}
}

func TestCollection(t *testing.T) {
	assert.Equal(t, util.DoctorCollection, Doctor.Collection())
	assert.Equal(t, util.AssistantCollection, Assistant.Collection())
	assert.Equal(t, util.PatientCollection, Patient.Collection())
	assert.Equal(t, "", Role("admin").Collection())
}
