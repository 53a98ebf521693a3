package models_test

import (
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    models.PaymentStatus
		to      models.PaymentStatus
		allowed bool
	}{
		{models.PaymentPending, models.PaymentProcessing, true},
		{models.PaymentPending, models.PaymentPaid, false},
		{models.PaymentPending, models.PaymentFailed, false},
		{models.PaymentProcessing, models.PaymentPaid, true},
		{models.PaymentProcessing, models.PaymentFailed, true},
		{models.PaymentProcessing, models.PaymentPending, false},
		{models.PaymentPaid, models.PaymentProcessing, false},
		{models.PaymentPaid, models.PaymentFailed, false},
		{models.PaymentFailed, models.PaymentProcessing, true},
		{models.PaymentFailed, models.PaymentPaid, false},
		// same-status writes are permitted no-ops
		{models.PaymentPending, models.PaymentPending, true},
		{models.PaymentPaid, models.PaymentPaid, true},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestPaymentStatus_Valid(t *testing.T) {
	assert.True(t, models.PaymentPending.Valid())
	assert.True(t, models.PaymentFailed.Valid())
	assert.False(t, models.PaymentStatus("refunded").Valid())
}

func TestGender_Valid(t *testing.T) {
	assert.True(t, models.GenderMale.Valid())
	assert.True(t, models.GenderFemale.Valid())
	assert.False(t, models.Gender("other").Valid())
}

func TestEnglishCertType_Valid(t *testing.T) {
	assert.True(t, models.CertIELTS.Valid())
	assert.True(t, models.CertTOEFL.Valid())
	assert.True(t, models.CertCambridge.Valid())
	assert.False(t, models.EnglishCertType("DUOLINGO").Valid())
}
