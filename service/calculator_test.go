package service

import (
	"errors"
	"testing"

	"expo/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	res, err := EMI("100000", "12", "12")
	require.NoError(t, err)
	assert.Equal(t, "8884.88", res.Installment.StringFixed(2))
	assert.Equal(t, "106618.56", res.TotalPayment.StringFixed(2))
	assert.Equal(t, "6618.56", res.TotalInterest.StringFixed(2))

	zero, err := EMI("1200", "0", "12")
	require.NoError(t, err)
	assert.Equal(t, "100.00", zero.Installment.StringFixed(2))
	assert.True(t, zero.TotalInterest.IsZero())
}

func TestEMI_Invalid(t *testing.T) {
	for _, in := range [][3]string{
		{"", "10", "12"},
		{"0", "10", "12"},
		{"1000", "-1", "12"},
		{"1000", "10", "0"},
		{"1000", "10", "abc"},
		{"1000", "10", "5000"},
	} {
		_, err := EMI(in[0], in[1], in[2])
		assert.True(t, errors.Is(err, repository.ErrValidation), "%v", in)
	}
}

func TestGST(t *testing.T) {
	add, err := GST("1000", "18", "add")
	require.NoError(t, err)
	assert.Equal(t, "180.00", add.Tax.StringFixed(2))
	assert.Equal(t, "1180.00", add.Gross.StringFixed(2))
	assert.Equal(t, "90.00", add.CGST.StringFixed(2))
	assert.Equal(t, "90.00", add.SGST.StringFixed(2))

	remove, err := GST("1180", "18", "remove")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", remove.Net.StringFixed(2))
	assert.Equal(t, "180.00", remove.Tax.StringFixed(2))

	// the halves always add back up to the tax
	odd, err := GST("0.05", "18", "")
	require.NoError(t, err)
	assert.Equal(t, GSTAdd, odd.Mode)
	assert.Equal(t, "0.01", odd.Tax.StringFixed(2))
	assert.True(t, odd.Tax.Equal(odd.CGST.Add(odd.SGST)))

	_, err = GST("100", "18", "double")
	assert.True(t, errors.Is(err, repository.ErrValidation))
}

func TestSplitBill(t *testing.T) {
	res, err := SplitBill("1000", "3", "10")
	require.NoError(t, err)
	assert.Equal(t, "100.00", res.Tip.StringFixed(2))
	assert.Equal(t, "1100.00", res.Grand.StringFixed(2))
	assert.Equal(t, "366.66", res.PerPerson.StringFixed(2))
	assert.Equal(t, "0.02", res.Remainder.StringFixed(2))

	noTip, err := SplitBill("90", "3", "")
	require.NoError(t, err)
	assert.Equal(t, "30.00", noTip.PerPerson.StringFixed(2))
	assert.True(t, noTip.Remainder.IsZero())

	_, err = SplitBill("90", "0", "")
	assert.True(t, errors.Is(err, repository.ErrValidation))
}
