package checkout_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/checkout"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() *checkout.Shipping {
	return &checkout.Shipping{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "+1 555 0100",
		Address:   "12 Park Lane",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "73301",
	}
}

func validPayment() *checkout.Payment {
	return &checkout.Payment{
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "12/29",
		CVV:        "123",
		CardName:   "Asha Rao",
	}
}

func TestNext(t *testing.T) {
	validate := validator.New()

	t.Run("Success - Walks shipping, payment, review", func(t *testing.T) {
		// Arrange
		state := checkout.NewState()

		// Act
		state, err := state.Next(validate, checkout.Form{Shipping: validShipping()})
		require.NoError(t, err)
		assert.Equal(t, checkout.StepPayment, state.Step)

		state, err = state.Next(validate, checkout.Form{Payment: validPayment()})
		require.NoError(t, err)

		// Assert
		assert.Equal(t, checkout.StepReview, state.Step)
		assert.True(t, state.ReadyToPlace())
		assert.Equal(t, "United States", state.Shipping.Country)
		assert.Equal(t, "4242", state.Payment.CardLast4)
		assert.Equal(t, "Asha Rao", state.Payment.CardName)
	})

	t.Run("Failure - Missing required field keeps step", func(t *testing.T) {
		shipping := validShipping()
		shipping.City = ""

		state, err := checkout.NewState().Next(validate, checkout.Form{Shipping: shipping})

		require.Error(t, err)
		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
		assert.Equal(t, checkout.StepShipping, state.Step)
		assert.Nil(t, state.Shipping)
	})

	t.Run("Failure - Form for another step", func(t *testing.T) {
		state, err := checkout.NewState().Next(validate, checkout.Form{Payment: validPayment()})

		assert.ErrorIs(t, err, checkout.ErrWrongStep)
		assert.Equal(t, checkout.StepShipping, state.Step)
	})

	t.Run("Failure - No step after review", func(t *testing.T) {
		state := checkout.State{Step: checkout.StepReview}

		_, err := state.Next(validate, checkout.Form{})

		assert.ErrorIs(t, err, checkout.ErrLastStep)
	})
}

func TestPrevious(t *testing.T) {
	t.Run("Success - Steps back one at a time", func(t *testing.T) {
		state := checkout.State{Step: checkout.StepReview}

		state, err := state.Previous()
		require.NoError(t, err)
		assert.Equal(t, checkout.StepPayment, state.Step)

		state, err = state.Previous()
		require.NoError(t, err)
		assert.Equal(t, checkout.StepShipping, state.Step)
	})

	t.Run("Failure - Already at first step", func(t *testing.T) {
		_, err := checkout.NewState().Previous()

		assert.ErrorIs(t, err, checkout.ErrFirstStep)
	})
}

func TestStateJSON(t *testing.T) {
	t.Run("Success - Step encodes by name", func(t *testing.T) {
		data, err := json.Marshal(checkout.State{Step: checkout.StepPayment})
		require.NoError(t, err)
		assert.JSONEq(t, `{"step":"payment"}`, string(data))

		var decoded checkout.State
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, checkout.StepPayment, decoded.Step)
	})

	t.Run("Success - Normalize repairs unknown step", func(t *testing.T) {
		state := checkout.State{Step: checkout.Step(9)}.Normalize()

		assert.Equal(t, checkout.StepShipping, state.Step)
	})
}
