// Package checkout holds the three-step checkout wizard. The wizard only
// moves one step at a time: forward with a validated form, back freely.
package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

var stepNames = map[Step]string{
	StepShipping: "shipping",
	StepPayment:  "payment",
	StepReview:   "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}

	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Step) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	for step, n := range stepNames {
		if n == name {
			*s = step
			return nil
		}
	}

	return fmt.Errorf("unknown checkout step %q", name)
}

var (
	ErrFirstStep = errors.New("already at the first checkout step")
	ErrLastStep  = errors.New("already at the review step")
	ErrWrongStep = errors.New("form does not belong to the current checkout step")
)

type Shipping struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`
}

// DefaultCountry is preselected in the shipping form.
const DefaultCountry = "United States"

type Payment struct {
	CardNumber string `json:"cardNumber" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	CardName   string `json:"cardName" validate:"required"`
}

// PaymentSummary is what the wizard keeps of the payment form.
type PaymentSummary struct {
	CardLast4  string `json:"cardLast4"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
}

func summarize(p Payment) *PaymentSummary {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)

	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}

	return &PaymentSummary{
		CardLast4:  digits,
		CardName:   p.CardName,
		ExpiryDate: p.ExpiryDate,
	}
}

// Form is the body of a "Continue" action. Only the part that belongs to
// the current step is read.
type Form struct {
	Shipping *Shipping `json:"shipping,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`
}

type State struct {
	Step     Step            `json:"step"`
	Shipping *Shipping       `json:"shipping,omitempty"`
	Payment  *PaymentSummary `json:"payment,omitempty"`
}

func NewState() State {
	return State{Step: StepShipping}
}

// Normalize repairs a state read from storage.
func (s State) Normalize() State {
	if _, ok := stepNames[s.Step]; !ok {
		return NewState()
	}

	return s
}

// Next validates the current step's form and advances one step. At the
// review step there is nothing to advance to; placing the order is the
// caller's terminal action.
func (s State) Next(validate *validator.Validate, form Form) (State, error) {
	switch s.Step {
	case StepShipping:
		if form.Shipping == nil {
			return s, ErrWrongStep
		}

		shipping := *form.Shipping
		if strings.TrimSpace(shipping.Country) == "" {
			shipping.Country = DefaultCountry
		}

		if err := validate.Struct(shipping); err != nil {
			return s, err
		}

		s.Shipping = &shipping
		s.Step = StepPayment

	case StepPayment:
		if form.Payment == nil {
			return s, ErrWrongStep
		}

		if err := validate.Struct(*form.Payment); err != nil {
			return s, err
		}

		s.Payment = summarize(*form.Payment)
		s.Step = StepReview

	default:
		return s, ErrLastStep
	}

	return s, nil
}

func (s State) Previous() (State, error) {
	if s.Step <= StepShipping {
		return s, ErrFirstStep
	}

	s.Step--
	return s, nil
}

func (s State) ReadyToPlace() bool {
	return s.Step == StepReview && s.Shipping != nil && s.Payment != nil
}
