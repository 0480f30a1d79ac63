package payroll

import "errors"

var (
	ErrPayrollNotFound    = errors.New("payroll not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrAlreadyPaid        = errors.New("payroll is already paid")
	ErrInvalidPeriod      = errors.New("monthNum must be between 1 and 12 and yearNum must be positive")
	ErrNoEligibleEmployee = errors.New("no active employee matches the request")
	// ErrInsuranceTaxUnsupported marks the insurance and tax run, which is
	// owned by the CALCULATE_INSURANCE_TAX database procedure.
	ErrInsuranceTaxUnsupported = errors.New("insurance and tax calculation requires the CALCULATE_INSURANCE_TAX procedure")
)
