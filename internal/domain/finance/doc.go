// Package finance holds the billing reference data of the campus: billing cycles,
// discounts, late fees and the payment method, status and terms catalogues.
package finance
