package cli

import (
	"errors"

	"github.com/safeeat/backend/internal/domain"
)

// userMessage turns a domain error into the text shown to the user
func userMessage(err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return errors.New("could not find the product, check the barcode")
	case errors.Is(err, domain.ErrNetwork):
		return errors.New("could not reach the product database, try again")
	case errors.Is(err, domain.ErrCapture):
		return errors.New("could not scan the product, try again or enter the barcode manually")
	case errors.Is(err, domain.ErrStorage):
		return errors.New("could not save settings")
	case errors.Is(err, domain.ErrEmptyAvoidList):
		return errors.New("choose ingredients to avoid first")
	default:
		return err
	}
}
