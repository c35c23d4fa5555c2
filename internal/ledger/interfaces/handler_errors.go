package interfaces

import (
	"net/http"

	ledgerErrors "github.com/adrianvt/finledger/internal/ledger/errors"
)

type errorResponder func(w http.ResponseWriter, status int, message string, errors ...[]string)

// respondEngineError maps the engine's typed failures onto HTTP statuses.
// fallback is used for anything that is not one of the engine's own kinds,
// typically a storage failure.
func respondEngineError(respond errorResponder, w http.ResponseWriter, err error, fallback string) {
	switch {
	case ledgerErrors.IsNotFoundError(err):
		respond(w, http.StatusNotFound, err.Error())
	case ledgerErrors.IsAlreadyLinkedError(err), ledgerErrors.IsCrossAccountError(err):
		respond(w, http.StatusConflict, err.Error())
	case ledgerErrors.IsValidationError(err),
		ledgerErrors.IsUnbalancedSplitError(err),
		ledgerErrors.IsMissingTransferTargetError(err):
		respond(w, http.StatusBadRequest, err.Error())
	default:
		respond(w, http.StatusInternalServerError, fallback)
	}
}
