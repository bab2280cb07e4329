package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/realstake/realstake-backend/internal/domain"
)

// handleCreateOwner handles POST /api/owners with form field: name
func (s *Server) handleCreateOwner(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")

	owner, err := s.owners.CreateOwner(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusCreated, fmt.Sprintf("Owner has been created. Hello %s", owner.Name))
}

// handleTopUpCash handles POST /api/owners/topup with form fields: name, amount
func (s *Server) handleTopUpCash(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	owner, err := s.owners.TopUpCash(r.Context(), r.FormValue("name"), amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Topup successful, your cash is $%s.", owner.Cash.String()))
}

// handleWithdrawCash handles POST /api/owners/withdraw with form fields: name, amount
func (s *Server) handleWithdrawCash(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	owner, err := s.owners.WithdrawCash(r.Context(), r.FormValue("name"), amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Withdraw successful, your cash is $%s.", owner.Cash.String()))
}

// handleDeleteOwner handles DELETE /api/owners/{name}
func (s *Server) handleDeleteOwner(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.owners.DeleteOwner(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Owner %s has been deleted.", name))
}

// handleCreateLocation handles POST /api/locations with form fields: name, price
func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	price, err := parseAmount(r.FormValue("price"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	location, err := s.locations.CreateLocation(r.Context(), r.FormValue("name"), price)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusCreated,
		fmt.Sprintf("Location named %s with price = %s has been created.", location.Name, location.Price.String()))
}

// handleSetAvailability handles POST /api/locations/availability with form fields: name, fraction
func (s *Server) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	fraction, err := parseFraction(r.FormValue("fraction"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	location, err := s.locations.SetAvailability(r.Context(), r.FormValue("name"), fraction)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK,
		fmt.Sprintf("Availability of %s is now %s%%.", location.Name, location.AvailableFraction.Mul(decimal.NewFromInt(100)).String()))
}

// handleDeleteLocation handles DELETE /api/locations/{name}
func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.locations.DeleteLocation(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Location %s has been deleted.", name))
}

// handleBuyLocation handles POST /api/trades/buy with form fields: owner, location, amount
func (s *Server) handleBuyLocation(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	ownerName := r.FormValue("owner")
	locationName := r.FormValue("location")

	tx, err := s.trading.BuyLocation(r.Context(), ownerName, locationName, amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Buy location successful. %s buys %s as much as %s%% or $%s",
		ownerName, locationName,
		tx.OwnPercentage.Mul(decimal.NewFromInt(100)).String(),
		tx.CapitalAmount.String()))
}

// handleSellLocation handles POST /api/trades/sell with form fields: owner, location, amount
func (s *Server) handleSellLocation(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	ownerName := r.FormValue("owner")
	locationName := r.FormValue("location")

	tx, err := s.trading.SellLocation(r.Context(), ownerName, locationName, amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Sell location successful. %s sells %s as much as %s%% or $%s",
		ownerName, locationName,
		tx.OwnPercentage.Mul(decimal.NewFromInt(100)).String(),
		tx.CapitalAmount.String()))
}

// handleSetOwnership handles POST /api/holdings/ownership with form fields: owner, location, fraction
func (s *Server) handleSetOwnership(w http.ResponseWriter, r *http.Request) {
	fraction, err := parseFraction(r.FormValue("fraction"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	holding, err := s.trading.SetOwnershipPercentage(r.Context(), r.FormValue("owner"), r.FormValue("location"), fraction)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK, fmt.Sprintf("Ownership has been set to %s%%.",
		holding.OwnPercentage.Mul(decimal.NewFromInt(100)).String()))
}

// handleDeleteTransaction handles DELETE /api/transactions with query params: owner, location, amount
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	ownerName := r.URL.Query().Get("owner")
	locationName := r.URL.Query().Get("location")

	if err := s.trading.DeleteTransaction(r.Context(), ownerName, locationName, amount); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeText(w, http.StatusOK,
		fmt.Sprintf("Transaction of %s on %s worth $%s has been deleted and reversed.", ownerName, locationName, amount.String()))
}

// Report handlers below are thin pass-throughs to the reporting service.

func (s *Server) handleListOwners(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.ListOwners(r.Context())
	s.writeReport(w, report, err)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.ListLocations(r.Context())
	s.writeReport(w, report, err)
}

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.ListHoldings(r.Context())
	s.writeReport(w, report, err)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.ListTransactions(r.Context())
	s.writeReport(w, report, err)
}

func (s *Server) handleOwnerDetails(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.OwnerDetails(r.Context(), chi.URLParam(r, "name"))
	s.writeReport(w, report, err)
}

func (s *Server) handleLocationDetails(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.LocationDetails(r.Context(), chi.URLParam(r, "name"))
	s.writeReport(w, report, err)
}

// handleTransactionsSearch handles GET /api/transactions/search?owner=&location=
func (s *Server) handleTransactionsSearch(w http.ResponseWriter, r *http.Request) {
	ownerName := r.URL.Query().Get("owner")
	locationName := r.URL.Query().Get("location")

	switch {
	case ownerName != "" && locationName != "":
		report, err := s.reports.TransactionsByOwnerAndLocation(r.Context(), ownerName, locationName)
		s.writeReport(w, report, err)
	case ownerName != "":
		report, err := s.reports.TransactionsByOwner(r.Context(), ownerName)
		s.writeReport(w, report, err)
	case locationName != "":
		report, err := s.reports.TransactionsByLocation(r.Context(), locationName)
		s.writeReport(w, report, err)
	default:
		report, err := s.reports.ListTransactions(r.Context())
		s.writeReport(w, report, err)
	}
}

// handleHoldingsSearch handles GET /api/holdings/search?owner=&location=
func (s *Server) handleHoldingsSearch(w http.ResponseWriter, r *http.Request) {
	ownerName := r.URL.Query().Get("owner")
	locationName := r.URL.Query().Get("location")

	switch {
	case ownerName != "" && locationName != "":
		report, err := s.reports.HoldingsByOwnerAndLocation(r.Context(), ownerName, locationName)
		s.writeReport(w, report, err)
	case ownerName != "":
		report, err := s.reports.HoldingsByOwner(r.Context(), ownerName)
		s.writeReport(w, report, err)
	case locationName != "":
		report, err := s.reports.HoldingsByLocation(r.Context(), locationName)
		s.writeReport(w, report, err)
	default:
		report, err := s.reports.ListHoldings(r.Context())
		s.writeReport(w, report, err)
	}
}

// parseAmount converts a raw dollar amount. Garbage input (including NaN,
// which decimal cannot represent) maps to ErrInvalidAmount before the
// services ever see it.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

// parseFraction converts a raw fraction value, mapping garbage to ErrInvalidRange
func parseFraction(raw string) (decimal.Decimal, error) {
	fraction, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidRange
	}
	return fraction, nil
}

func (s *Server) writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func (s *Server) writeReport(w http.ResponseWriter, report string, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeText(w, http.StatusOK, report)
}

// writeError maps domain errors to the text contract: the body always
// starts with "Error. ".
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	msg := "Error. " + err.Error() + "..."

	switch {
	case errors.Is(err, domain.ErrOwnerNotFound):
		status = http.StatusNotFound
		msg = "Error. Owner is not exist..."
	case errors.Is(err, domain.ErrLocationNotFound):
		status = http.StatusNotFound
		msg = "Error. Location isn't listed..."
	case errors.Is(err, domain.ErrDuplicateOwner):
		status = http.StatusConflict
		msg = "Error. Owner already exist..."
	case errors.Is(err, domain.ErrDuplicateLocation):
		status = http.StatusConflict
		msg = "Error. Location is already listed..."
	case errors.Is(err, domain.ErrInvalidAmount):
		msg = "Error. Amount is NaN or below 0..."
	case errors.Is(err, domain.ErrInvalidRange):
		msg = "Error. Fraction must be between 0 and 1..."
	case errors.Is(err, domain.ErrInsufficientFunds):
		msg = "Error. Cash is not sufficient..."
	case errors.Is(err, domain.ErrExceedsAvailable):
		msg = "Error. The amount desired to be purchased exceeds what is available..."
	case errors.Is(err, domain.ErrInsufficientOwnership):
		msg = "Error. Ownership is not sufficient..."
	case errors.Is(err, domain.ErrNoSuchHolding):
		status = http.StatusNotFound
		msg = "Error. Holding is not exist..."
	case errors.Is(err, domain.ErrTransactionNotFound):
		status = http.StatusNotFound
		msg = "Error. Transaction is not exist..."
	default:
		s.log.Error().Err(err).Msg("internal error")
		status = http.StatusInternalServerError
		msg = "Error. Internal server error..."
	}

	s.writeText(w, status, msg)
}
