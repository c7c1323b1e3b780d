package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/horizons-voyages/cotation-api/internal/clients/exchangerate"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"go.uber.org/zap"
)

type ExchangeRateHandler struct {
	client *exchangerate.Client
	logger *zap.Logger
}

func NewExchangeRateHandler(client *exchangerate.Client, logger *zap.Logger) *ExchangeRateHandler {
	return &ExchangeRateHandler{
		client: client,
		logger: logger,
	}
}

// @Summary Current exchange rates
// @Description Conversion table for a base currency, fetched from the rate
// @Description provider with caching. Stale cached rates are served when the
// @Description provider is unreachable.
// @Tags ExchangeRates
// @Produce json
// @Param base path string true "Base currency code (ISO 4217)"
// @Success 200 {object} domain.ExchangeRatesDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /exchange-rates/{base} [get]
func (h *ExchangeRateHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(chi.URLParam(r, "base"))
	if len(base) != 3 {
		respondWithError(w, http.StatusBadRequest, "Base currency must be a 3-letter code")
		return
	}

	rates, err := h.client.GetRates(r.Context(), base)
	if err != nil {
		h.logger.Error("failed to fetch exchange rates",
			zap.String("base", base),
			zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Exchange rate provider unavailable")
		return
	}

	respondJSON(w, http.StatusOK, domain.ExchangeRatesDTO{
		Base:      rates.Base,
		Rates:     rates.Rates,
		FetchedAt: rates.FetchedAt.Format("2006-01-02T15:04:05Z"),
	})
}
