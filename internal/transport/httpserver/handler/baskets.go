package handler

import (
	"net/http"

	basketdomain "amparo-go/internal/domain/basket"
	"amparo-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type basketRequest struct {
	FamilyID     string `json:"family_id" validate:"required,uuid"`
	DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Notes        string `json:"notes"`
}

func (req basketRequest) toInput() (basketdomain.Input, error) {
	date, err := parseDateRequired(req.DeliveryDate)
	if err != nil {
		return basketdomain.Input{}, err
	}
	return basketdomain.Input{
		FamilyID:     req.FamilyID,
		DeliveryDate: date,
		Notes:        req.Notes,
	}, nil
}

type basketDTO struct {
	ID           string `json:"id"`
	FamilyID     string `json:"family_id"`
	DeliveryDate string `json:"delivery_date"`
	Notes        string `json:"notes"`
	Active       bool   `json:"active"`
}

func toBasketDTO(delivery *basketdomain.Delivery) basketDTO {
	return basketDTO{
		ID:           delivery.ID,
		FamilyID:     delivery.FamilyID,
		DeliveryDate: delivery.DeliveryDate.Format(dateLayout),
		Notes:        delivery.Notes,
		Active:       delivery.Active,
	}
}

type basketEnvelope struct {
	StatusCode int       `json:"status_code"`
	Delivery   basketDTO `json:"delivery"`
}

func (h *Handlers) ListBaskets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("data_inicio"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_inicio")
		return
	}
	to, err := parseDateParam(query.Get("data_fim"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data_fim")
		return
	}

	deliveries, err := h.baskets.List(r.Context(), basketdomain.ListFilter{
		FamilyID: query.Get("family_id"),
		DateFrom: from,
		DateTo:   to,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]basketDTO, 0, len(deliveries))
	for i := range deliveries {
		items = append(items, toBasketDTO(&deliveries[i]))
	}
	writeJSON(w, http.StatusOK, struct {
		StatusCode int         `json:"status_code"`
		Deliveries []basketDTO `json:"deliveries"`
	}{http.StatusOK, items})
}

func (h *Handlers) CreateBasket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req basketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid delivery_date")
		return
	}

	delivery, err := h.baskets.Create(r.Context(), actor, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, basketEnvelope{http.StatusCreated, toBasketDTO(delivery)})
}

type basketBatchRequest struct {
	Deliveries []basketRequest `json:"deliveries" validate:"required,min=1,dive"`
}

func (h *Handlers) CreateBasketBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req basketBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	inputs := make([]basketdomain.Input, 0, len(req.Deliveries))
	for _, entry := range req.Deliveries {
		input, err := entry.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid delivery_date")
			return
		}
		inputs = append(inputs, input)
	}

	deliveries, err := h.baskets.CreateBatch(r.Context(), actor, inputs)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]basketDTO, 0, len(deliveries))
	for i := range deliveries {
		items = append(items, toBasketDTO(&deliveries[i]))
	}
	writeJSON(w, http.StatusCreated, struct {
		StatusCode int         `json:"status_code"`
		Deliveries []basketDTO `json:"deliveries"`
	}{http.StatusCreated, items})
}

func (h *Handlers) GetBasket(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.baskets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basketEnvelope{http.StatusOK, toBasketDTO(delivery)})
}

func (h *Handlers) UpdateBasket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	var req basketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid delivery_date")
		return
	}

	delivery, err := h.baskets.Update(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basketEnvelope{http.StatusOK, toBasketDTO(delivery)})
}

func (h *Handlers) DeleteBasket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "authentication required")
		return
	}

	if err := h.baskets.Deactivate(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "delivery deactivated",
	})
}

func (h *Handlers) BasketsByFamily(w http.ResponseWriter, r *http.Request) {
	history, err := h.baskets.History(r.Context(), r.URL.Query().Get("family_id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	items := make([]basketDTO, 0, len(history.Deliveries))
	for i := range history.Deliveries {
		items = append(items, toBasketDTO(&history.Deliveries[i]))
	}

	response := struct {
		StatusCode          int         `json:"status_code"`
		Deliveries          []basketDTO `json:"deliveries"`
		TotalDeliveries     int         `json:"total_deliveries"`
		TotalDistinctMonths int         `json:"total_distinct_months"`
		AveragePerMonth     float64     `json:"average_per_month"`
		MostRecentDate      string      `json:"most_recent_date,omitempty"`
	}{
		StatusCode:          http.StatusOK,
		Deliveries:          items,
		TotalDeliveries:     history.TotalDeliveries,
		TotalDistinctMonths: history.TotalDistinctMonths,
		AveragePerMonth:     history.AveragePerMonth,
	}
	if history.MostRecentDate != nil {
		response.MostRecentDate = history.MostRecentDate.Format(dateLayout)
	}
	writeJSON(w, http.StatusOK, response)
}
