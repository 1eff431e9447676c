package handlers

import (
	"delivery-zone-service/internal/adapters/codec"
	"delivery-zone-service/internal/api/dto"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
)

type ValidateHandler struct {
	Validator services.DeliveryValidator
}

// Validate answers whether a restaurant delivers to a geocoded destination.
// Business rejections are 200 responses with valid=false.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ValidateDeliveryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq, msg := toValidationRequest(req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	res, err := h.Validator.Validate(r.Context(), svcReq)
	if err != nil {
		var ce *domain.ConfigurationError
		switch {
		case errors.As(err, &ce):
			writeError(w, r, http.StatusUnprocessableEntity, ce.Reason)
		case errors.Is(err, domain.ErrRestaurantNotFound):
			writeError(w, r, http.StatusNotFound, "restaurant not found")
		case errors.Is(err, domain.ErrInvalidRequest):
			writeError(w, r, http.StatusBadRequest, "invalid request")
		default:
			log.Printf("validate delivery failed: restaurant=%s err=%v", svcReq.RestaurantID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toValidateResponse(res))
}

// Return the service request, or a client-facing message describing the first problem.
func toValidationRequest(req dto.ValidateDeliveryRequest) (domain.ValidationRequest, string) {
	restaurantID := strings.TrimSpace(req.RestaurantID)
	if restaurantID == "" {
		return domain.ValidationRequest{}, "restaurantId is required"
	}
	if req.Destination == nil || req.Destination.Lat == nil || req.Destination.Lng == nil {
		return domain.ValidationRequest{}, "destination.lat and destination.lng are required"
	}

	lat, lng := *req.Destination.Lat, *req.Destination.Lng
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return domain.ValidationRequest{}, "destination.lat must be between -90 and 90"
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return domain.ValidationRequest{}, "destination.lng must be between -180 and 180"
	}
	if req.OrderAmount != nil && *req.OrderAmount < 0 {
		return domain.ValidationRequest{}, "orderAmount must not be negative"
	}

	return domain.ValidationRequest{
		RestaurantID: restaurantID,
		Destination:  domain.Coordinates{Lat: lat, Lng: lng},
		OrderAmount:  req.OrderAmount,
	}, ""
}

func toValidateResponse(res domain.ValidationResult) dto.ValidateDeliveryResponse {
	out := dto.ValidateDeliveryResponse{
		Valid:                res.Valid,
		DeliveryFee:          res.DeliveryFee,
		EstimatedTimeMinutes: res.EstimatedTimeMinutes,
		DistanceKm:           res.DistanceKm,
		Error:                res.Error,
		Reason:               string(res.Reason),
	}

	if z := res.MatchedZone; z != nil {
		out.Zone = &dto.ZoneResponse{
			ID:                     z.ID,
			Name:                   z.Name,
			FeeRule:                toFeeRuleResponse(z.FeeRule),
			MinOrderAmount:         z.MinOrderAmount,
			MaxDeliveryTimeMinutes: z.MaxDeliveryTimeMinutes,
			Priority:               z.Priority,
		}
	}

	return out
}

func toFeeRuleResponse(rule domain.FeeRule) dto.FeeRuleResponse {
	switch fr := rule.(type) {
	case domain.FixedFee:
		return dto.FeeRuleResponse{Type: codec.FeeTypeFixed, Amount: &fr.Amount}
	case domain.PerKmFee:
		return dto.FeeRuleResponse{Type: codec.FeeTypePerKm, AmountPerKm: &fr.AmountPerKm}
	case domain.TieredFee:
		tiers := make([]dto.FeeTierResponse, 0, len(fr.Tiers))
		for _, t := range fr.Tiers {
			tiers = append(tiers, dto.FeeTierResponse{MaxDistanceKm: t.MaxDistanceKm, Fee: t.Fee})
		}
		return dto.FeeRuleResponse{Type: codec.FeeTypeTiered, Tiers: tiers}
	default:
		return dto.FeeRuleResponse{Type: "unknown"}
	}
}
