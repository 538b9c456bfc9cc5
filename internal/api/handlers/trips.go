package handlers

import (
	"eld-log-service/internal/api/dto"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/platform/obs"
	"eld-log-service/internal/ports"
	"eld-log-service/internal/services"
	"errors"
	"log"
	"net/http"
	"time"
)

type TripHandler struct {
	Provider ports.RouteProvider
	Now      func() time.Time
}

// Plan routes a trip and returns its simulated HOS timeline, daily log
// sheets and map data.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.TripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.CurrentCycleUsed == nil {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used is required")
		return
	}

	svcReq := services.TripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: *req.CurrentCycleUsed,
		StartTime:        req.StartTime,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Provider, h.Now)
	if err != nil {
		var geoErr *domain.GeocodeError
		switch {
		case errors.Is(err, domain.ErrInvalidTrip):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &geoErr):
			writeError(w, r, http.StatusBadRequest, geoErr.Error())
		default:
			log.Printf("plan trip failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

func toTripPlanResponse(p *services.TripPlan) dto.TripPlanResponse {
	return dto.TripPlanResponse{
		StartTime: p.StartTime,
		Route: dto.RouteResponse{
			TotalDistance:    p.Route.TotalDistanceMiles,
			TotalDrivingTime: p.Route.TotalDrivingHours,
			Segments:         p.Route.Segments,
		},
		Stops:      p.Stops,
		FuelStops:  p.FuelStops,
		LogEntries: p.LogEntries,
		DailyLogs:  p.DailyLogs,
		MapData: dto.MapDataResponse{
			Waypoints: p.Waypoints,
			Polylines: p.Polylines,
			Markers:   p.Markers,
		},
	}
}
