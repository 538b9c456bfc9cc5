package dto

import (
	"eld-log-service/internal/domain"
	"time"
)

type TripRequest struct {
	CurrentLocation  string   `json:"current_location"`
	PickupLocation   string   `json:"pickup_location"`
	DropoffLocation  string   `json:"dropoff_location"`
	CurrentCycleUsed *float64 `json:"current_cycle_used"`
	StartTime        string   `json:"start_time"`
}

type RouteResponse struct {
	TotalDistance    float64               `json:"total_distance"`
	TotalDrivingTime float64               `json:"total_driving_time"`
	Segments         []domain.RouteSegment `json:"segments"`
}

type MapDataResponse struct {
	Waypoints []domain.Coordinates `json:"waypoints"`
	Polylines []*domain.Geometry   `json:"polylines"`
	Markers   []domain.Marker      `json:"markers"`
}

type TripPlanResponse struct {
	StartTime  time.Time         `json:"start_time"`
	Route      RouteResponse     `json:"route"`
	Stops      []domain.Stop     `json:"stops"`
	FuelStops  []domain.FuelStop `json:"fuel_stops"`
	LogEntries []domain.LogEntry `json:"log_entries"`
	DailyLogs  []domain.DailyLog `json:"daily_logs"`
	MapData    MapDataResponse   `json:"map_data"`
}
