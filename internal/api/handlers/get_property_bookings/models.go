package get_property_bookings

import (
	"strconv"
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	"github.com/stayfinder/SF-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает модель сервиса из path/query параметров запроса
func ToServiceRequest(propertyID, userID int64, startDateStr, endDateStr, statusStr, includeCancelledStr string) (*models.GetPropertyReservationsRequest, error) {
	req := &models.GetPropertyReservationsRequest{
		PropertyID: propertyID,
		UserID:     userID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
